package view

import (
	"fmt"

	"github.com/a-h/templ"
)

// Data is what a single view renders from: request locals merged with
// per-render values.
type Data map[string]any

// View builds the component for one named view.
type View func(d Data) templ.Component

// Layout wraps a rendered view body.
type Layout func(d Data, body templ.Component) templ.Component

// String returns d[key] formatted as text, or "" when absent.
func (d Data) String(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Strings returns d[key] as a list of strings.
func (d Data) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

// Value returns the raw value for key.
func (d Data) Value(key string) any {
	return d[key]
}
