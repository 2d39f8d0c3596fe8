package view

import (
	"bytes"
	"context"
	"io"
	"math"
	"reflect"

	"github.com/a-h/templ"
)

// Truthy reports whether v counts as true in a view condition. False, zero
// numbers, NaN, the empty string, nil and nil pointers are false. Everything
// else is true, including empty slices and maps.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() != 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return !rv.IsNil()
	default:
		return true
	}
}

// If renders then when cond is truthy and otherwise else. Either may be nil.
func If(cond any, then, otherwise templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c := otherwise
		if Truthy(cond) {
			c = then
		}
		if c == nil {
			return nil
		}
		return c.Render(ctx, w)
	})
}

type sectionsKey struct{}

type sections map[string]*bytes.Buffer

func withSections(ctx context.Context) context.Context {
	return context.WithValue(ctx, sectionsKey{}, sections{})
}

// Section captures c under name for the layout instead of rendering it in
// place. Capturing the same name again replaces the earlier content.
func Section(name string, c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, _ io.Writer) error {
		s, ok := ctx.Value(sectionsKey{}).(sections)
		if !ok {
			return nil
		}
		var buf bytes.Buffer
		if err := c.Render(ctx, &buf); err != nil {
			return err
		}
		s[name] = &buf
		return nil
	})
}

// Yield renders the content captured by Section under name, if any.
func Yield(name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s, ok := ctx.Value(sectionsKey{}).(sections)
		if !ok {
			return nil
		}
		buf, ok := s[name]
		if !ok {
			return nil
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}
