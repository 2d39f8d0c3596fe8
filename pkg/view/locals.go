package view

import (
	"context"
	"maps"
)

// Locals is the per-request render context shared by every view of a response.
type Locals map[string]any

type localsKey struct{}

// WithLocals attaches l to ctx.
func WithLocals(ctx context.Context, l Locals) context.Context {
	return context.WithValue(ctx, localsKey{}, l)
}

// LocalsFrom returns the locals attached to ctx, or a new empty set.
func LocalsFrom(ctx context.Context) Locals {
	if l, ok := ctx.Value(localsKey{}).(Locals); ok && l != nil {
		return l
	}
	return Locals{}
}

func (l Locals) Set(key string, value any) {
	l[key] = value
}

func (l Locals) Get(key string) any {
	return l[key]
}

// Merge returns a copy of l overlaid with data.
func (l Locals) Merge(data map[string]any) Data {
	out := make(Data, len(l)+len(data))
	maps.Copy(out, l)
	maps.Copy(out, data)
	return out
}
