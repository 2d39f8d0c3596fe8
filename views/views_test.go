package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/homedata/pkg/view"
	"github.com/dmitrymomot/homedata/views"
)

func render(t *testing.T, ctx context.Context, name string, data map[string]any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, views.New().RenderTo(ctx, &buf, name, data))
	return buf.String()
}

func TestMainLayout_Messages(t *testing.T) {
	t.Parallel()

	locals := view.Locals{"messages": []string{"Saved.", "<b>hi</b>"}, "hasMessages": true}
	ctx := view.WithLocals(context.Background(), locals)

	out := render(t, ctx, views.Home, nil)
	assert.Contains(t, out, `<ul class="messages"><li>Saved.</li><li>&lt;b&gt;hi&lt;/b&gt;</li></ul>`)
	assert.Contains(t, out, `<meta name="description"`)
	assert.Contains(t, out, `<form method="post" action="/messages">`)

	locals = view.Locals{"messages": []string{}, "hasMessages": false}
	out = render(t, view.WithLocals(context.Background(), locals), views.Home, nil)
	assert.NotContains(t, out, `class="messages"`)
}

func TestNotFoundView(t *testing.T) {
	t.Parallel()

	out := render(t, context.Background(), views.NotFound, map[string]any{"url": "/missing?q=<x>"})
	assert.Contains(t, out, "/missing?q=&lt;x&gt;")
	assert.Contains(t, out, "<title>Home data</title>")
}

func TestServerErrorView(t *testing.T) {
	t.Parallel()

	out := render(t, context.Background(), views.ServerError, map[string]any{"error": "secret"})
	assert.Contains(t, out, "Internal server error")
	assert.NotContains(t, out, "secret")
}

func TestHomeView_Errors(t *testing.T) {
	t.Parallel()

	out := render(t, context.Background(), views.Home, map[string]any{
		"errors": []string{"text is required"},
		"text":   `"quoted"`,
	})
	assert.Contains(t, out, `<ul class="errors"><li>text is required</li></ul>`)
	assert.Contains(t, out, `value="&#34;quoted&#34;"`)
}
