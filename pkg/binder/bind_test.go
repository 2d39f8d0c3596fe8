package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/homedata/pkg/binder"
)

type messageForm struct {
	Text    string   `form:"text" json:"text" query:"text"`
	Count   int      `form:"count" json:"count" query:"count"`
	Tags    []string `form:"tags" json:"tags" query:"tags"`
	Notify  bool     `form:"notify" json:"notify"`
	Note    *string  `form:"note" json:"note,omitempty"`
	Ignored string   `form:"-" json:"-" query:"-"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("text=hi&count=3&tags[]=a&tags[]=b&notify=on&note=x&Ignored=y"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in messageForm
	require.NoError(t, binder.Form()(req, &in))
	assert.Equal(t, "hi", in.Text)
	assert.Equal(t, 3, in.Count)
	assert.Equal(t, []string{"a", "b"}, in.Tags)
	assert.True(t, in.Notify)
	require.NotNil(t, in.Note)
	assert.Equal(t, "x", *in.Note)
	assert.Empty(t, in.Ignored)

	t.Run("bad number", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("count=many"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var in messageForm
		assert.ErrorIs(t, binder.Form()(req, &in), binder.ErrFailedToParseForm)
	})

	t.Run("wrong media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		var in messageForm
		assert.ErrorIs(t, binder.Form()(req, &in), binder.ErrUnsupportedMediaType)
	})

	t.Run("missing media type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var in messageForm
		assert.ErrorIs(t, binder.Form()(req, &in), binder.ErrMissingContentType)
	})

	t.Run("non pointer target", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("text=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.ErrorIs(t, binder.Form()(req, messageForm{}), binder.ErrInvalidTarget)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?text=q&count=7&tags=a&tags=b", nil)
	var in messageForm
	require.NoError(t, binder.Query()(req, &in))
	assert.Equal(t, "q", in.Text)
	assert.Equal(t, 7, in.Count)
	assert.Equal(t, []string{"a", "b"}, in.Tags)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	newReq := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	var in messageForm
	require.NoError(t, binder.JSON()(newReq(`{"text":"hi","count":2}`), &in))
	assert.Equal(t, "hi", in.Text)
	assert.Equal(t, 2, in.Count)

	assert.ErrorIs(t, binder.JSON()(newReq(`{"unknown":1}`), &in), binder.ErrFailedToParseJSON)
	assert.ErrorIs(t, binder.JSON()(newReq(``), &in), binder.ErrFailedToParseJSON)
	assert.ErrorIs(t, binder.JSON()(newReq(`{"text":"a"} {"text":"b"}`), &in), binder.ErrFailedToParseJSON)
}
