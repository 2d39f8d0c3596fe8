package methodoverride_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/homedata/pkg/methodoverride"
	"github.com/dmitrymomot/homedata/pkg/pipeline"
)

func TestStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		target   string
		want     string
		original string
	}{
		{"post overridden", http.MethodPost, "/items/1?_method=delete", http.MethodDelete, http.MethodPost},
		{"mixed case", http.MethodPost, "/items/1?_method=PaTcH", http.MethodPatch, http.MethodPost},
		{"unknown method ignored", http.MethodPost, "/items/1?_method=explode", http.MethodPost, http.MethodPost},
		{"empty value ignored", http.MethodPost, "/items/1?_method=", http.MethodPost, http.MethodPost},
		{"get never overridden", http.MethodGet, "/items/1?_method=delete", http.MethodGet, http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var method, original string
			p := pipeline.New(pipeline.WithStages(
				methodoverride.Stage(""),
				pipeline.Func("probe", func(w http.ResponseWriter, r *http.Request, _ pipeline.Next) error {
					method = r.Method
					original = methodoverride.OriginalMethod(r.Context())
					return nil
				}),
			))
			p.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.want, method)
			assert.Equal(t, tt.original, original)
		})
	}
}

func TestStage_CustomParam(t *testing.T) {
	t.Parallel()

	var method string
	p := pipeline.New(pipeline.WithStages(
		methodoverride.Stage("verb"),
		pipeline.Func("probe", func(w http.ResponseWriter, r *http.Request, _ pipeline.Next) error {
			method = r.Method
			return nil
		}),
	))
	p.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/?verb=put&_method=delete", nil))
	assert.Equal(t, http.MethodPut, method)
}
