package methodoverride

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/homedata/pkg/pipeline"
)

// DefaultParam is the query parameter holding the override.
const DefaultParam = "_method"

var known = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
	http.MethodConnect: true,
}

type originalKey struct{}

// Stage replaces the method of a POST request with the uppercased value of
// the param query parameter when it names a known HTTP method. Other
// requests and unknown values pass through untouched. An empty param uses
// DefaultParam.
func Stage(param string) pipeline.Stage {
	if param == "" {
		param = DefaultParam
	}
	return pipeline.Func("method_override", func(w http.ResponseWriter, r *http.Request, next pipeline.Next) error {
		r = r.WithContext(context.WithValue(r.Context(), originalKey{}, r.Method))
		if r.Method != http.MethodPost {
			return next(w, r)
		}
		if m := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get(param))); known[m] {
			r.Method = m
		}
		return next(w, r)
	})
}

// OriginalMethod returns the method the request arrived with. Outside the
// stage it returns "".
func OriginalMethod(ctx context.Context) string {
	m, _ := ctx.Value(originalKey{}).(string)
	return m
}
