package validator_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/homedata/pkg/binder"
	"github.com/dmitrymomot/homedata/pkg/pipeline"
	"github.com/dmitrymomot/homedata/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.Required("text", "  "),
		validator.MaxLen("text", "héllo", 5),
		validator.Gte("rating", 0, 1),
		validator.Lte("rating", 6, 5),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)
	assert.True(t, validator.IsValidationError(err))

	verrs := validator.ExtractValidationErrors(err)
	require.Len(t, verrs, 3)
	assert.Equal(t, []string{"text", "rating"}, verrs.Fields())
	assert.True(t, verrs.Has("rating"))
	assert.Equal(t, []string{"must be at least 1", "must be at most 5"}, verrs.Get("rating"))
	assert.Contains(t, err.Error(), "text: field is required")

	assert.NoError(t, validator.Apply(validator.MinLen("text", "ok", 2)))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
}

func TestLooseLessOrEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"numbers", 2, 3, true},
		{"equal numbers", 3.0, 3, true},
		{"numeric string vs number", "5", 10, true},
		{"number vs numeric string", 10, "5", false},
		{"strings compare lexically", "10", "9", true},
		{"strings compare lexically reversed", "9", "10", false},
		{"padded numeric string", " 7 ", 7, true},
		{"empty string is zero", "", 0, true},
		{"non number fails", "abc", 10, false},
		{"non number fails reversed", 10, "abc", false},
		{"absent fails", nil, 10, false},
		{"bool coerces", true, 1, true},
		{"hex string", "0x10", 16, true},
		{"infinity", "Infinity", 1e308, false},
		{"single element list", []any{"4"}, 5, true},
		{"list with two elements", []any{"1", "2"}, 5, false},
		{"lowercase inf is not a number", "inf", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.LooseLessOrEqual(tt.a, tt.b))
		})
	}
}

func TestDefaultCustoms(t *testing.T) {
	t.Parallel()

	c := validator.DefaultCustoms()
	assert.True(t, c["lte"]("3", 5))
	assert.False(t, c["lte"]("6", 5))
	assert.True(t, c["gte"]("6", 5))
	assert.False(t, c["gte"]("x", 5))
	assert.False(t, c["lte"]("3"), "missing argument fails")
}

func checker(t *testing.T, form string, query url.Values, customs map[string]validator.Custom) *validator.Checker {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/?"+query.Encode(), strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var got *validator.Checker
	p := pipeline.New(pipeline.WithStages(
		binder.Parse(),
		validator.Stage(customs),
		pipeline.Func("capture", func(w http.ResponseWriter, r *http.Request, next pipeline.Next) error {
			c, err := validator.FromRequest(r)
			require.NoError(t, err)
			got = c
			return nil
		}),
	))
	p.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	return got
}

func TestChecker(t *testing.T) {
	t.Parallel()

	t.Run("passing checks", func(t *testing.T) {
		c := checker(t, "rating=4&text=hi", nil, nil)
		c.Check("rating").NotEmpty().IsInt().Gte(1).Lte(5)
		c.Check("text").NotEmpty().Len(1, 10)
		assert.NoError(t, c.Errors())
	})

	t.Run("failing checks", func(t *testing.T) {
		c := checker(t, "rating=9&text=", nil, nil)
		c.Check("rating").IsInt().Lte(5)
		c.Check("text", "Text is required").NotEmpty()
		c.Check("missing").IsInt()

		verrs := validator.ExtractValidationErrors(c.Errors())
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"failed lte"}, verrs.Get("rating"))
		assert.Equal(t, []string{"Text is required"}, verrs.Get("text"))
		assert.True(t, verrs.Has("missing"))
	})

	t.Run("optional", func(t *testing.T) {
		c := checker(t, "", nil, nil)
		c.Check("nickname").Optional().NotEmpty().Len(3, 10)
		assert.NoError(t, c.Errors())
	})

	t.Run("nested and query fields", func(t *testing.T) {
		c := checker(t, "range[min]=2&range[max]=8", url.Values{"page": {"3"}}, nil)
		c.Check("range[min]").IsInt().Gte(1)
		c.Check("range.max").IsFloat().Lte(10)
		c.Check("page").IsInt().Gte(1)
		c.CheckBody("page").Optional().IsInt()
		c.CheckQuery("range[min]").Optional().IsInt()
		assert.NoError(t, c.Errors())
	})

	t.Run("custom validators", func(t *testing.T) {
		even := func(param any, _ ...any) bool {
			s, _ := param.(string)
			return s != "" && (s[len(s)-1]-'0')%2 == 0
		}
		c := checker(t, "n=3", nil, map[string]validator.Custom{"even": even})
		c.Check("n").Custom("even")
		c.Check("n").Custom("nope")

		verrs := validator.ExtractValidationErrors(c.Errors())
		require.Len(t, verrs, 2)
		assert.Equal(t, "validation.even", verrs[0].TranslationKey)
		assert.Equal(t, "validation.unknown", verrs[1].TranslationKey)
	})
}

func TestStage_RequiresParsedBody(t *testing.T) {
	t.Parallel()

	var got error
	p := pipeline.New(
		pipeline.WithStages(validator.Stage(nil)),
		pipeline.WithErrorStage(func(w http.ResponseWriter, r *http.Request, err error) {
			got = err
			w.WriteHeader(http.StatusInternalServerError)
		}),
	)
	p.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, got, validator.ErrBodyNotParsed)

	_, err := validator.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, validator.ErrNoChecker)
}
