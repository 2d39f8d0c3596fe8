package validator

import (
	"fmt"
	"maps"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/homedata/pkg/binder"
)

// Checker collects validation results for one request.
type Checker struct {
	body    *binder.Body
	query   url.Values
	customs map[string]Custom
	errs    ValidationErrors
}

// NewChecker creates a checker over a parsed body and query. customs are
// added to the built-in ones.
func NewChecker(body *binder.Body, query url.Values, customs map[string]Custom) *Checker {
	all := DefaultCustoms()
	maps.Copy(all, customs)
	return &Checker{body: body, query: query, customs: all}
}

// Check starts a chain for field, looked up in the body and then the query.
// message, when given, replaces every default failure message of the chain.
func (c *Checker) Check(field string, message ...string) *Chain {
	v, ok := c.body.Lookup(field)
	if !ok {
		v, ok = c.queryValue(field)
	}
	return c.chain(field, v, ok, message)
}

// CheckBody starts a chain for a body field only.
func (c *Checker) CheckBody(field string, message ...string) *Chain {
	v, ok := c.body.Lookup(field)
	return c.chain(field, v, ok, message)
}

// CheckQuery starts a chain for a query parameter only.
func (c *Checker) CheckQuery(field string, message ...string) *Chain {
	v, ok := c.queryValue(field)
	return c.chain(field, v, ok, message)
}

func (c *Checker) queryValue(field string) (any, bool) {
	vs, ok := c.query[field]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	if len(vs) == 1 {
		return vs[0], true
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out, true
}

func (c *Checker) chain(field string, v any, present bool, message []string) *Chain {
	ch := &Chain{checker: c, field: field, value: v, present: present}
	if len(message) > 0 {
		ch.message = message[0]
	}
	return ch
}

// Errors returns the collected failures as ValidationErrors, or nil.
func (c *Checker) Errors() error {
	if c.errs.IsEmpty() {
		return nil
	}
	return c.errs
}

// Chain validates one field. Every failing step records an error.
type Chain struct {
	checker *Checker
	field   string
	value   any
	present bool
	message string
	skip    bool
}

// Optional skips the rest of the chain when the field is absent.
func (ch *Chain) Optional() *Chain {
	if !ch.present {
		ch.skip = true
	}
	return ch
}

func (ch *Chain) record(ok bool, message, key string, values map[string]any) *Chain {
	if ch.skip || ok {
		return ch
	}
	if ch.message != "" {
		message = ch.message
	}
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = ch.field
	ch.checker.errs.Add(ValidationError{
		Field:             ch.field,
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	})
	return ch
}

// String returns the field value as text.
func (ch *Chain) String() string {
	return stringify(primitive(ch.value))
}

func (ch *Chain) NotEmpty() *Chain {
	return ch.record(strings.TrimSpace(ch.String()) != "", "field is required", "validation.required", nil)
}

func (ch *Chain) IsInt() *Chain {
	_, err := strconv.ParseInt(strings.TrimPrefix(ch.String(), "+"), 10, 64)
	return ch.record(ch.present && err == nil, "must be an integer", "validation.integer", nil)
}

func (ch *Chain) IsFloat() *Chain {
	text := strings.TrimSpace(ch.String())
	return ch.record(ch.present && text != "" && !math.IsNaN(parseNumber(text)), "must be a number", "validation.number", nil)
}

// Len checks the text length is within [min, max]; a negative max means no upper bound.
func (ch *Chain) Len(min, max int) *Chain {
	n := len([]rune(ch.String()))
	ok := n >= min && (max < 0 || n <= max)
	return ch.record(ok, fmt.Sprintf("length must be between %d and %d", min, max), "validation.length", map[string]any{"min": min, "max": max})
}

// Lte runs the "lte" custom validator.
func (ch *Chain) Lte(limit any) *Chain {
	return ch.Custom("lte", limit)
}

// Gte runs the "gte" custom validator.
func (ch *Chain) Gte(limit any) *Chain {
	return ch.Custom("gte", limit)
}

// Custom runs a registered custom validator. An unknown name fails the field.
func (ch *Chain) Custom(name string, args ...any) *Chain {
	fn, ok := ch.checker.customs[name]
	if !ok {
		return ch.record(false, fmt.Sprintf("%s: %s", ErrUnknownCustom.Error(), name), "validation.unknown", map[string]any{"name": name})
	}
	var value any
	if ch.present {
		value = ch.value
	}
	return ch.record(fn(value, args...), fmt.Sprintf("failed %s", name), "validation."+name, map[string]any{"args": args})
}
