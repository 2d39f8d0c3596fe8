package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Custom is a named validator usable from a Chain. param is the field value
// as decoded from the request; args are the arguments given at the call site.
type Custom func(param any, args ...any) bool

// DefaultCustoms returns the built-in custom validators.
func DefaultCustoms() map[string]Custom {
	return map[string]Custom{
		"lte": func(param any, args ...any) bool {
			return len(args) > 0 && LooseLessOrEqual(param, args[0])
		},
		"gte": func(param any, args ...any) bool {
			return len(args) > 0 && LooseLessOrEqual(args[0], param)
		},
	}
}

// LooseLessOrEqual compares a and b the way loosely typed request values are
// compared: two strings compare lexically, anything else is converted to a
// number and fails when either side is not a number.
func LooseLessOrEqual(a, b any) bool {
	pa, pb := primitive(a), primitive(b)
	if sa, ok := pa.(string); ok {
		if sb, ok := pb.(string); ok {
			return sa <= sb
		}
	}
	na, nb := toNumber(pa), toNumber(pb)
	if math.IsNaN(na) || math.IsNaN(nb) {
		return false
	}
	return na <= nb
}

// primitive reduces v to nil, bool, float64 or string.
func primitive(v any) any {
	switch x := v.(type) {
	case nil, bool, string, float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			if item != nil {
				parts[i] = stringify(primitive(item))
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func stringify(p any) string {
	switch x := p.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toNumber converts a primitive to a number; absent values are NaN.
func toNumber(p any) float64 {
	switch x := p.(type) {
	case nil:
		return math.NaN()
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		return x
	case string:
		return parseNumber(x)
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	lower := strings.ToLower(s)
	for _, p := range []struct {
		prefix string
		base   int
	}{{"0x", 16}, {"0o", 8}, {"0b", 2}} {
		if strings.HasPrefix(lower, p.prefix) {
			n, err := strconv.ParseUint(s[2:], p.base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if strings.ContainsAny(lower, "_xpni") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
