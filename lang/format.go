package lang

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// FormatValue renders an evaluation result for display. Constants use
// their source spellings (True, False, None), floats always show a
// decimal point or exponent so their type stays visible, and container
// elements render strings quoted.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"

	case bool:
		if t {
			return "True"
		}

		return "False"

	case string:
		return t

	case int64:
		return strconv.FormatInt(t, 10)

	case float64:
		return formatFloat(t)
	}

	return formatElem(v)
}

// formatFloat renders a float with a visible decimal point, so that
// for example 4/2 displays as 2.0 rather than 2.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

// formatElem renders a value in container context, where strings keep
// their quotes so elements stay distinguishable.
func formatElem(v any) string {
	switch t := v.(type) {
	case nil, bool, int64, float64:
		return FormatValue(t)

	case string:
		return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(t) + "'"
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]string, rv.Len())
		for i := range rv.Len() {
			elems[i] = formatElem(rv.Index(i).Interface())
		}

		return "[" + strings.Join(elems, ", ") + "]"

	case reflect.Map:
		elems := make([]string, 0, rv.Len())
		for _, key := range rv.MapKeys() {
			elems = append(elems, formatElem(key.Interface())+": "+
				formatElem(rv.MapIndex(key).Interface()))
		}

		// Deterministic output regardless of map iteration order.
		slices.Sort(elems)

		return "{" + strings.Join(elems, ", ") + "}"

	default:
		return fmt.Sprintf("%v", v)
	}
}
