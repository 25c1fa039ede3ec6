package lang

import (
	"math"
	"testing"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"none", nil, "None"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int", int64(42), "42"},
		{"negative_int", int64(-7), "-7"},
		{"float_whole", 2.0, "2.0"},
		{"float_fraction", 0.5, "0.5"},
		{"float_negative", -1.25, "-1.25"},
		{"float_exponent", 1e21, "1e+21"},
		{"float_inf", math.Inf(1), "inf"},
		{"float_neg_inf", math.Inf(-1), "-inf"},
		{"float_nan", math.NaN(), "nan"},
		{"string_bare", "abc", "abc"},
		{"empty_string", "", ""},
		{"slice", []int64{1, 2, 3}, "[1, 2, 3]"},
		{"slice_of_strings", []string{"a", "b"}, "['a', 'b']"},
		{"nested_slice", [][]int64{{1}, {2, 3}}, "[[1], [2, 3]]"},
		{"map", map[string]int64{"a": 1}, "{'a': 1}"},
		{"mixed_slice", []any{nil, true, int64(1), 2.0, "x"},
			"[None, True, 1, 2.0, 'x']"},
		{"string_with_quote", []string{"it's"}, `['it\'s']`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q",
					tt.value, got, tt.want)
			}
		})
	}
}

// Multi-entry maps render with sorted entries so output is stable.
func TestFormatValue_MapDeterminism(t *testing.T) {
	m := map[string]int64{"b": 2, "a": 1, "c": 3}

	want := "{'a': 1, 'b': 2, 'c': 3}"

	for range 10 {
		if got := FormatValue(m); got != want {
			t.Fatalf("FormatValue(map) = %q, want %q", got, want)
		}
	}
}
