package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/xeval/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"empty input", "", 0, "", 0, 0},
		{"single word at end", "foo", 3, "foo", 0, 3},
		{"single word in middle", "foo", 1, "foo", 0, 3},
		{"cursor after space", "foo ", 4, "", 4, 4},
		{"second word", "foo bar", 7, "bar", 4, 7},
		{"cursor mid second word", "foo bar", 5, "bar", 4, 7},
		{"operator boundary", "x+len", 5, "len", 2, 5},
		{"cursor on operator", "x+len", 2, "", 2, 2},
		{"inside parens", "int(val", 7, "val", 4, 7},
		{"after comma", "f(a,b", 5, "b", 4, 5},
		{"comparison operands", "abs<max", 7, "max", 4, 7},
		{"cursor past end clamps", "ab", 10, "ab", 0, 2},
		{"keyword after and", "x and no", 8, "no", 6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor,
					word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestIsWordBoundary(t *testing.T) {
	for _, r := range " \t()+-*/%<>=!&|^~," {
		if !isWordBoundary(r) {
			t.Errorf("isWordBoundary(%q) = false, want true", r)
		}
	}

	for _, r := range "abc_09é" {
		if isWordBoundary(r) {
			t.Errorf("isWordBoundary(%q) = true, want false", r)
		}
	}
}

func TestCandidateNames(t *testing.T) {
	env, err := lang.NewEnv(
		map[string]any{"radius": int64(2)},
		map[string]lang.Function{
			"double": func(args []any, kwargs map[string]any) (any, error) {
				return nil, nil
			},
		},
	)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}

	names := candidateNames(env)

	for _, want := range []string{
		"radius", // caller variable
		"True",   // constant
		"double", // caller function
		"int",    // builtin function
		"and",    // keyword
		"quit",   // shell command
	} {
		if !slices.Contains(names, want) {
			t.Errorf("candidateNames missing %q", want)
		}
	}
}
