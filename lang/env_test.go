package lang

import (
	"slices"
	"strings"
	"testing"
)

func TestNewEnv_CollisionOrder(t *testing.T) {
	// Forbidden names report sorted regardless of map iteration order.
	_, err := NewEnv(map[string]any{
		"True":  1,
		"None":  2,
		"False": 3,
		"ok":    4,
	}, nil)
	if err == nil {
		t.Fatal("expected NameError")
	}

	want := "cannot override keywords False, None, True"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestEnv_LookupPrecedence(t *testing.T) {
	env, err := NewEnv(
		map[string]any{"x": int64(1)},
		map[string]Function{
			"int": func([]any, map[string]any) (any, error) {
				return int64(-1), nil
			},
		},
	)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}

	if v, ok := env.LookupVariable("x"); !ok || v != int64(1) {
		t.Errorf("LookupVariable(x) = %v, %v", v, ok)
	}

	if v, ok := env.LookupVariable("True"); !ok || v != true {
		t.Errorf("LookupVariable(True) = %v, %v", v, ok)
	}

	if _, ok := env.LookupVariable("missing"); ok {
		t.Error("LookupVariable(missing) reported found")
	}

	// Caller functions shadow builtins.
	fn, ok := env.LookupFunction("int")
	if !ok {
		t.Fatal("LookupFunction(int) not found")
	}

	v, err := fn(nil, nil)
	if err != nil || v != int64(-1) {
		t.Errorf("shadowed int() = %v, %v", v, err)
	}

	if _, ok := env.LookupFunction("float"); !ok {
		t.Error("builtin float not resolvable")
	}

	if _, ok := env.LookupFunction("missing"); ok {
		t.Error("LookupFunction(missing) reported found")
	}
}

func TestEnv_Names(t *testing.T) {
	env, err := NewEnv(
		map[string]any{"beta": 1, "alpha": 2},
		map[string]Function{
			"zap": func([]any, map[string]any) (any, error) {
				return nil, nil
			},
		},
	)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}

	vars := env.VariableNames()

	wantVars := []string{"False", "None", "True", "alpha", "beta"}
	if !slices.Equal(vars, wantVars) {
		t.Errorf("VariableNames() = %v, want %v", vars, wantVars)
	}

	funcs := env.FunctionNames()

	wantFuncs := []string{"bool", "float", "int", "zap"}
	if !slices.Equal(funcs, wantFuncs) {
		t.Errorf("FunctionNames() = %v, want %v", funcs, wantFuncs)
	}
}

func TestBuiltinInt(t *testing.T) {
	tests := []struct {
		name    string
		args    []any
		want    any
		wantErr string
	}{
		{"no_args", nil, int64(0), ""},
		{"from_string", []any{"42"}, int64(42), ""},
		{"from_padded_string", []any{" 42 "}, int64(42), ""},
		{"from_float", []any{3.9}, int64(3), ""},
		{"from_negative_float", []any{-3.9}, int64(-3), ""},
		{"from_bool", []any{true}, int64(1), ""},
		{"bad_string", []any{"abc"}, nil, "invalid literal"},
		{"bad_type", []any{[]int{1}}, nil, "must be a string or a number"},
		{"too_many", []any{1, 2}, nil, "at most 1 argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := builtinInt(tt.args, nil)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("builtinInt(%v) succeeded, want error", tt.args)
				}

				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q missing %q", err.Error(), tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("builtinInt(%v) failed: %v", tt.args, err)
			}

			if got != tt.want {
				t.Errorf("builtinInt(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestBuiltinFloat(t *testing.T) {
	tests := []struct {
		name    string
		args    []any
		want    any
		wantErr string
	}{
		{"no_args", nil, float64(0), ""},
		{"from_string", []any{"2.5"}, 2.5, ""},
		{"from_int", []any{int64(3)}, 3.0, ""},
		{"from_bool", []any{true}, 1.0, ""},
		{"bad_string", []any{"abc"}, nil, "could not convert"},
		{"too_many", []any{1, 2}, nil, "at most 1 argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := builtinFloat(tt.args, nil)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("builtinFloat(%v) succeeded, want error", tt.args)
				}

				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q missing %q", err.Error(), tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("builtinFloat(%v) failed: %v", tt.args, err)
			}

			if got != tt.want {
				t.Errorf("builtinFloat(%v) = %v, want %v",
					tt.args, got, tt.want)
			}
		})
	}
}

func TestBuiltinBool(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want any
	}{
		{"no_args", nil, false},
		{"zero", []any{int64(0)}, false},
		{"nonzero", []any{int64(2)}, true},
		{"empty_string", []any{""}, false},
		{"string", []any{"x"}, true},
		{"none", []any{nil}, false},
		{"empty_slice", []any{[]int{}}, false},
		{"slice", []any{[]int{1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := builtinBool(tt.args, nil)
			if err != nil {
				t.Fatalf("builtinBool(%v) failed: %v", tt.args, err)
			}

			if got != tt.want {
				t.Errorf("builtinBool(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestBuiltins_RejectKwargs(t *testing.T) {
	kwargs := map[string]any{"x": 1}

	for name, fn := range builtinFunctions {
		if _, err := fn(nil, kwargs); err == nil {
			t.Errorf("%s() accepted keyword arguments", name)
		}
	}
}
