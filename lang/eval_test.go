package lang

import (
	"errors"
	"strings"
	"testing"
)

func mustParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()

	p, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	return p
}

func TestParse_Arithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want any
	}{
		{"1+2", int64(3)},
		{"2 * 3 + 4", int64(10)},
		{"2 + 3 * 4", int64(14)},
		{"(2 + 3) * 4", int64(20)},
		{"7 - 2 - 1", int64(4)},
		{"1/2", 0.5},
		{"4/2", 2.0},
		{"7 // 2", int64(3)},
		{"-7 // 2", int64(-4)},
		{"7.0 // 2", 3.0},
		{"7 % 3", int64(1)},
		{"-7 % 3", int64(2)},
		{"7 % -3", int64(-2)},
		{"5 % -3", int64(-1)},
		{"2**10", int64(1024)},
		{"2**3**2", int64(512)},
		{"2**-1", 0.5},
		{"-2**2", int64(-4)},
		{"(-2)**2", int64(4)},
		{"1.5 + 1.5", 3.0},
		{"0b100 >> 2", int64(1)},
		{"1 << 4", int64(16)},
		{"~0b011", int64(-4)},
		{"0o17 + 1", int64(16)},
		{"0xff & 0x0f", int64(15)},
		{"5 | 2", int64(7)},
		{"5 ^ 3", int64(6)},
		{"+3", int64(3)},
		{"--3", int64(3)},
		{"True + True", int64(2)},
		{"True + 1.5", 2.5},
	}

	p := mustParser(t)

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %v (%T), want %v (%T)",
					tt.expr, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestParse_Strings(t *testing.T) {
	tests := []struct {
		expr string
		want any
	}{
		{`"abc" + 'def'`, "abcdef"},
		{`"ab" * 3`, "ababab"},
		{`3 * "ab"`, "ababab"},
		{`"ab" * 0`, ""},
		{`"ab" * -2`, ""},
		{`'it\'s'`, "it's"},
		{`"a\nb"`, "a\nb"},
		{`"a\qb"`, `a\qb`},
		{`"abc" == "abc"`, true},
		{`"abc" < "abd"`, true},
	}

	p := mustParser(t)

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParse_BoolOps(t *testing.T) {
	tests := []struct {
		expr string
		want any
	}{
		{"1 and 2 and 3", int64(3)},
		{"1 or 2 or 3", int64(1)},
		{"0 and 2", int64(0)},
		{"0 or 2", int64(2)},
		{"'' or 'x'", "x"},
		{"None and 1", nil},
		{"not 0", true},
		{"not 3", false},
		{"not not 3", true},
		{"True and False or True", true},
		{"1 if 2 > 1 else 0", int64(1)},
		{"1 if 2 < 1 else 0", int64(0)},
		{"'a' if None else 'b'", "b"},
	}

	p := mustParser(t)

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

// Boolean operator chains stop evaluating at the deciding operand.
func TestParse_BoolOpShortCircuit(t *testing.T) {
	calls := 0
	boom := func(args []any, kwargs map[string]any) (any, error) {
		calls++

		return nil, errors.New("should not be called")
	}

	p := mustParser(t, WithFunctions(map[string]Function{"boom": boom}))

	got, err := p.Parse("0 and boom()")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got != int64(0) {
		t.Errorf("got %v, want 0", got)
	}

	got, err = p.Parse("1 or boom()")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got != int64(1) {
		t.Errorf("got %v, want 1", got)
	}

	if calls != 0 {
		t.Errorf("operand past the deciding one evaluated %d time(s)", calls)
	}
}

// Conditional expressions evaluate only the taken branch.
func TestParse_ConditionalLazyBranch(t *testing.T) {
	calls := 0
	boom := func(args []any, kwargs map[string]any) (any, error) {
		calls++

		return nil, errors.New("should not be called")
	}

	p := mustParser(t, WithFunctions(map[string]Function{"boom": boom}))

	got, err := p.Parse("1 if True else boom()")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got != int64(1) || calls != 0 {
		t.Errorf("got %v with %d calls, want 1 with 0 calls", got, calls)
	}
}

func TestParse_Comparisons(t *testing.T) {
	tests := []struct {
		expr string
		want any
	}{
		{"1 < 2", true},
		{"3 <= 3", true},
		{"3 > 4", false},
		{"3 >= 4", false},
		{"1 == 1.0", true},
		{"1 != 2", true},
		{"True == 1", true},
		{"1 < 2 < 3", true},
		// Comparison chains feed the running result into the next
		// comparison, so each step after the first compares a boolean.
		{"3 > 2 > 1", false},
		{"1 < 2 == 1", true},
		{"None == None", true},
		{"None == 0", false},
		{"'a' == 1", false},
	}

	p := mustParser(t)

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

// All comparators in a chain evaluate even after the running result is
// already boolean.
func TestParse_ComparisonChainEvaluatesAll(t *testing.T) {
	calls := 0
	probe := func(args []any, kwargs map[string]any) (any, error) {
		calls++

		return int64(5), nil
	}

	p := mustParser(t, WithFunctions(map[string]Function{"probe": probe}))

	if _, err := p.Parse("1 < 2 < probe()"); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("comparator evaluated %d time(s), want 1", calls)
	}
}

func TestParse_Membership(t *testing.T) {
	p := mustParser(t, WithVariables(map[string]any{
		"data":  []int64{1, 2, 3},
		"table": map[string]int64{"a": 1},
		"word":  "haystack",
	}))

	tests := []struct {
		expr string
		want any
	}{
		{"2 in data", true},
		{"4 in data", false},
		{"4 not in data", true},
		{"'a' in table", true},
		{"'b' in table", false},
		{"'hay' in word", true},
		{"'men' not in word", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParse_MembershipNotIterable(t *testing.T) {
	p := mustParser(t)

	_, err := p.Parse("1 in 2")
	if err == nil {
		t.Fatal("expected error for membership in non-container")
	}

	if !strings.Contains(err.Error(), "TypeError") ||
		!strings.Contains(err.Error(), "not iterable") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParse_Identity(t *testing.T) {
	shared := []int64{1, 2}

	p := mustParser(t, WithVariables(map[string]any{
		"a": shared,
		"b": shared,
		"c": []int64{1, 2},
	}))

	tests := []struct {
		expr string
		want any
	}{
		{"None is None", true},
		{"None is not None", false},
		{"1 is 1", true},
		{"1 is 1.0", false},
		{"True is True", true},
		{"True is 1", false},
		{"a is b", true},
		{"a is c", false},
		{"a is not c", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParse_Variables(t *testing.T) {
	p := mustParser(t, WithVariables(map[string]any{
		"x":    int64(10),
		"name": "xeval",
		"none": nil,
	}))

	tests := []struct {
		expr string
		want any
	}{
		{"x", int64(10)},
		{"x * 2", int64(20)},
		{"name + '!'", "xeval!"},
		{"none", nil},
		{"None", nil},
		{"True", true},
		{"False", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParse_UndefinedName(t *testing.T) {
	p := mustParser(t)

	_, err := p.Parse("test")
	if err == nil {
		t.Fatal("expected NameError for undefined variable")
	}

	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("got %T, want *NameError", err)
	}

	if !strings.Contains(nameErr.Msg, `name "test" is not defined`) {
		t.Errorf("unexpected message: %q", nameErr.Msg)
	}
}

func TestParse_UndefinedFunction(t *testing.T) {
	p := mustParser(t)

	_, err := p.Parse("frob(1)")
	if err == nil {
		t.Fatal("expected NameError for undefined function")
	}

	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("got %T, want *NameError", err)
	}

	if !strings.Contains(nameErr.Msg, `function "frob" is not defined`) {
		t.Errorf("unexpected message: %q", nameErr.Msg)
	}
}

func TestParse_Calls(t *testing.T) {
	add := func(args []any, kwargs map[string]any) (any, error) {
		var sum int64

		for _, a := range args {
			n, _ := asInt(a)
			sum += n
		}

		if bump, ok := kwargs["bump"]; ok {
			n, _ := asInt(bump)
			sum += n
		}

		return sum, nil
	}

	p := mustParser(t, WithFunctions(map[string]Function{"add": add}))

	tests := []struct {
		expr string
		want any
	}{
		{"add()", int64(0)},
		{"add(1, 2, 3)", int64(6)},
		{"add(1, bump=10)", int64(11)},
		{"add(bump=1, bump=2)", int64(2)},
		{"add(add(1, 2), 3)", int64(6)},
		{"int('42')", int64(42)},
		{"int(3.9)", int64(3)},
		{"int()", int64(0)},
		{"int(True)", int64(1)},
		{"float('2.5')", 2.5},
		{"float(3)", 3.0},
		{"bool(0)", false},
		{"bool('x')", true},
		{"bool()", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := p.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %v (%T), want %v (%T)",
					tt.expr, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestParse_NormalizedErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string // substrings of the error text
	}{
		{
			"division_by_zero",
			"1/0",
			[]string{"ZeroDivisionError", "division by zero"},
		},
		{
			"integer_division_by_zero",
			"1//0",
			[]string{"ZeroDivisionError"},
		},
		{
			"modulo_by_zero",
			"1%0",
			[]string{"ZeroDivisionError", "modulo"},
		},
		{
			"bad_conversion",
			"int('abc')",
			[]string{"ValueError"},
		},
		{
			"bad_arity",
			"bool(1, 2)",
			[]string{"TypeError"},
		},
		{
			"kwargs_to_builtin",
			"int(x=1)",
			[]string{"TypeError"},
		},
		{
			"bad_operand_types",
			"'a' - 1",
			[]string{"TypeError", "unsupported operand type(s)"},
		},
		{
			"bad_shift",
			"1 << -1",
			[]string{"ValueError", "negative shift count"},
		},
		{
			"float_shift",
			"1.0 << 1",
			[]string{"TypeError"},
		},
		{
			"unordered_types",
			"1 < 'a'",
			[]string{"TypeError"},
		},
	}

	p := mustParser(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.expr)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.expr)
			}

			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("got %T, want normalized *SyntaxError", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q missing %q", err.Error(), want)
				}
			}
		})
	}
}

// Foreign errors from injected functions normalize with their dynamic
// type name, or "error" for plain errors.
func TestParse_ForeignErrorNormalization(t *testing.T) {
	fail := func(args []any, kwargs map[string]any) (any, error) {
		return nil, errors.New("broken pipe")
	}

	p := mustParser(t, WithFunctions(map[string]Function{"fail": fail}))

	_, err := p.Parse("fail()")
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(err.Error(), "error: broken pipe") {
		t.Errorf("unexpected error: %v", err)
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("got %T, want normalized *SyntaxError", err)
	}

	if synErr.Line != 1 || synErr.Col != 0 {
		t.Errorf("position = (%d, %d), want (1, 0)", synErr.Line, synErr.Col)
	}
}

func TestParse_ConstantOverride(t *testing.T) {
	_, err := New(WithVariables(map[string]any{"True": int64(42)}))
	if err == nil {
		t.Fatal("expected NameError for constant override")
	}

	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("got %T, want *NameError", err)
	}

	if nameErr.Msg != "cannot override keyword True" {
		t.Errorf("unexpected message: %q", nameErr.Msg)
	}

	_, err = New(WithVariables(map[string]any{
		"None": 0, "True": 1,
	}))
	if err == nil {
		t.Fatal("expected NameError for constant overrides")
	}

	if !strings.Contains(err.Error(), "cannot override keywords None, True") {
		t.Errorf("unexpected message: %v", err)
	}
}

// A caller function may shadow a builtin function, unlike constants.
func TestParse_FunctionShadowing(t *testing.T) {
	always := func(args []any, kwargs map[string]any) (any, error) {
		return int64(7), nil
	}

	p := mustParser(t, WithFunctions(map[string]Function{"int": always}))

	got, err := p.Parse("int('99')")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got != int64(7) {
		t.Errorf("got %v, want shadowed result 7", got)
	}
}

// Parsing the same expression twice yields the same result.
func TestParse_Idempotent(t *testing.T) {
	p := mustParser(t, WithVariables(map[string]any{"x": int64(2)}))

	const expr = "x ** 10 - 1"

	first, err := p.Parse(expr)
	if err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}

	second, err := p.Parse(expr)
	if err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}

	if first != second {
		t.Errorf("results differ: %v then %v", first, second)
	}
}

func TestParseNamed_Label(t *testing.T) {
	p := mustParser(t)

	_, err := p.ParseNamed("1 +", "<stdin>")
	if err == nil {
		t.Fatal("expected syntax error")
	}

	if !strings.HasPrefix(err.Error(), "<stdin>:") {
		t.Errorf("error %q does not carry label <stdin>", err.Error())
	}
}
