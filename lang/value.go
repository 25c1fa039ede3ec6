package lang

import (
	"math"
	"reflect"
	"strings"
)

// The value domain is dynamically typed: expressions produce nil, bool,
// int64, float64, or string, while injected variables and functions may
// contribute arbitrary Go values. The helpers here define truthiness,
// numeric promotion, and the operator semantics over that open domain,
// failing with a typed error (never a panic) on unsupported
// combinations.

// truthy reports the boolean interpretation of a value. Zero numbers,
// empty strings, nil, and empty containers are falsy; everything else
// is truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}

// typeName returns the display name for a value's type, matching the
// spellings used in error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "NoneType"
	case bool:
		return "bool"
	case int64, int, int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float64, float32:
		return "float"
	case string:
		return "str"
	default:
		return reflect.TypeOf(v).String()
	}
}

// asInt coerces a value to int64. Booleans promote to 0 or 1; every Go
// integer width is accepted so injected variables need no conversion.
// Floats do not coerce.
func asInt(v any) (int64, bool) {
	switch t := v.(type) {
	case bool:
		if t {
			return 1, true
		}

		return 0, true

	case int64:
		return t, true
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	default:
		return 0, false
	}
}

// asFloat coerces any numeric value (including booleans) to float64.
func asFloat(v any) (float64, bool) {
	if i, ok := asInt(v); ok {
		return float64(i), true
	}

	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	default:
		return 0, false
	}
}

// isFloatValue reports whether a value is floating-point, which decides
// whether a binary numeric result stays integral.
func isFloatValue(v any) bool {
	switch v.(type) {
	case float64, float32:
		return true
	default:
		return false
	}
}

// applyBinary applies a binary operator to two evaluated operands.
func applyBinary(op BinOpKind, left, right any) (any, error) {
	switch op {
	case OpAdd:
		if l, ok := left.(string); ok {
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		}

		return numericBinary(op, left, right)

	case OpSub:
		return numericBinary(op, left, right)

	case OpMul:
		// String repetition: "ab" * 3 and 3 * "ab".
		if s, ok := left.(string); ok {
			if n, ok := asInt(right); ok {
				return repeatString(s, n), nil
			}
		}

		if s, ok := right.(string); ok {
			if n, ok := asInt(left); ok {
				return repeatString(s, n), nil
			}
		}

		return numericBinary(op, left, right)

	case OpDiv:
		// True division always yields a float.
		l, lok := asFloat(left)
		r, rok := asFloat(right)

		if !lok || !rok {
			return nil, binaryTypeError(op, left, right)
		}

		if r == 0 {
			return nil, zeroDivisionError("division by zero")
		}

		return l / r, nil

	case OpMod, OpFloorDiv, OpPow:
		return numericBinary(op, left, right)

	case OpLShift, OpRShift, OpBitOr, OpBitXor, OpBitAnd:
		return integerBinary(op, left, right)

	default:
		return nil, newTypeErrorf("unknown binary operator %q", op)
	}
}

// numericBinary applies an arithmetic operator with int/float
// promotion: the result is integral only when both operands are.
func numericBinary(op BinOpKind, left, right any) (any, error) {
	li, lInt := asInt(left)
	ri, rInt := asInt(right)

	if lInt && rInt {
		return intBinary(op, li, ri)
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)

	if !lok || !rok {
		return nil, binaryTypeError(op, left, right)
	}

	return floatBinary(op, lf, rf)
}

func intBinary(op BinOpKind, l, r int64) (any, error) {
	switch op {
	case OpAdd:
		return l + r, nil

	case OpSub:
		return l - r, nil

	case OpMul:
		return l * r, nil

	case OpMod:
		if r == 0 {
			return nil, zeroDivisionError("integer modulo by zero")
		}

		// Modulo follows the sign of the right operand.
		m := l % r
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}

		return m, nil

	case OpFloorDiv:
		if r == 0 {
			return nil, zeroDivisionError("integer division by zero")
		}

		// Quotient truncates toward negative infinity.
		q := l / r
		if l%r != 0 && (l < 0) != (r < 0) {
			q--
		}

		return q, nil

	case OpPow:
		if r < 0 {
			// A negative exponent promotes the result to float.
			if l == 0 {
				return nil, zeroDivisionError(
					"zero cannot be raised to a negative power")
			}

			return math.Pow(float64(l), float64(r)), nil
		}

		return intPow(l, r), nil

	default:
		return nil, newTypeErrorf("unknown integer operator %q", op)
	}
}

// intPow computes l**r for non-negative r by binary exponentiation.
func intPow(l, r int64) int64 {
	var result int64 = 1

	for r > 0 {
		if r&1 == 1 {
			result *= l
		}

		l *= l
		r >>= 1
	}

	return result
}

func floatBinary(op BinOpKind, l, r float64) (any, error) {
	switch op {
	case OpAdd:
		return l + r, nil

	case OpSub:
		return l - r, nil

	case OpMul:
		return l * r, nil

	case OpMod:
		if r == 0 {
			return nil, zeroDivisionError("float modulo by zero")
		}

		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}

		return m, nil

	case OpFloorDiv:
		if r == 0 {
			return nil, zeroDivisionError("float floor division by zero")
		}

		return math.Floor(l / r), nil

	case OpPow:
		if l == 0 && r < 0 {
			return nil, zeroDivisionError(
				"zero cannot be raised to a negative power")
		}

		return math.Pow(l, r), nil

	default:
		return nil, newTypeErrorf("unknown float operator %q", op)
	}
}

// integerBinary applies the shift and bitwise operators, which are
// defined only on integer operands.
func integerBinary(op BinOpKind, left, right any) (any, error) {
	l, lok := asInt(left)
	r, rok := asInt(right)

	if !lok || !rok {
		return nil, binaryTypeError(op, left, right)
	}

	switch op {
	case OpLShift, OpRShift:
		if r < 0 {
			return nil, newValueErrorf("negative shift count")
		}

		// Shift counts beyond the word size collapse the usual way.
		if r >= 64 {
			if op == OpLShift || l >= 0 {
				return int64(0), nil
			}

			return int64(-1), nil
		}

		if op == OpLShift {
			return l << uint(r), nil
		}

		return l >> uint(r), nil

	case OpBitOr:
		return l | r, nil

	case OpBitXor:
		return l ^ r, nil

	case OpBitAnd:
		return l & r, nil

	default:
		return nil, newTypeErrorf("unknown bitwise operator %q", op)
	}
}

func binaryTypeError(op BinOpKind, left, right any) *TypeError {
	return newTypeErrorf("unsupported operand type(s) for %s: %s and %s",
		op, typeName(left), typeName(right))
}

func repeatString(s string, n int64) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(s, int(n))
}

// applyUnary applies a unary operator to an evaluated operand.
func applyUnary(op UnaryOpKind, operand any) (any, error) {
	switch op {
	case OpNot:
		return !truthy(operand), nil

	case OpInvert:
		i, ok := asInt(operand)
		if !ok {
			return nil, newTypeErrorf("bad operand type for unary ~: %s",
				typeName(operand))
		}

		return ^i, nil

	case OpUAdd, OpUSub:
		if i, ok := asInt(operand); ok {
			if op == OpUSub {
				return -i, nil
			}

			return i, nil
		}

		if f, ok := asFloat(operand); ok {
			if op == OpUSub {
				return -f, nil
			}

			return f, nil
		}

		return nil, newTypeErrorf("bad operand type for unary %s: %s",
			op, typeName(operand))

	default:
		return nil, newTypeErrorf("unknown unary operator %q", op)
	}
}

// applyCompare applies a single comparison operator to two evaluated
// operands.
func applyCompare(op CmpOpKind, left, right any) (any, error) {
	switch op {
	case OpEq:
		return equalValues(left, right), nil

	case OpNotEq:
		return !equalValues(left, right), nil

	case OpLt, OpLtE, OpGt, OpGtE:
		return orderValues(op, left, right)

	case OpIs:
		return identical(left, right), nil

	case OpIsNot:
		return !identical(left, right), nil

	case OpIn:
		return contains(left, right)

	case OpNotIn:
		ok, err := contains(left, right)
		if err != nil {
			return nil, err
		}

		return !ok, nil

	default:
		return nil, newTypeErrorf("unknown comparison operator %q", op)
	}
}

// equalValues implements generic equality: numbers compare across
// widths (1 == 1.0 is true, and booleans count as 0 and 1), strings
// compare by content, and mismatched types compare unequal rather than
// failing.
func equalValues(left, right any) bool {
	if lf, ok := asFloat(left); ok {
		if rf, ok := asFloat(right); ok {
			return lf == rf
		}

		return false
	}

	if ls, ok := left.(string); ok {
		rs, ok := right.(string)

		return ok && ls == rs
	}

	if left == nil || right == nil {
		return left == nil && right == nil
	}

	return reflect.DeepEqual(left, right)
}

// orderValues implements the ordering comparisons over numbers and
// strings, failing on incompatible combinations.
func orderValues(op CmpOpKind, left, right any) (any, error) {
	if lf, ok := asFloat(left); ok {
		if rf, ok := asFloat(right); ok {
			return orderResult(op, lf < rf, lf == rf), nil
		}
	}

	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return orderResult(op, ls < rs, ls == rs), nil
		}
	}

	return nil, newTypeErrorf(
		"comparison %s not supported between instances of %s and %s",
		op, typeName(left), typeName(right))
}

func orderResult(op CmpOpKind, less, equal bool) bool {
	switch op {
	case OpLt:
		return less
	case OpLtE:
		return less || equal
	case OpGt:
		return !less && !equal
	case OpGtE:
		return !less
	default:
		return false
	}
}

// identical implements the "is" operator. Go values have no object
// identity for scalars, so scalars (and the interned values this
// grammar can produce) compare by kind and value, while reference
// kinds compare by pointer.
func identical(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}

	lv := reflect.ValueOf(left)
	rv := reflect.ValueOf(right)

	switch lv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer,
		reflect.Func, reflect.Chan:
		if rv.Kind() != lv.Kind() {
			return false
		}

		return lv.Pointer() == rv.Pointer()
	default:
		if _, ok := left.(bool); ok {
			b, ok := right.(bool)

			return ok && left == b
		}

		if reflect.TypeOf(left) != reflect.TypeOf(right) {
			return false
		}

		return equalValues(left, right)
	}
}

// contains implements the "in" operator under the right operand's
// container semantics: substring for strings, element membership for
// slices and arrays, key membership for maps.
func contains(item, container any) (bool, error) {
	switch c := container.(type) {
	case string:
		s, ok := item.(string)
		if !ok {
			return false, newTypeErrorf(
				"in <string> requires string as left operand, not %s",
				typeName(item))
		}

		return strings.Contains(c, s), nil
	}

	rv := reflect.ValueOf(container)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if equalValues(item, rv.Index(i).Interface()) {
				return true, nil
			}
		}

		return false, nil

	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if equalValues(item, key.Interface()) {
				return true, nil
			}
		}

		return false, nil

	default:
		return false, newTypeErrorf("argument of type %s is not iterable",
			typeName(container))
	}
}
