package operators

import (
	"errors"
	"math"

	"github.com/puppetlabs/langcore/diag"
	"github.com/puppetlabs/langcore/value"
)

// registerArithmetic installs `+ - * / % << >>` and unary `-`, grounded
// on original_source/.../operators/divide.cc's per-side error anchoring:
// a type mismatch anchors to whichever operand carries the wrong type,
// and a zero-divisor or overflow anchors to the right operand (the one
// evaluate.cc calls out by name).
func registerArithmetic(t *Table) {
	numeric := value.Numeric()
	integer := value.IntegerType()

	t.Register(Add, numeric, numeric, arith(Add, addInt, addFloat))
	t.Register(Sub, numeric, numeric, arith(Sub, subInt, subFloat))
	t.Register(Mul, numeric, numeric, arith(Mul, mulInt, mulFloat))
	t.Register(Div, numeric, numeric, divide)
	t.Register(Mod, integer, integer, modulo)
	t.Register(LShift, integer, integer, shift(true))
	t.Register(RShift, integer, integer, shift(false))

	t.Register(UnaryMinus, nil, numeric, unaryMinus)

	// String `+` (concatenation) and Array/Hash `+` (append/merge) are
	// registered after the numeric entry: dispatch tries numeric first,
	// falls through to these on a String/Array/Hash operand pair.
	str := value.StringType()
	t.Register(Add, str, str, func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Str(l.Str() + r.Str()), nil
	})
	arr := value.ArrayType()
	t.Register(Add, arr, arr, func(_ Context, l, r value.Value) (value.Value, error) {
		return value.Arr(append(append([]value.Value{}, l.Array()...), r.Array()...)...), nil
	})
	hsh := value.HashType()
	t.Register(Add, hsh, hsh, func(_ Context, l, r value.Value) (value.Value, error) {
		out := l
		keys, vals := r.HashPairs()
		for i := range keys {
			out = out.HashSet(keys[i], vals[i])
		}
		return out, nil
	})
}

func arith(kind Kind, iop func(int64, int64) (int64, bool), fop func(float64, float64) (float64, error)) Handler {
	return func(ctx Context, l, r value.Value) (value.Value, error) {
		if l.Kind == value.KindInteger && r.Kind == value.KindInteger {
			out, overflow := iop(l.Int(), r.Int())
			if overflow {
				return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "arithmetic operation %s %s %s results in an arithmetic overflow", l, kind, r)
			}
			return value.Int(out), nil
		}
		lf, rf := toFloat(l), toFloat(r)
		out, err := fop(lf, rf)
		if err != nil {
			return value.Value{}, diag.Wrap(diag.Evaluation, diagPos(ctx.RightPos), err, "arithmetic operation %s %s %s", l, kind, r)
		}
		return value.Float(out), nil
	}
}

func toFloat(v value.Value) float64 {
	if v.Kind == value.KindInteger {
		return float64(v.Int())
	}
	return v.Float()
}

func addInt(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, true
	}
	return r, false
}

func subInt(a, b int64) (int64, bool) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, true
	}
	return r, false
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, true
	}
	return r, false
}

func addFloat(a, b float64) (float64, error) { return checkFloat(a + b) }
func subFloat(a, b float64) (float64, error) { return checkFloat(a - b) }
func mulFloat(a, b float64) (float64, error) { return checkFloat(a * b) }

// checkFloat checks a floating-point result after the operation with
// math.IsInf/IsNaN, since Go does not expose the C library's
// floating-point status flags: an infinite result is reported as an
// overflow and a NaN result as an invalid value. Underflow is not
// detected; a result that underflows to a subnormal value or to zero is
// returned unchanged.
func checkFloat(r float64) (float64, error) {
	if math.IsInf(r, 0) {
		return 0, errFloatOverflow
	}
	if math.IsNaN(r) {
		return 0, errFloatInvalid
	}
	return r, nil
}

// errFloatOverflow/errFloatInvalid are plain sentinel causes; the call
// site wraps them with diag.Wrap, which supplies the operand context and
// source position, so these carry no formatting of their own.
var (
	errFloatOverflow = errors.New("results in a floating-point overflow")
	errFloatInvalid  = errors.New("results in an invalid floating-point value")
)

// divide implements `/`, per original_source/.../operators/divide.cc:
// integer division by zero and INT64_MIN/-1 overflow are explicit
// checks; float division tests for infinities/NaN after the operation.
// Both error cases anchor to the right operand, per the C++ source's
// `_context.right_context()`.
func divide(ctx Context, l, r value.Value) (value.Value, error) {
	if l.Kind == value.KindInteger && r.Kind == value.KindInteger {
		right := r.Int()
		if right == 0 {
			return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "cannot divide by zero")
		}
		left := l.Int()
		if left == math.MinInt64 && right == -1 {
			return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "division of %d by %d results in an arithmetic overflow", left, right)
		}
		return value.Int(left / right), nil
	}
	lf, rf := toFloat(l), toFloat(r)
	result := lf / rf
	switch {
	case math.IsNaN(result):
		return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "cannot divide by zero")
	case math.IsInf(result, 0):
		return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "division of %g and %g results in an arithmetic overflow", lf, rf)
	}
	return value.Float(result), nil
}

func modulo(ctx Context, l, r value.Value) (value.Value, error) {
	right := r.Int()
	if right == 0 {
		return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "cannot divide by zero")
	}
	left := l.Int()
	if left == math.MinInt64 && right == -1 {
		return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "division of %d by %d results in an arithmetic overflow", left, right)
	}
	return value.Int(left % right), nil
}

func shift(left bool) Handler {
	return func(ctx Context, l, r value.Value) (value.Value, error) {
		shiftAmt := r.Int()
		if shiftAmt < 0 {
			left = !left
			shiftAmt = -shiftAmt
		}
		if shiftAmt >= 64 {
			return value.Int(0), nil
		}
		if left {
			return value.Int(l.Int() << uint(shiftAmt)), nil
		}
		return value.Int(l.Int() >> uint(shiftAmt)), nil
	}
}

func unaryMinus(ctx Context, _, operand value.Value) (value.Value, error) {
	if operand.Kind == value.KindInteger {
		if operand.Int() == math.MinInt64 {
			return value.Value{}, diag.Evaluationf(diagPos(ctx.RightPos), "negation of %d results in an arithmetic overflow", operand.Int())
		}
		return value.Int(-operand.Int()), nil
	}
	return value.Float(-operand.Float()), nil
}
