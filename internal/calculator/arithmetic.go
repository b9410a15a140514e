package calculator

import (
	"fmt"
	"math"
)

// Add returns a + b. The result is integer-typed when both operands are.
func Add(a, b Number) (Number, error) {
	if err := validate(a, b); err != nil {
		return Number{}, err
	}
	if x, y, ok := ints(a, b); ok {
		s := x + y
		if (x > 0 && y > 0 && s < 0) || (x < 0 && y < 0 && s >= 0) {
			return finish(float64(x) + float64(y))
		}
		return Int(s), nil
	}
	return finish(a.Float64() + b.Float64())
}

// Subtract returns a - b. The result is integer-typed when both operands are.
func Subtract(a, b Number) (Number, error) {
	if err := validate(a, b); err != nil {
		return Number{}, err
	}
	if x, y, ok := ints(a, b); ok {
		d := x - y
		if (x >= 0 && y < 0 && d < 0) || (x < 0 && y > 0 && d >= 0) {
			return finish(float64(x) - float64(y))
		}
		return Int(d), nil
	}
	return finish(a.Float64() - b.Float64())
}

// Multiply returns a * b. The result is integer-typed when both operands are.
func Multiply(a, b Number) (Number, error) {
	if err := validate(a, b); err != nil {
		return Number{}, err
	}
	if x, y, ok := ints(a, b); ok {
		if x == 0 || y == 0 {
			return Int(0), nil
		}
		p := x * y
		if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return finish(float64(x) * float64(y))
		}
		return Int(p), nil
	}
	return finish(a.Float64() * b.Float64())
}

// Divide returns a / b as a float, even for evenly divisible integers.
// A zero divisor fails with ErrDivisionByZero and a zero quotient is
// always positive zero.
func Divide(a, b Number) (Number, error) {
	if err := validate(a, b); err != nil {
		return Number{}, err
	}
	if b.IsZero() {
		return Number{}, ErrDivisionByZero
	}

	q := a.Float64() / b.Float64()
	if q == 0 {
		q = 0
	}
	return finish(q)
}

// Apply runs op on a and b.
func Apply(op Operator, a, b Number) (Number, error) {
	switch op {
	case OpAdd:
		return Add(a, b)
	case OpSubtract:
		return Subtract(a, b)
	case OpMultiply:
		return Multiply(a, b)
	case OpDivide:
		return Divide(a, b)
	default:
		return Number{}, fmt.Errorf("unknown operation: %s", op)
	}
}

func validate(a, b Number) error {
	if !a.Valid() || !b.Valid() {
		return fmt.Errorf("%w: both arguments must be numbers", ErrInvalidOperand)
	}
	return nil
}

func ints(a, b Number) (int64, int64, bool) {
	x, okA := a.Int64()
	y, okB := b.Int64()
	return x, y, okA && okB
}

// finish turns a float result into a Number, refusing NaN and infinities.
func finish(v float64) (Number, error) {
	if math.IsNaN(v) {
		return Number{}, ErrUndefinedResult
	}
	if math.IsInf(v, 0) {
		return Number{}, fmt.Errorf("%w: overflow", ErrUndefinedResult)
	}
	return Number{kind: KindFloat, f: v}, nil
}
