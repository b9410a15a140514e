package calculator

import "errors"

var (
	// ErrInvalidOperand is returned when an operand is not a usable number.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrDivisionByZero is returned by Divide when the divisor is zero.
	ErrDivisionByZero = errors.New("cannot divide by zero")
	// ErrUndefinedResult is returned when an operation produces NaN or overflows to infinity.
	ErrUndefinedResult = errors.New("result is undefined")
)

// Error kind labels used in metrics and API payloads.
const (
	KindInvalidOperand  = "invalid_operand"
	KindDivisionByZero  = "division_by_zero"
	KindUndefinedResult = "undefined_result"
)

// ErrorKind returns the stable label for a calculator error, or "" if err
// is not one of the calculator sentinels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidOperand):
		return KindInvalidOperand
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrUndefinedResult):
		return KindUndefinedResult
	default:
		return ""
	}
}
