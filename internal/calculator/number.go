package calculator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the representation held by a Number.
type Kind uint8

const (
	kindNone Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "none"
	}
}

// Number is an integer or a finite float. The zero value holds no number
// and is rejected by every operation.
type Number struct {
	kind Kind
	i    int64
	f    float64
}

// Int returns an integer Number.
func Int(v int64) Number {
	return Number{kind: KindInt, i: v}
}

// Float returns a float Number. NaN and infinities are rejected.
func Float(v float64) (Number, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}, fmt.Errorf("%w: %g is not a finite number", ErrInvalidOperand, v)
	}
	return Number{kind: KindFloat, f: v}, nil
}

// ParseNumber parses operand text. Text containing '.', 'e' or 'E' is a
// float; anything else is an integer, falling back to float when it does
// not fit in an int64.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}, fmt.Errorf("%w: empty number", ErrInvalidOperand)
	}

	if !strings.ContainsAny(s, ".eE") {
		v, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return Int(v), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return Number{}, fmt.Errorf("%w: invalid number %q", ErrInvalidOperand, s)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, fmt.Errorf("%w: invalid number %q", ErrInvalidOperand, s)
	}
	return Float(v)
}

// FromValue converts a decoded JSON value into a Number. Booleans are
// rejected even though some encoders treat them as 0 and 1.
func FromValue(v any) (Number, error) {
	switch x := v.(type) {
	case Number:
		if !x.Valid() {
			return Number{}, fmt.Errorf("%w: missing number", ErrInvalidOperand)
		}
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case int32:
		return Int(int64(x)), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return Int(int64(x)), nil
		}
		return Float(x)
	case float32:
		return FromValue(float64(x))
	case json.Number:
		return ParseNumber(x.String())
	case string:
		return ParseNumber(x)
	case bool:
		return Number{}, fmt.Errorf("%w: boolean %t is not a number", ErrInvalidOperand, x)
	case nil:
		return Number{}, fmt.Errorf("%w: missing number", ErrInvalidOperand)
	default:
		return Number{}, fmt.Errorf("%w: %T is not a number", ErrInvalidOperand, v)
	}
}

// Valid reports whether n holds a number.
func (n Number) Valid() bool { return n.kind == KindInt || n.kind == KindFloat }

// Kind returns the representation tag.
func (n Number) Kind() Kind { return n.kind }

// IsInt reports whether n is integer-typed.
func (n Number) IsInt() bool { return n.kind == KindInt }

// IsZero reports whether n is integer or float zero.
func (n Number) IsZero() bool {
	if n.kind == KindInt {
		return n.i == 0
	}
	return n.f == 0
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 {
	if n.kind == KindInt {
		return float64(n.i)
	}
	return n.f
}

// Int64 returns the integer value and true when n is integer-typed.
func (n Number) Int64() (int64, bool) {
	return n.i, n.kind == KindInt
}

// String renders n keeping its type visible: integral floats keep a ".0".
func (n Number) String() string {
	switch n.kind {
	case KindInt:
		return strconv.FormatInt(n.i, 10)
	case KindFloat:
		s := formatFloat(n.f)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	default:
		return ""
	}
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	if n.kind == KindInt {
		return strconv.AppendInt(nil, n.i, 10), nil
	}
	return json.Marshal(n.f)
}

// UnmarshalJSON accepts a JSON number or numeric string. null leaves n
// unchanged, so a missing operand is caught when it is used.
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOperand, err)
	}

	parsed, err := FromValue(v)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
