package session

import (
	"strings"

	"go-chi-calculator/internal/calculator"
)

type keyKind uint8

const (
	keyDigit keyKind = iota + 1
	keyDecimal
	keyOperator
	keyEquals
	keyClear
	keySign
	keyPercent
)

type key struct {
	kind  keyKind
	digit rune
	op    calculator.Operator
}

func parseKey(token string) (key, bool) {
	t := strings.TrimSpace(token)
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return key{kind: keyDigit, digit: rune(t[0])}, true
	}

	switch strings.ToLower(t) {
	case ".":
		return key{kind: keyDecimal}, true
	case "=", "enter":
		return key{kind: keyEquals}, true
	case "c", "ac", "clear":
		return key{kind: keyClear}, true
	case "±", "+/-", "neg":
		return key{kind: keySign}, true
	case "%":
		return key{kind: keyPercent}, true
	}

	if op, err := calculator.ParseOperator(t); err == nil {
		return key{kind: keyOperator, op: op}, true
	}
	return key{}, false
}

// ValidKey reports whether Press accepts token.
func ValidKey(token string) bool {
	_, ok := parseKey(token)
	return ok
}

// Press maps a keypad token to its event: digits, ".", operator symbols
// or words, "=", "C", "±" and "%". It returns false for unknown tokens.
func (s *Session) Press(token string) bool {
	k, ok := parseKey(token)
	if !ok {
		return false
	}

	switch k.kind {
	case keyDigit:
		s.Digit(k.digit)
	case keyDecimal:
		s.Decimal()
	case keyOperator:
		s.Operator(k.op)
	case keyEquals:
		s.Equals()
	case keyClear:
		s.Clear()
	case keySign:
		s.ToggleSign()
	case keyPercent:
		s.Percent()
	}
	return true
}
