package calculator

import (
	"fmt"
	"strings"
)

// Operator is one of the four binary operations.
type Operator uint8

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Operators lists every operator in display order.
var Operators = []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}

var operatorTokens = map[string]Operator{
	"add":      OpAdd,
	"subtract": OpSubtract,
	"multiply": OpMultiply,
	"divide":   OpDivide,
	"+":        OpAdd,
	"-":        OpSubtract,
	"−":        OpSubtract,
	"*":        OpMultiply,
	"×":        OpMultiply,
	"x":        OpMultiply,
	"/":        OpDivide,
	"÷":        OpDivide,
}

// ParseOperator maps a word or symbol token to an Operator.
func ParseOperator(token string) (Operator, error) {
	op, ok := operatorTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return OpNone, fmt.Errorf("unknown operation: %s", token)
	}
	return op, nil
}

// OperatorTokens returns every accepted operator token, words first.
func OperatorTokens() []string {
	tokens := make([]string, 0, len(operatorTokens))
	for _, op := range Operators {
		tokens = append(tokens, op.String())
	}
	for _, op := range Operators {
		tokens = append(tokens, op.ASCII())
	}
	return tokens
}

// String returns the word form, e.g. "divide".
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// Symbol returns the display symbol used in expression previews.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// ASCII returns the keyboard symbol for o.
func (o Operator) ASCII() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return ""
	}
}
