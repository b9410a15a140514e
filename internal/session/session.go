// Package session implements the keypad calculation state machine: a
// first operand, a pending operator and the text being typed, chained
// left to right without precedence.
package session

import (
	"context"
	"errors"
	"strings"

	"go-chi-calculator/internal/calculator"
)

// Evaluator computes one binary operation for a Session.
type Evaluator func(op calculator.Operator, a, b calculator.Number) (calculator.Number, error)

// Traced returns an Evaluator that runs calculator.Evaluate under ctx, so
// each resolved operation gets a span, metrics and a log line.
func Traced(ctx context.Context) Evaluator {
	return func(op calculator.Operator, a, b calculator.Number) (calculator.Number, error) {
		return calculator.Evaluate(ctx, op, a, b)
	}
}

// Session is not safe for concurrent use.
type Session struct {
	first   calculator.Number
	pending calculator.Operator
	input   string
	err     error

	eval Evaluator
}

// New returns an empty Session evaluating with calculator.Apply.
func New() *Session {
	return NewWithEvaluator(calculator.Apply)
}

// NewWithEvaluator returns an empty Session that resolves operations with ev.
func NewWithEvaluator(ev Evaluator) *Session {
	return &Session{eval: ev}
}

// SetEvaluator replaces the evaluator used for subsequent operations.
func (s *Session) SetEvaluator(ev Evaluator) {
	s.eval = ev
}

// Digit appends d to the input. A lone "0" is replaced rather than extended.
func (s *Session) Digit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	s.leaveError()
	if s.input == "0" {
		s.input = string(d)
		return
	}
	s.input += string(d)
}

// Decimal appends a decimal point unless the input already has one.
func (s *Session) Decimal() {
	s.leaveError()
	if strings.Contains(s.input, ".") {
		return
	}
	if s.input == "" {
		s.input = "0"
	}
	s.input += "."
}

// Operator selects op as the pending operator. A pending operation with
// typed input is resolved first, so 2 + 3 × 4 = 20.
func (s *Session) Operator(op calculator.Operator) {
	s.leaveError()
	if op == calculator.OpNone {
		return
	}

	if s.input == "" {
		// only replace an operator, never start one without an operand
		if s.first.Valid() {
			s.pending = op
		}
		return
	}

	if s.first.Valid() && s.pending != calculator.OpNone {
		if !s.resolve() {
			return
		}
	} else {
		n, err := calculator.ParseNumber(s.input)
		if err != nil {
			s.fail(err)
			return
		}
		s.first = n
	}

	s.input = ""
	s.pending = op
}

// Equals resolves the pending operation. It does nothing unless a first
// operand, an operator and a second operand are all present.
func (s *Session) Equals() {
	s.leaveError()
	if !s.first.Valid() || s.pending == calculator.OpNone || s.input == "" {
		return
	}
	if s.resolve() {
		s.pending = calculator.OpNone
	}
}

// Clear resets the session.
func (s *Session) Clear() {
	s.first = calculator.Number{}
	s.pending = calculator.OpNone
	s.input = ""
	s.err = nil
}

// ToggleSign flips the sign of the input. Empty input and "0" are left alone.
func (s *Session) ToggleSign() {
	s.leaveError()
	if s.input == "" || s.input == "0" {
		return
	}
	if strings.HasPrefix(s.input, "-") {
		s.input = s.input[1:]
		return
	}
	s.input = "-" + s.input
}

// Percent replaces the input with its value divided by 100.
func (s *Session) Percent() {
	s.leaveError()
	if s.input == "" {
		return
	}
	n, err := calculator.ParseNumber(s.input)
	if err != nil {
		s.fail(err)
		return
	}
	p, err := calculator.Divide(n, calculator.Int(100))
	if err != nil {
		s.fail(err)
		return
	}
	s.input = calculator.Format(p)
}

// Enter replaces the input with a whole operand in its typed form, so a
// float operand such as "2.0" stays a float. Invalid text leaves the
// session untouched.
func (s *Session) Enter(text string) error {
	n, err := calculator.ParseNumber(text)
	if err != nil {
		return err
	}
	s.EnterNumber(n)
	return nil
}

// EnterNumber replaces the input with n in its typed form. An invalid
// Number clears the input.
func (s *Session) EnterNumber(n calculator.Number) {
	s.leaveError()
	s.input = n.String()
}

// resolve applies the pending operator to the first operand and the input.
// On failure the session enters the error state and false is returned.
func (s *Session) resolve() bool {
	second, err := calculator.ParseNumber(s.input)
	if err != nil {
		s.fail(err)
		return false
	}

	eval := s.eval
	if eval == nil {
		eval = calculator.Apply
	}
	result, err := eval(s.pending, s.first, second)
	if err != nil {
		s.fail(err)
		return false
	}

	s.first = result
	s.input = calculator.Format(result)
	return true
}

func (s *Session) fail(err error) {
	s.first = calculator.Number{}
	s.pending = calculator.OpNone
	s.input = ""
	s.err = err
}

func (s *Session) leaveError() {
	s.err = nil
}

// Display is the main display text.
func (s *Session) Display() string {
	switch {
	case s.input != "":
		return s.input
	case s.err != nil:
		return "Error"
	default:
		return calculator.Format(s.first)
	}
}

// Expression is the preview line above the display: the error message in
// the error state, "first ⊕" while an operator is pending, otherwise empty.
func (s *Session) Expression() string {
	switch {
	case s.err != nil:
		return errorMessage(s.err)
	case s.pending != calculator.OpNone:
		return calculator.Format(s.first) + " " + s.pending.Symbol()
	default:
		return ""
	}
}

// Err returns the failure that put the session in the error state, or nil.
func (s *Session) Err() error { return s.err }

// Result returns the first operand, which holds the last computed result
// after Equals.
func (s *Session) Result() (calculator.Number, bool) {
	return s.first, s.first.Valid()
}

// Pending returns the pending operator, OpNone if there is none.
func (s *Session) Pending() calculator.Operator { return s.pending }

// Input returns the text typed so far.
func (s *Session) Input() string { return s.input }

// Snapshot is a transport-friendly copy of the session state.
type Snapshot struct {
	Display    string            `json:"display"`
	Expression string            `json:"expression"`
	Input      string            `json:"input"`
	First      calculator.Number `json:"first"`
	Operator   string            `json:"operator,omitempty"`
	Error      string            `json:"error,omitempty"`
	ErrorKind  string            `json:"error_kind,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Display:    s.Display(),
		Expression: s.Expression(),
		Input:      s.input,
		First:      s.first,
	}
	if s.pending != calculator.OpNone {
		snap.Operator = s.pending.String()
	}
	if s.err != nil {
		snap.Error = errorMessage(s.err)
		snap.ErrorKind = calculator.ErrorKind(s.err)
	}
	return snap
}

func errorMessage(err error) string {
	if errors.Is(err, calculator.ErrDivisionByZero) {
		return "Cannot divide by zero"
	}
	return err.Error()
}
