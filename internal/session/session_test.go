package session

import (
	"encoding/json"
	"errors"
	"testing"

	"go-chi-calculator/internal/calculator"
)

func press(t *testing.T, s *Session, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if !s.Press(k) {
			t.Fatalf("key %q was rejected", k)
		}
	}
}

func TestChainingIsLeftToRight(t *testing.T) {
	s := New()
	press(t, s, "2", "+", "3", "×", "4", "=")

	if got := s.Display(); got != "20" {
		t.Fatalf("expected 20, got %q", got)
	}
	if got := s.Expression(); got != "" {
		t.Fatalf("expected empty expression after equals, got %q", got)
	}
	if s.Pending() != calculator.OpNone {
		t.Fatalf("expected no pending operator, got %s", s.Pending())
	}
}

func TestIntermediateResultIsShownWhileChaining(t *testing.T) {
	s := New()
	press(t, s, "2", "+", "3", "×")

	if got := s.Display(); got != "5" {
		t.Fatalf("expected display 5, got %q", got)
	}
	if got := s.Expression(); got != "5 ×" {
		t.Fatalf("expected expression %q, got %q", "5 ×", got)
	}
}

func TestDivisionByZeroEntersErrorState(t *testing.T) {
	s := New()
	press(t, s, "5", "÷", "0", "=")

	if got := s.Display(); got != "Error" {
		t.Fatalf("expected Error display, got %q", got)
	}
	if got := s.Expression(); got != "Cannot divide by zero" {
		t.Fatalf("expected divide by zero message, got %q", got)
	}
	if !errors.Is(s.Err(), calculator.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", s.Err())
	}
	if _, ok := s.Result(); ok {
		t.Fatal("expected first operand to be cleared")
	}
	if s.Pending() != calculator.OpNone || s.Input() != "" {
		t.Fatalf("expected cleared state, got pending %s input %q", s.Pending(), s.Input())
	}

	s.Digit('7')
	if got := s.Display(); got != "7" {
		t.Fatalf("expected fresh entry 7, got %q", got)
	}
	if s.Err() != nil || s.Expression() != "" {
		t.Fatalf("expected error state to be left, got %v / %q", s.Err(), s.Expression())
	}
}

func TestChainedDivisionByZeroClearsPendingOperator(t *testing.T) {
	s := New()
	press(t, s, "8", "/", "0", "+")

	if s.Err() == nil {
		t.Fatal("expected error state")
	}
	if s.Pending() != calculator.OpNone {
		t.Fatalf("expected no pending operator, got %s", s.Pending())
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{keys: []string{"5", "0", "%"}, want: "0.5"},
		{keys: []string{"5", "±", "%"}, want: "-0.05"},
		{keys: []string{"2", "0", "0", "%"}, want: "2"},
		{keys: []string{"%"}, want: "0"},
	}

	for _, tc := range tests {
		s := New()
		press(t, s, tc.keys...)
		if got := s.Display(); got != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.keys, tc.want, got)
		}
	}
}

func TestToggleSignTwiceIsIdentity(t *testing.T) {
	s := New()
	press(t, s, "4", "2")

	s.ToggleSign()
	if got := s.Display(); got != "-42" {
		t.Fatalf("expected -42, got %q", got)
	}
	s.ToggleSign()
	if got := s.Display(); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
}

func TestToggleSignIgnoresEmptyAndZero(t *testing.T) {
	s := New()
	s.ToggleSign()
	if s.Input() != "" {
		t.Fatalf("expected empty input, got %q", s.Input())
	}

	s.Digit('0')
	s.ToggleSign()
	if s.Input() != "0" {
		t.Fatalf("expected 0, got %q", s.Input())
	}
}

func TestDigitAndDecimalEntry(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{keys: []string{"0", "0", "7"}, want: "7"},
		{keys: []string{"."}, want: "0."},
		{keys: []string{".", "5", ".", "2"}, want: "0.52"},
		{keys: []string{"3", ".", "."}, want: "3."},
		{keys: []string{"0", ".", "0", "1"}, want: "0.01"},
	}

	for _, tc := range tests {
		s := New()
		press(t, s, tc.keys...)
		if got := s.Display(); got != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.keys, tc.want, got)
		}
	}
}

func TestDigitIgnoresNonDigits(t *testing.T) {
	s := New()
	s.Digit('a')
	if s.Input() != "" {
		t.Fatalf("expected no input, got %q", s.Input())
	}
}

func TestOperatorWithoutOperandIsNoop(t *testing.T) {
	s := New()
	press(t, s, "+")

	if s.Pending() != calculator.OpNone {
		t.Fatalf("expected no pending operator, got %s", s.Pending())
	}
	if got := s.Display(); got != "0" {
		t.Fatalf("expected display 0, got %q", got)
	}
}

func TestOperatorReplacesPendingOperator(t *testing.T) {
	s := New()
	press(t, s, "9", "+", "-", "4", "=")

	if got := s.Display(); got != "5" {
		t.Fatalf("expected 5, got %q", got)
	}
}

func TestEqualsIsNoopWithoutSecondOperand(t *testing.T) {
	s := New()
	press(t, s, "9", "=")
	if got := s.Display(); got != "9" {
		t.Fatalf("expected 9, got %q", got)
	}

	press(t, s, "+", "=")
	if s.Pending() != calculator.OpAdd {
		t.Fatalf("expected pending add, got %s", s.Pending())
	}
	if got := s.Expression(); got != "9 +" {
		t.Fatalf("expected %q, got %q", "9 +", got)
	}
}

func TestDivisionResultFormatting(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{keys: []string{"1", "÷", "4", "="}, want: "0.25"},
		{keys: []string{"1", "0", "÷", "2", "="}, want: "5"},
		{keys: []string{"1", "÷", "3", "="}, want: "0.3333333333333333"},
		{keys: []string{"0", "÷", "5", "±", "="}, want: "0"},
	}

	for _, tc := range tests {
		s := New()
		press(t, s, tc.keys...)
		if got := s.Display(); got != tc.want {
			t.Fatalf("%v: expected %q, got %q", tc.keys, tc.want, got)
		}
	}
}

func TestResultCarriesIntoNextOperation(t *testing.T) {
	s := New()
	press(t, s, "2", "+", "3", "=", "*", "4", "=")

	if got := s.Display(); got != "20" {
		t.Fatalf("expected 20, got %q", got)
	}
	n, ok := s.Result()
	if !ok || n.Float64() != 20 {
		t.Fatalf("expected result 20, got %s", n)
	}
}

func TestDigitsAfterEqualsExtendResultText(t *testing.T) {
	s := New()
	press(t, s, "2", "+", "3", "=", "1")

	if got := s.Display(); got != "51" {
		t.Fatalf("expected 51, got %q", got)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := New()
	press(t, s, "5", "÷", "0", "=")
	s.Clear()

	if s.Err() != nil || s.Display() != "0" || s.Expression() != "" {
		t.Fatalf("expected reset session, got %+v", s.Snapshot())
	}

	press(t, s, "7", "+", "C")
	if s.Pending() != calculator.OpNone || s.Display() != "0" {
		t.Fatalf("expected reset session, got %+v", s.Snapshot())
	}
}

func TestEnter(t *testing.T) {
	s := New()
	if err := s.Enter("2.50"); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if got := s.Input(); got != "2.5" {
		t.Fatalf("expected canonical 2.5, got %q", got)
	}
	if err := s.Enter("4"); err != nil || s.Input() != "4" {
		t.Fatalf("expected 4, got %q (%v)", s.Input(), err)
	}
	if err := s.Enter("3.0"); err != nil || s.Input() != "3.0" {
		t.Fatalf("expected float 3.0 to keep its fraction, got %q (%v)", s.Input(), err)
	}

	if err := s.Enter("abc"); !errors.Is(err, calculator.ErrInvalidOperand) {
		t.Fatalf("expected ErrInvalidOperand, got %v", err)
	}
	if got := s.Input(); got != "3.0" {
		t.Fatalf("expected input untouched, got %q", got)
	}
}

func TestPressRejectsUnknownTokens(t *testing.T) {
	s := New()
	for _, k := range []string{"", "12", "^", "sqrt"} {
		if s.Press(k) {
			t.Fatalf("expected %q to be rejected", k)
		}
		if ValidKey(k) {
			t.Fatalf("ValidKey(%q) should be false", k)
		}
	}
}

func TestPressAcceptsAliases(t *testing.T) {
	s := New()
	press(t, s, "6", "x", "7", "enter")
	if got := s.Display(); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}

	press(t, s, "AC", "8", "neg", "multiply", "2", "=")
	if got := s.Display(); got != "-16" {
		t.Fatalf("expected -16, got %q", got)
	}
}

func TestCustomEvaluator(t *testing.T) {
	var calls []calculator.Operator
	s := NewWithEvaluator(func(op calculator.Operator, a, b calculator.Number) (calculator.Number, error) {
		calls = append(calls, op)
		return calculator.Apply(op, a, b)
	})
	press(t, s, "1", "+", "2", "-", "3", "=")

	if len(calls) != 2 || calls[0] != calculator.OpAdd || calls[1] != calculator.OpSubtract {
		t.Fatalf("unexpected evaluator calls %v", calls)
	}
	if got := s.Display(); got != "0" {
		t.Fatalf("expected 0, got %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	s := New()
	press(t, s, "1", "2", "÷")

	snap := s.Snapshot()
	if snap.Display != "12" || snap.Expression != "12 ÷" || snap.Operator != "divide" || snap.Input != "" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if v, ok := snap.First.Int64(); !ok || v != 12 {
		t.Fatalf("expected first operand 12, got %s", snap.First)
	}

	press(t, s, "0", "=")
	snap = s.Snapshot()
	if snap.Error != "Cannot divide by zero" || snap.ErrorKind != calculator.KindDivisionByZero {
		t.Fatalf("unexpected error snapshot %+v", snap)
	}
}

func TestResponseJSONRoundTrip(t *testing.T) {
	pending := New()
	press(t, pending, "7", "×")
	failed := New()
	press(t, failed, "5", "÷", "0", "=")

	for name, s := range map[string]*Session{"fresh": New(), "pending": pending, "error": failed} {
		t.Run(name, func(t *testing.T) {
			want := Response{ID: "abc", Snapshot: s.Snapshot()}
			data, err := json.Marshal(want)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var got Response
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal %s: %v", data, err)
			}
			if got != want {
				t.Fatalf("round trip changed the response:\nwant %+v\ngot  %+v", want, got)
			}
		})
	}
}

func TestEnterNumber(t *testing.T) {
	s := New()
	press(t, s, "5", "÷", "0", "=")

	s.EnterNumber(calculator.Int(4))
	if s.Err() != nil || s.Display() != "4" {
		t.Fatalf("expected fresh input 4, got %q (err %v)", s.Display(), s.Err())
	}

	f, err := calculator.Float(2)
	if err != nil {
		t.Fatal(err)
	}
	s.EnterNumber(f)
	if s.Input() != "2.0" {
		t.Fatalf("expected typed input 2.0, got %q", s.Input())
	}
}
