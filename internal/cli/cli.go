// Package cli implements the calc command line: a single operation from
// arguments, or an interactive loop driving one Session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

const (
	prompt        = "calc> "
	operationList = "add, subtract, multiply, divide (or +, -, *, /)"
)

// ErrUsage is returned when the arguments do not form a command.
var ErrUsage = errors.New("usage")

// RunOnce evaluates a single operation and prints its typed result, e.g.
// "5.0" for divide 10 2. Failures print "Error: ..." and are returned.
func RunOnce(ctx context.Context, out io.Writer, opToken, a, b string) error {
	op, err := calculator.ParseOperator(opToken)
	if err != nil {
		fmt.Fprintf(out, "Unknown operation: %s\n", opToken)
		fmt.Fprintf(out, "Available: %s\n", strings.Join(calculator.OperatorTokens(), ", "))
		printHint(out, opToken)
		return err
	}

	x, err := calculator.ParseNumber(a)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return err
	}
	y, err := calculator.ParseNumber(b)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return err
	}

	result, err := calculator.Evaluate(ctx, op, x, y)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return err
	}

	fmt.Fprintln(out, result.String())
	return nil
}

// PrintUsage writes the command usage.
func PrintUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  calc                  # Interactive mode")
	fmt.Fprintln(out, "  calc <op> <a> <b>     # Single operation")
	fmt.Fprintln(out, "  calc keypad           # Terminal keypad")
	fmt.Fprintln(out, "  calc mcp              # MCP server on stdio")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Operations: %s\n", operationList)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  calc add 5 3")
	fmt.Fprintln(out, "  calc divide 10 2")
}

// Suggest returns the operation word closest to token, or "" when none is
// close enough to be a likely typo.
func Suggest(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if len(token) < 2 {
		return ""
	}

	best, bestDist := "", 3
	for _, op := range calculator.Operators {
		if d := levenshtein.ComputeDistance(token, op.String()); d < bestDist {
			best, bestDist = op.String(), d
		}
	}
	return best
}

func printHint(out io.Writer, token string) {
	if s := Suggest(token); s != "" {
		fmt.Fprintf(out, "Did you mean %q?\n", s)
	}
}

// REPL is the interactive loop. State persists across lines in one
// Session until it is cleared or the loop ends.
type REPL struct {
	in   io.Reader
	out  io.Writer
	sess *session.Session
}

// NewREPL returns a loop reading commands from in and writing to out.
func NewREPL(ctx context.Context, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		in:   in,
		out:  out,
		sess: session.NewWithEvaluator(session.Traced(ctx)),
	}
}

// Run reads lines until quit or end of input.
func (r *REPL) Run() error {
	fmt.Fprintln(r.out, "Calculator - Interactive Mode")
	fmt.Fprintf(r.out, "Commands: %s\n", operationList)
	fmt.Fprintln(r.out, "Type 'help' for usage, 'quit' or 'q' to exit")
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			fmt.Fprintln(r.out, "Goodbye!")
			return scanner.Err()
		}
		if !r.Exec(scanner.Text()) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

// Exec runs one line and reports whether the loop should continue.
func (r *REPL) Exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	switch strings.ToLower(line) {
	case "quit", "q", "exit":
		return false
	case "clear", "c":
		r.sess.Clear()
		fmt.Fprintln(r.out, "Cleared")
		return true
	case "help", "?":
		r.help()
		return true
	}

	parts := strings.Fields(line)
	switch len(parts) {
	case 2:
		r.chain(parts[0], parts[1])
	case 3:
		r.calculate(parts[0], parts[1], parts[2])
	default:
		fmt.Fprintln(r.out, "Usage: <operation> <number> <number>")
		fmt.Fprintln(r.out, "       <operation> <number>   (continues from the last result)")
		fmt.Fprintln(r.out, "Example: add 5 3")
	}
	return true
}

func (r *REPL) calculate(opToken, a, b string) {
	op, ok := r.operator(opToken)
	if !ok {
		return
	}

	x, y, err := parseOperands(a, b)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	r.sess.Clear()
	r.sess.EnterNumber(x)
	r.apply(op, y)
}

func (r *REPL) chain(opToken, b string) {
	op, ok := r.operator(opToken)
	if !ok {
		return
	}

	prev, ok := r.sess.Result()
	if !ok {
		fmt.Fprintln(r.out, "Error: no previous result, use <operation> <number> <number>")
		return
	}
	y, err := calculator.ParseNumber(b)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	r.sess.EnterNumber(prev)
	r.apply(op, y)
}

// apply runs "input op b =" on the session and prints the outcome.
func (r *REPL) apply(op calculator.Operator, b calculator.Number) {
	r.sess.Operator(op)
	r.sess.EnterNumber(b)
	r.sess.Equals()

	if err := r.sess.Err(); err != nil {
		observability.Logger.Debug("interactive calculation failed", zap.Error(err))
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	result, _ := r.sess.Result()
	fmt.Fprintf(r.out, "= %s\n", result)
}

func parseOperands(a, b string) (calculator.Number, calculator.Number, error) {
	x, err := calculator.ParseNumber(a)
	if err != nil {
		return calculator.Number{}, calculator.Number{}, err
	}
	y, err := calculator.ParseNumber(b)
	if err != nil {
		return calculator.Number{}, calculator.Number{}, err
	}
	return x, y, nil
}

func (r *REPL) operator(token string) (calculator.Operator, bool) {
	op, err := calculator.ParseOperator(token)
	if err != nil {
		fmt.Fprintf(r.out, "Unknown operation: %s\n", token)
		fmt.Fprintf(r.out, "Available: %s\n", operationList)
		printHint(r.out, token)
		return calculator.OpNone, false
	}
	return op, true
}

func (r *REPL) help() {
	fmt.Fprintln(r.out, "  <op> <a> <b>   calculate a op b, e.g. add 5 3")
	fmt.Fprintln(r.out, "  <op> <b>       apply op to the last result, e.g. * 4")
	fmt.Fprintln(r.out, "  clear, c       forget the last result")
	fmt.Fprintln(r.out, "  quit, q, exit  leave")
	fmt.Fprintf(r.out, "Operations: %s\n", operationList)
}
