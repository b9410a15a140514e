// Package keypad is a terminal calculator window: an expression preview,
// the main display and the button grid, driven from the keyboard.
package keypad

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

type button struct {
	label string
	kind  buttonKind
	span  int
}

var layout = [][]button{
	{{"C", buttonFunction, 1}, {"±", buttonFunction, 1}, {"%", buttonFunction, 1}, {"÷", buttonOperator, 1}},
	{{"7", buttonDigit, 1}, {"8", buttonDigit, 1}, {"9", buttonDigit, 1}, {"×", buttonOperator, 1}},
	{{"4", buttonDigit, 1}, {"5", buttonDigit, 1}, {"6", buttonDigit, 1}, {"−", buttonOperator, 1}},
	{{"1", buttonDigit, 1}, {"2", buttonDigit, 1}, {"3", buttonDigit, 1}, {"+", buttonOperator, 1}},
	{{"0", buttonDigit, 2}, {".", buttonDigit, 1}, {"=", buttonOperator, 1}},
}

// Model is the bubbletea model for one calculator window.
type Model struct {
	sess    *session.Session
	keys    keyMap
	help    help.Model
	pressed string
}

// New returns a keypad driving sess.
func New(sess *session.Session) Model {
	return Model{
		sess: sess,
		keys: newKeyMap(),
		help: help.New(),
	}
}

// Session returns the session the keypad drives.
func (m Model) Session() *session.Session { return m.sess }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
		m.sess.Digit(msg.Runes[0])
		m.pressed = string(msg.Runes[0])
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Decimal):
		m.sess.Decimal()
		m.pressed = "."
	case key.Matches(msg, m.keys.Add):
		m.operator(calculator.OpAdd)
	case key.Matches(msg, m.keys.Subtract):
		m.operator(calculator.OpSubtract)
	case key.Matches(msg, m.keys.Multiply):
		m.operator(calculator.OpMultiply)
	case key.Matches(msg, m.keys.Divide):
		m.operator(calculator.OpDivide)
	case key.Matches(msg, m.keys.Equals):
		m.sess.Equals()
		m.pressed = "="
	case key.Matches(msg, m.keys.Clear):
		m.sess.Clear()
		m.pressed = "C"
	case key.Matches(msg, m.keys.Negate):
		m.sess.ToggleSign()
		m.pressed = "±"
	case key.Matches(msg, m.keys.Percent):
		m.sess.Percent()
		m.pressed = "%"
	default:
		return m, nil
	}

	if err := m.sess.Err(); err != nil {
		observability.Logger.Debug("keypad calculation failed", zap.Error(err))
	}
	return m, nil
}

func (m *Model) operator(op calculator.Operator) {
	m.sess.Operator(op)
	m.pressed = op.Symbol()
}

func (m Model) View() string {
	var b strings.Builder

	if m.sess.Err() != nil {
		b.WriteString(errorLineStyle.Render(m.sess.Expression()))
	} else {
		b.WriteString(expressionStyle.Render(m.sess.Expression()))
	}
	b.WriteString("\n")
	b.WriteString(displayStyle.Render(m.sess.Display()))
	b.WriteString("\n")

	rows := make([]string, 0, len(layout))
	for _, row := range layout {
		cells := make([]string, 0, len(row))
		for _, btn := range row {
			cells = append(cells, m.renderButton(btn))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return frameStyle.Render(b.String()) + "\n" + m.help.View(m.keys) + "\n"
}

func (m Model) renderButton(btn button) string {
	bg, fg := btn.kind.colors()
	if btn.label == m.pressed {
		bg = lighten(bg)
	}
	width := btn.span*buttonWidth + (btn.span - 1)
	return buttonStyle.Width(width).Background(bg).Foreground(fg).Render(btn.label)
}

// Run shows the keypad on the terminal until the user quits.
func Run(ctx context.Context, opts ...tea.ProgramOption) error {
	sess := session.NewWithEvaluator(session.Traced(ctx))
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	if _, err := tea.NewProgram(New(sess), opts...).Run(); err != nil {
		return fmt.Errorf("keypad: %w", err)
	}
	return nil
}
