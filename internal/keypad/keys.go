package keypad

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Decimal  key.Binding
	Add      key.Binding
	Subtract key.Binding
	Multiply key.Binding
	Divide   key.Binding
	Equals   key.Binding
	Clear    key.Binding
	Negate   key.Binding
	Percent  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Decimal:  key.NewBinding(key.WithKeys("."), key.WithHelp(".", "decimal")),
		Add:      key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add")),
		Subtract: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "subtract")),
		Multiply: key.NewBinding(key.WithKeys("*", "x"), key.WithHelp("*", "multiply")),
		Divide:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "divide")),
		Equals:   key.NewBinding(key.WithKeys("=", "enter"), key.WithHelp("=", "equals")),
		Clear:    key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c", "clear")),
		Negate:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "±")),
		Percent:  key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "percent")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Negate, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Subtract, k.Multiply, k.Divide},
		{k.Decimal, k.Percent, k.Negate, k.Equals},
		{k.Clear, k.Help, k.Quit},
	}
}
