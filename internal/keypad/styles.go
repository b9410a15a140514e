package keypad

import "github.com/charmbracelet/lipgloss"

const (
	colorBackground lipgloss.Color = "#2b2b2b"
	colorFunction   lipgloss.Color = "#a5a5a5"
	colorOperator   lipgloss.Color = "#ff9f0a"
	colorDigit      lipgloss.Color = "#333333"
	colorWhite      lipgloss.Color = "#ffffff"
	colorBlack      lipgloss.Color = "#000000"
	colorMuted      lipgloss.Color = "#888888"
	colorError      lipgloss.Color = "#f38ba8"
)

const (
	buttonWidth  = 6
	displayWidth = 4*buttonWidth + 3
)

var (
	frameStyle      = lipgloss.NewStyle().Background(colorBackground).Padding(1, 2)
	expressionStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(displayWidth).Align(lipgloss.Right)
	errorLineStyle  = expressionStyle.Foreground(colorError)
	displayStyle    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Width(displayWidth).Align(lipgloss.Right).MarginBottom(1)
	buttonStyle     = lipgloss.NewStyle().Width(buttonWidth).Align(lipgloss.Center).MarginRight(1)
)

type buttonKind uint8

const (
	buttonDigit buttonKind = iota
	buttonFunction
	buttonOperator
)

// colors returns the background and foreground of a button.
func (k buttonKind) colors() (lipgloss.Color, lipgloss.Color) {
	switch k {
	case buttonFunction:
		return colorFunction, colorBlack
	case buttonOperator:
		return colorOperator, colorWhite
	default:
		return colorDigit, colorWhite
	}
}

// lighten brightens a #rrggbb color by 40 per channel for the pressed state.
func lighten(c lipgloss.Color) lipgloss.Color {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	out := []byte{'#'}
	for i := 1; i < 7; i += 2 {
		v := hexVal(s[i])<<4 | hexVal(s[i+1])
		v = min(255, v+40)
		out = append(out, hexDigits[v>>4], hexDigits[v&0xf])
	}
	return lipgloss.Color(out)
}

const hexDigits = "0123456789abcdef"

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return 0
	}
}
