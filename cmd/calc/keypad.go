package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/keypad"
)

func newKeypadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keypad",
		Short: "Open the terminal keypad",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return keypad.Run(cmd.Context(), tea.WithAltScreen())
		},
	}
}
