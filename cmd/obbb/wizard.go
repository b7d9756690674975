package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/obbbcalc/internal/tui"
	"github.com/spf13/cobra"
)

func wizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Walk through an estimate interactively",
		Long: `Start the terminal wizard: answer the screening questions, pick a filing
status, enter income, overtime and tips, then review and export a PDF summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}
			exportDir, _ := cmd.Flags().GetString("export-dir")

			model := tui.NewModel(rules, newCalculator(cmd, rules), exportDir)
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running wizard: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("export-dir", "", "Directory for exported summaries (default: working directory)")
	addRulesFlag(cmd)
	return cmd
}
