package main

import (
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/obbbcalc/internal/extract"
	"github.com/rgehrsitz/obbbcalc/internal/output"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file...]",
		Short: "Scrape income, tips and overtime from pay stub text",
		Long: `Scan pay stub or W-2 text files for gross income, tips and overtime
labels and print the summed amounts. PDF files must be converted to text first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := extract.NewExtractor().ExtractFiles(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				data, err := json.MarshalIndent(amounts, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode amounts: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if amounts.Empty() {
				fmt.Fprintln(out, "No income, tips or overtime labels found")
				return nil
			}
			fmt.Fprintf(out, "Income:    %s\n", output.FormatCurrency(amounts.Income))
			fmt.Fprintf(out, "Tips:      %s\n", output.FormatCurrency(amounts.Tips))
			fmt.Fprintf(out, "Overtime:  %s\n", output.FormatCurrency(amounts.Overtime))
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				fmt.Fprintln(out)
				for _, m := range amounts.Matches {
					fmt.Fprintf(out, "  %-8s %-16s %12s  %s\n", m.Field, m.Label, output.FormatCurrency(m.Amount), m.Source)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the amounts and matches as JSON")
	cmd.Flags().BoolP("verbose", "v", false, "List every matched label")
	return cmd
}
