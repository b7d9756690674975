package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/obbbcalc/internal/eligibility"
	"github.com/rgehrsitz/obbbcalc/internal/extract"
	"github.com/rgehrsitz/obbbcalc/internal/output"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Estimate the overtime and tips deductions",
		Long: `Estimate the deductions described by an input YAML file.

Examples:
  obbb calculate estimate.yaml
  obbb calculate estimate.yaml --format pdf --output summary.pdf
  obbb calculate estimate.yaml --stub paystub.txt --stub w2.txt
`,
		Args: cobra.ExactArgs(1),
		RunE: runCalculate,
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringSlice("stub", nil, "Pay stub or W-2 text file used to fill missing amounts (repeatable)")
	cmd.Flags().Bool("lenient", false, "Accept any overtime multiplier above 1")
	cmd.Flags().BoolP("verbose", "v", false, "Console output: show both premiums for dual-input tiers and list the assumptions")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	addRulesFlag(cmd)
	return cmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && formatter.Name() == "console" {
		formatter = output.ConsoleFormatter{Verbose: true}
	}

	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}

	input, err := newParser(cmd).LoadFromFile(args[0])
	if err != nil {
		return err
	}

	if stubs, _ := cmd.Flags().GetStringSlice("stub"); len(stubs) > 0 {
		amounts, err := extract.NewExtractor().ExtractFiles(stubs)
		if err != nil {
			return fmt.Errorf("failed to read pay stubs: %w", err)
		}
		if filled := amounts.Apply(input); len(filled) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Filled from pay stubs: %s\n", strings.Join(filled, ", "))
		}
	}

	summary, err := newCalculator(cmd, rules).Calculate(input)
	if err != nil {
		return err
	}
	output.Stamp(summary, time.Now())

	data, err := formatter.Format(summary)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", formatter.Name(), err)
	}
	outPath, _ := cmd.Flags().GetString("output")
	return writeOutput(cmd, outPath, data)
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an estimate input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := newParser(cmd).LoadFromFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Input file %s is valid\n", args[0])
			fmt.Fprintf(out, "  Filing status: %s\n", input.FilingStatus.DisplayName())
			fmt.Fprintf(out, "  Overtime tiers: %d\n", len(input.Tiers))
			if !eligibility.Complete(eligibility.DefaultQuestions, input.Eligibility) {
				fmt.Fprintf(out, "  Note: not every screening question is answered\n")
			}
			return nil
		},
	}
	cmd.Flags().Bool("lenient", false, "Accept any overtime multiplier above 1")
	return cmd
}
