package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/obbbcalc/internal/compare"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the estimate across filing statuses and income levels",
		Long: `Compare a base estimate against alternative filing statuses and MAGI
adjustments.

Examples:
  obbb compare estimate.yaml
  obbb compare estimate.yaml --status single,mfj --income=+10000,-20000
  obbb compare estimate.yaml --format csv
`,
		Args: cobra.ExactArgs(1),
		RunE: runCompare,
	}
	cmd.Flags().StringSlice("status", []string{"all"}, "Alternative filing statuses, or \"all\"")
	cmd.Flags().StringSlice("income", nil, "MAGI adjustments to try, e.g. +10000,-5000")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("lenient", false, "Accept any overtime multiplier above 1")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	addRulesFlag(cmd)
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}
	input, err := newParser(cmd).LoadFromFile(args[0])
	if err != nil {
		return err
	}

	statusArgs, _ := cmd.Flags().GetStringSlice("status")
	statuses, err := parseStatuses(statusArgs, rules)
	if err != nil {
		return err
	}
	incomeArgs, _ := cmd.Flags().GetStringSlice("income")
	adjustments, err := parseAdjustments(incomeArgs)
	if err != nil {
		return err
	}

	engine := compare.NewCompareEngine(newCalculator(cmd, rules))
	compSet, err := engine.Compare(context.Background(), input, compare.CompareOptions{
		Statuses:          statuses,
		IncomeAdjustments: adjustments,
		InputPath:         args[0],
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	var text string
	switch strings.ToLower(format) {
	case "csv":
		text, err = (&compare.CSVFormatter{}).Format(compSet)
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
	case "compact":
		text = (&compare.TableFormatter{}).FormatCompact(compSet)
	case "table", "console", "":
		text = (&compare.TableFormatter{}).Format(compSet)
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", format, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// parseStatuses accepts status names or abbreviations; "all" expands to
// every configured status.
func parseStatuses(args []string, rules *domain.Rules) ([]domain.FilingStatus, error) {
	var out []domain.FilingStatus
	for _, arg := range args {
		if strings.EqualFold(strings.TrimSpace(arg), "all") {
			out = append(out, rules.Statuses()...)
			continue
		}
		if strings.EqualFold(strings.TrimSpace(arg), "none") {
			continue
		}
		status, err := domain.ParseFilingStatus(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

func parseAdjustments(args []string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for _, arg := range args {
		arg = strings.TrimPrefix(strings.TrimSpace(arg), "+")
		if arg == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(arg, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid income adjustment %q: %w", arg, err)
		}
		out = append(out, d)
	}
	return out, nil
}
