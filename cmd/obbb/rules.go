package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/rgehrsitz/obbbcalc/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active deduction rules",
		Long: `Print the rule table used for estimates: the built-in rules, or the
rules file given with --rules (or $OBBB_RULES).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var data []byte
			switch strings.ToLower(format) {
			case "table", "console", "":
				data = []byte(formatRulesTable(rules))
			case "yaml":
				data, err = yaml.Marshal(rules)
			case "json":
				data, err = json.MarshalIndent(rules, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, yaml, json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, yaml, json)")
	addRulesFlag(cmd)
	return cmd
}

func formatRulesTable(rules *domain.Rules) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tax year %d: %s\n", rules.Metadata.TaxYear, rules.Metadata.Description)
	fmt.Fprintf(&sb, "Conflict tolerance: %s\n\n", output.FormatCurrency(rules.Tolerance))

	fmt.Fprintf(&sb, "%-28s %-9s %-30s %-30s\n", "Filing status", "Eligible", "Overtime (max / start / range)", "Tips (max / start / range)")
	fmt.Fprintln(&sb, strings.Repeat("-", 100))
	for _, status := range rules.Statuses() {
		sr := rules.FilingStatuses[status]
		eligible := "yes"
		if !sr.Eligible {
			eligible = "no"
		}
		fmt.Fprintf(&sb, "%-28s %-9s %-30s %-30s\n", status.DisplayName(), eligible, policyCell(sr.Overtime), policyCell(sr.Tips))
	}
	return sb.String()
}

func policyCell(p domain.PhaseoutPolicy) string {
	return fmt.Sprintf("%s / %s / %s", output.FormatDollars(p.MaxValue), output.FormatDollars(p.PhaseStart), output.FormatDollars(p.PhaseRange))
}
