package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a table of every scenario followed by deltas from the base
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("DEDUCTION SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.InputPath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "MAGI",
		numWidth, "Overtime",
		numWidth, "Tips",
		numWidth, "Total"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth))
	}
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			if !alt.Eligible() {
				sb.WriteString(fmt.Sprintf("  %-*s not eligible\n", nameWidth, alt.ScenarioName))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %-*s %s$%s (%s%%)\n",
				nameWidth, alt.ScenarioName,
				tf.deltaSymbol(alt.DeductionDiffFromBase),
				alt.DeductionDiffFromBase.Abs().StringFixed(0),
				alt.DeductionPctFromBase.StringFixed(1)))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int) string {
	if !result.Eligible() {
		return fmt.Sprintf("%-*s %*s %*s\n",
			nameWidth, tf.truncate(result.ScenarioName, nameWidth),
			numWidth, "$"+result.Income.StringFixed(0),
			numWidth*3+2, "not eligible")
	}
	marker := ""
	if result.PhaseoutLimited {
		marker = " *"
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s%s\n",
		nameWidth, tf.truncate(result.ScenarioName, nameWidth),
		numWidth, "$"+result.Income.StringFixed(0),
		numWidth, "$"+result.OvertimeDeduction.StringFixed(0),
		numWidth, "$"+result.TipsDeduction.StringFixed(0),
		numWidth, "$"+result.TotalDeduction.StringFixed(0),
		marker)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		switch {
		case !alt.Eligible():
			change = "n/a"
		case alt.DeductionDiffFromBase.IsPositive():
			change = "+$" + alt.DeductionDiffFromBase.StringFixed(0)
		case alt.DeductionDiffFromBase.IsNegative():
			change = "-$" + alt.DeductionDiffFromBase.Abs().StringFixed(0)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}
	return sb.String()
}
