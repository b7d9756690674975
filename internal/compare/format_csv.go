package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Filing Status",
		"MAGI",
		"Overtime Deduction",
		"Tips Deduction",
		"Total Deduction",
		"Phase-Out Limited",
		"Eligible",
		"Deduction Diff from Base",
		"Deduction % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.FilingStatus),
		result.Income.StringFixed(2),
		result.OvertimeDeduction.StringFixed(0),
		result.TipsDeduction.StringFixed(0),
		result.TotalDeduction.StringFixed(0),
		formatBool(result.PhaseoutLimited),
		formatBool(result.Eligible()),
		result.DeductionDiffFromBase.StringFixed(0),
		result.DeductionPctFromBase.StringFixed(2),
	}
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
