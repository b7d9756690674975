package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
)

// CSVFormatter writes one Item,Amount row per figure in the summary
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(s *domain.EstimateSummary) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("summary is required")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{
		{"Item", "Amount"},
		{"FilingStatus", string(s.FilingStatus)},
		{"Income", s.Income.StringFixed(2)},
	}
	for _, t := range s.Tiers {
		rows = append(rows, []string{"TierPremium:" + t.Name, t.Premium.StringFixed(0)})
	}
	rows = append(rows,
		[]string{"OvertimeGrossPremium", s.Overtime.GrossPremium.StringFixed(0)},
		[]string{"OvertimePhaseoutCeiling", s.Overtime.PhaseoutCeiling.StringFixed(0)},
		[]string{"OvertimeDeduction", s.Overtime.FinalDeduction.StringFixed(0)},
		[]string{"TipsAmount", s.Tips.GrossPremium.StringFixed(0)},
		[]string{"TipsPhaseoutCeiling", s.Tips.PhaseoutCeiling.StringFixed(0)},
		[]string{"TipsDeduction", s.Tips.FinalDeduction.StringFixed(0)},
		[]string{"TotalDeduction", s.TotalDeduction.StringFixed(0)},
	)
	if s.Reference != "" {
		rows = append(rows, []string{"Reference", s.Reference})
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
