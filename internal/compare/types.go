package compare

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one estimate scenario with its key figures
type ComparisonResult struct {
	ScenarioName string                  `json:"scenarioName"`
	Description  string                  `json:"description"`
	Summary      *domain.EstimateSummary `json:"-"`

	FilingStatus      domain.FilingStatus `json:"filingStatus"`
	Income            decimal.Decimal     `json:"income"`
	OvertimeDeduction decimal.Decimal     `json:"overtimeDeduction"`
	TipsDeduction     decimal.Decimal     `json:"tipsDeduction"`
	TotalDeduction    decimal.Decimal     `json:"totalDeduction"`
	PhaseoutLimited   bool                `json:"phaseoutLimited"`
	Ineligible        []string            `json:"ineligible,omitempty"`

	DeductionDiffFromBase decimal.Decimal `json:"deductionDiffFromBase"`
	DeductionPctFromBase  decimal.Decimal `json:"deductionPctFromBase"`
}

// Eligible reports whether the scenario produced an estimate
func (r ComparisonResult) Eligible() bool {
	return len(r.Ineligible) == 0
}

// ComparisonSet is a base estimate and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath"`
}

// MetricsCalculator extracts comparison figures from summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics copies the key figures out of a summary
func (mc *MetricsCalculator) CalculateMetrics(name string, summary *domain.EstimateSummary) ComparisonResult {
	return ComparisonResult{
		ScenarioName:      name,
		Summary:           summary,
		FilingStatus:      summary.FilingStatus,
		Income:            summary.Income,
		OvertimeDeduction: summary.Overtime.FinalDeduction,
		TipsDeduction:     summary.Tips.FinalDeduction,
		TotalDeduction:    summary.TotalDeduction,
		PhaseoutLimited:   summary.Overtime.Limited() || summary.Tips.Limited(),
	}
}

// IneligibleResult records a scenario that screening rejected
func (mc *MetricsCalculator) IneligibleResult(name string, input *domain.EstimateInput, err error) (ComparisonResult, bool) {
	var inel *domain.IneligibleError
	if !errors.As(err, &inel) {
		return ComparisonResult{}, false
	}
	return ComparisonResult{
		ScenarioName: name,
		FilingStatus: input.FilingStatus,
		Income:       input.Income,
		Ineligible:   inel.Failed,
	}, true
}

// CalculateComparison fills in the deltas against the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.DeductionDiffFromBase = scenario.TotalDeduction.Sub(base.TotalDeduction)
	if !base.TotalDeduction.IsZero() {
		scenario.DeductionPctFromBase = scenario.DeductionDiffFromBase.
			Div(base.TotalDeduction).
			Mul(decimal.NewFromInt(100))
	}
	return scenario
}

// GenerateRecommendations summarizes the comparison in plain sentences
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil {
		return recommendations
	}

	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Eligible() && alt.TotalDeduction.GreaterThan(best.TotalDeduction) {
			best = alt
		}
	}
	if best != compSet.BaseResult {
		diff := best.TotalDeduction.Sub(compSet.BaseResult.TotalDeduction)
		recommendations = append(recommendations,
			"Largest Deduction: "+best.ScenarioName+" deducts $"+diff.StringFixed(0)+" more than the base estimate")
	}

	if compSet.BaseResult.PhaseoutLimited {
		recommendations = append(recommendations,
			"Phase-Out: the base estimate is reduced by the income phase-out")
	}

	for _, alt := range compSet.AlternativeResults {
		if !alt.Eligible() {
			recommendations = append(recommendations,
				fmt.Sprintf("Not Eligible: %s fails screening on %v", alt.ScenarioName, alt.Ineligible))
		}
	}
	return recommendations
}
