package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/obbbcalc/internal/calculation"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine runs an estimate under alternative filing statuses and
// income levels.
type CompareEngine struct {
	Calc              *calculation.DeductionCalculator
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calc *calculation.DeductionCalculator) *CompareEngine {
	return &CompareEngine{
		Calc:              calc,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures which alternatives are computed
type CompareOptions struct {
	Statuses          []domain.FilingStatus // Alternative filing statuses; the base status is skipped
	IncomeAdjustments []decimal.Decimal     // Amounts added to the base income
	InputPath         string
}

// Compare computes the base estimate and every alternative. A status that
// fails screening is recorded rather than aborting the comparison; any other
// error does abort.
func (ce *CompareEngine) Compare(ctx context.Context, input *domain.EstimateInput, options CompareOptions) (*ComparisonSet, error) {
	baseName := "base (" + string(input.FilingStatus) + ")"
	baseSummary, err := ce.Calc.Calculate(input)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base estimate: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseSummary)

	var alternatives []ComparisonResult
	run := func(name, description string, alt domain.EstimateInput) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary, err := ce.Calc.Calculate(&alt)
		if err != nil {
			if res, ok := ce.MetricsCalculator.IneligibleResult(name, &alt, err); ok {
				res.Description = description
				alternatives = append(alternatives, res)
				return nil
			}
			return fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}
		res := ce.MetricsCalculator.CalculateMetrics(name, summary)
		res.Description = description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(res, baseResult))
		return nil
	}

	for _, status := range options.Statuses {
		if status == input.FilingStatus {
			continue
		}
		alt := *input
		alt.FilingStatus = status
		if err := run(string(status), "Filing as "+status.DisplayName(), alt); err != nil {
			return nil, err
		}
	}

	for _, adj := range options.IncomeAdjustments {
		alt := *input
		alt.Income = decimal.Max(decimal.Zero, input.Income.Add(adj))
		name := "income " + signed(adj)
		if err := run(name, "MAGI of $"+alt.Income.StringFixed(0), alt); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		InputPath:          options.InputPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + d.Abs().StringFixed(0)
	}
	return "+" + d.StringFixed(0)
}
