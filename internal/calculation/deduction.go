package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/rgehrsitz/obbbcalc/internal/eligibility"
	"github.com/shopspring/decimal"
)

// DefaultTolerance is the largest gap allowed between the reported-amount and
// hours x rate premiums of one tier before the estimate is rejected. It
// applies only when no rules are configured; a configured zero tolerance
// demands an exact match.
var DefaultTolerance = decimal.NewFromInt(1)

// DeductionCalculator combines tier premiums, the tips amount and the
// phase-out ceilings into an EstimateSummary. It holds no per-estimate state
// and can be shared across goroutines once configured.
type DeductionCalculator struct {
	Rules     *domain.Rules
	Questions []eligibility.Question
	Logger    Logger
}

// NewDeductionCalculator creates a calculator for a rule set
func NewDeductionCalculator(rules *domain.Rules) *DeductionCalculator {
	return &DeductionCalculator{
		Rules:     rules,
		Questions: eligibility.DefaultQuestions,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (dc *DeductionCalculator) SetLogger(l Logger) {
	if l == nil {
		dc.Logger = NopLogger{}
		return
	}
	dc.Logger = l
}

func (dc *DeductionCalculator) logger() Logger {
	if dc.Logger == nil {
		return NopLogger{}
	}
	return dc.Logger
}

func (dc *DeductionCalculator) tolerance() decimal.Decimal {
	if dc.Rules == nil {
		return DefaultTolerance
	}
	return dc.Rules.Tolerance
}

// Calculate produces the estimate for one input. Screening failures without an
// override return *domain.IneligibleError; disagreeing input methods return
// *domain.ConflictingEstimatesError; invalid multipliers return
// *domain.InvalidMultiplierError.
func (dc *DeductionCalculator) Calculate(input *domain.EstimateInput) (*domain.EstimateSummary, error) {
	if input == nil {
		return nil, errors.New("estimate input is required")
	}
	if dc.Rules == nil {
		return nil, errors.New("deduction rules are not configured")
	}
	if input.Income.IsNegative() {
		return nil, fmt.Errorf("income: %w", domain.ErrNegativeAmount)
	}
	if input.Tips.IsNegative() {
		return nil, fmt.Errorf("tips: %w", domain.ErrNegativeAmount)
	}

	status, err := dc.Rules.For(input.FilingStatus)
	if err != nil {
		return nil, err
	}

	screening := eligibility.Evaluate(dc.Questions, input.Eligibility, status.Eligible)
	if !screening.Eligible && !screening.Overridden {
		dc.logger().Infof("screening failed for %s: %v", input.FilingStatus, screening.Failed)
		return nil, &domain.IneligibleError{Failed: screening.Failed}
	}

	mode := input.Mode
	if mode == "" {
		mode = domain.MultiplierStrict
	}
	pc := NewPremiumCalculator(mode)

	summary := &domain.EstimateSummary{
		PreparedFor:  input.PreparedFor,
		FilingStatus: input.FilingStatus,
		Income:       input.Income,
		Mode:         mode,
		Eligibility:  screening,
	}
	if screening.Overridden {
		summary.Warnings = append(summary.Warnings, "Screening questions were not all satisfied; the estimate was produced at your request and may not apply.")
	}

	gross := decimal.Zero
	for i, tier := range input.Tiers {
		tr, err := dc.tierPremium(pc, tier)
		if err != nil {
			return nil, fmt.Errorf("overtime tier %d (%s): %w", i+1, tier.Name(), err)
		}
		dc.logger().Debugf("tier %s: premium %s", tr.Name, tr.Premium.String())
		summary.Tiers = append(summary.Tiers, tr)
		gross = gross.Add(tr.Premium)
	}

	summary.Overtime = CombineDeduction(gross, input.Income, status.Overtime)
	summary.Tips = CombineDeduction(input.Tips.Floor(), input.Income, status.Tips)
	summary.TotalDeduction = summary.Overtime.FinalDeduction.Add(summary.Tips.FinalDeduction)

	if summary.Overtime.Limited() {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf(
			"Overtime deduction limited by income phase-out: premium $%s, allowed $%s.",
			summary.Overtime.GrossPremium.StringFixed(0), summary.Overtime.PhaseoutCeiling.StringFixed(0)))
	}
	dc.logger().Debugf("overtime gross=%s ceiling=%s final=%s",
		summary.Overtime.GrossPremium, summary.Overtime.PhaseoutCeiling, summary.Overtime.FinalDeduction)

	return summary, nil
}

// tierPremium derives the premium of one tier from whichever input methods are
// present. When both are present they must agree within the tolerance; the
// reported-amount figure is then used.
func (dc *DeductionCalculator) tierPremium(pc PremiumCalculator, tier domain.OvertimeTier) (domain.TierResult, error) {
	tr := domain.TierResult{Name: tier.Name(), Multiplier: tier.Multiplier}

	if !tier.HasReportedAmount() && !tier.HasHours() {
		return tr, errors.New("either amount or hours with base_rate is required")
	}

	if tier.HasReportedAmount() {
		report, err := domain.NewOvertimeReport(*tier.Amount, tier.Multiplier, tier.Kind, pc.Mode)
		if err != nil {
			return tr, err
		}
		premium, err := pc.Report(report)
		if err != nil {
			return tr, err
		}
		tr.ReportedPremium = &premium
	}

	if tier.HasHours() {
		premium, err := pc.HoursPremium(*tier.Hours, *tier.BaseRate, tier.Multiplier)
		if err != nil {
			return tr, err
		}
		tr.HoursPremium = &premium
	}

	switch {
	case tr.ReportedPremium != nil && tr.HoursPremium != nil:
		if tr.ReportedPremium.Sub(*tr.HoursPremium).Abs().GreaterThan(dc.tolerance()) {
			return tr, &domain.ConflictingEstimatesError{
				Tier:            tr.Name,
				ReportedPremium: *tr.ReportedPremium,
				HoursPremium:    *tr.HoursPremium,
				Tolerance:       dc.tolerance(),
			}
		}
		tr.Premium = *tr.ReportedPremium
	case tr.ReportedPremium != nil:
		tr.Premium = *tr.ReportedPremium
	default:
		tr.Premium = *tr.HoursPremium
	}
	return tr, nil
}
