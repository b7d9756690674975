// Package session holds the state of one user's walk through the estimate
// wizard. A Session belongs to a single user and is not safe for concurrent
// use; the calculator it delegates to is.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rgehrsitz/obbbcalc/internal/calculation"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/rgehrsitz/obbbcalc/internal/eligibility"
	"github.com/shopspring/decimal"
)

// Step is a wizard page
type Step int

const (
	StepEligibility Step = iota
	StepFilingStatus
	StepIncome
	StepOvertime
	StepTips
	StepReview
)

var stepNames = [...]string{"eligibility", "filing_status", "income", "overtime", "tips", "review"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

var (
	ErrScreeningFailed = errors.New("screening failed")
	ErrUnanswered      = errors.New("all screening questions must be answered")
	ErrNoFilingStatus  = errors.New("a filing status must be chosen")
	ErrLastStep        = errors.New("already at the review step")
)

// Session is the explicit per-user wizard state
type Session struct {
	ID        string
	Step      Step
	Questions []eligibility.Question
	Input     domain.EstimateInput

	result *domain.EstimateSummary
}

// New starts a session at the eligibility step
func New() *Session {
	s := &Session{ID: uuid.NewString(), Questions: eligibility.DefaultQuestions}
	s.Reset()
	return s
}

// Reset clears every answer and returns to the first step. The ID is kept.
func (s *Session) Reset() {
	s.Step = StepEligibility
	s.Input = domain.EstimateInput{
		Mode:        domain.MultiplierStrict,
		Eligibility: domain.EligibilityAnswers{Answers: map[string]bool{}},
	}
	s.result = nil
}

func (s *Session) invalidate() {
	s.result = nil
}

// Answer records a screening answer
func (s *Session) Answer(questionID string, yes bool) error {
	if _, ok := eligibility.Find(s.Questions, questionID); !ok {
		return fmt.Errorf("unknown screening question: %s", questionID)
	}
	if s.Input.Eligibility.Answers == nil {
		s.Input.Eligibility.Answers = map[string]bool{}
	}
	s.Input.Eligibility.Answers[questionID] = yes
	s.invalidate()
	return nil
}

// SetOverride lets the user continue past a failed screening
func (s *Session) SetOverride(override bool) {
	s.Input.Eligibility.Override = override
	s.invalidate()
}

// SetFilingStatus records the filing status
func (s *Session) SetFilingStatus(status domain.FilingStatus) error {
	parsed, err := domain.ParseFilingStatus(string(status))
	if err != nil {
		return err
	}
	s.Input.FilingStatus = parsed
	s.invalidate()
	return nil
}

// SetIncome records MAGI
func (s *Session) SetIncome(income decimal.Decimal) error {
	if income.IsNegative() {
		return fmt.Errorf("income: %w", domain.ErrNegativeAmount)
	}
	s.Input.Income = income
	s.invalidate()
	return nil
}

// SetTiers replaces the overtime tiers
func (s *Session) SetTiers(tiers []domain.OvertimeTier) {
	s.Input.Tiers = append([]domain.OvertimeTier(nil), tiers...)
	s.invalidate()
}

// SetTips records qualified tips
func (s *Session) SetTips(tips decimal.Decimal) error {
	if tips.IsNegative() {
		return fmt.Errorf("tips: %w", domain.ErrNegativeAmount)
	}
	s.Input.Tips = tips
	s.invalidate()
	return nil
}

// SetMode selects strict or lenient multipliers
func (s *Session) SetMode(mode domain.MultiplierMode) {
	s.Input.Mode = mode
	s.invalidate()
}

// Screening evaluates the answers so far. Before a filing status is chosen
// the status check passes.
func (s *Session) Screening(rules *domain.Rules) domain.EligibilityResult {
	statusEligible := true
	if s.Input.FilingStatus != "" && rules != nil {
		if sr, err := rules.For(s.Input.FilingStatus); err == nil {
			statusEligible = sr.Eligible
		}
	}
	return eligibility.Evaluate(s.Questions, s.Input.Eligibility, statusEligible)
}

// Advance moves to the next step once the current one is satisfied
func (s *Session) Advance(rules *domain.Rules) error {
	switch s.Step {
	case StepEligibility:
		if !eligibility.Complete(s.Questions, s.Input.Eligibility) {
			return ErrUnanswered
		}
		if err := s.checkScreening(rules); err != nil {
			return err
		}
	case StepFilingStatus:
		if s.Input.FilingStatus == "" {
			return ErrNoFilingStatus
		}
		if rules != nil {
			if _, err := rules.For(s.Input.FilingStatus); err != nil {
				return err
			}
		}
		if err := s.checkScreening(rules); err != nil {
			return err
		}
	case StepReview:
		return ErrLastStep
	}
	s.Step++
	return nil
}

func (s *Session) checkScreening(rules *domain.Rules) error {
	res := s.Screening(rules)
	if res.Eligible || res.Overridden {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrScreeningFailed, strings.Join(res.Failed, ", "))
}

// Back returns to the previous step; answers are kept
func (s *Session) Back() {
	if s.Step > StepEligibility {
		s.Step--
	}
}

// Result returns the estimate, reusing the cached one until an input changes
func (s *Session) Result(dc *calculation.DeductionCalculator) (*domain.EstimateSummary, error) {
	if s.result != nil {
		return s.result, nil
	}
	input := s.Input
	summary, err := dc.Calculate(&input)
	if err != nil {
		return nil, err
	}
	s.result = summary
	return summary, nil
}

// Cached reports whether a result is held
func (s *Session) Cached() bool {
	return s.result != nil
}
