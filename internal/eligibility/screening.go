// Package eligibility implements the yes/no screening that gates the
// overtime deduction estimate.
package eligibility

import (
	"github.com/rgehrsitz/obbbcalc/internal/domain"
)

// FilingStatusCheck is the ID reported in Failed when the filing status
// itself is not eligible.
const FilingStatusCheck = "filing_status"

// Question is a single screening question and the answer an eligible
// taxpayer must give.
type Question struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Required bool   `json:"required_answer"`
}

// DefaultQuestions is the built-in screening set
var DefaultQuestions = []Question{
	{ID: "non_exempt", Prompt: "Were you paid overtime as a non-exempt employee under the Fair Labor Standards Act?", Required: true},
	{ID: "valid_ssn", Prompt: "Do you have a Social Security number valid for employment?", Required: true},
	{ID: "reported_on_w2", Prompt: "Is the overtime included in your W-2 or other employer pay records?", Required: true},
	{ID: "tax_year", Prompt: "Was the overtime paid in tax year 2025 or later?", Required: true},
	{ID: "self_employed_only", Prompt: "Was all of your overtime earned as an independent contractor?", Required: false},
}

// Find returns the question with the given ID
func Find(questions []Question, id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Evaluate screens one answer set against the given questions. Unanswered
// questions do not fail screening on their own but are reported; an empty
// answer set means screening was not performed. statusEligible comes from
// the filing-status rules.
func Evaluate(questions []Question, answers domain.EligibilityAnswers, statusEligible bool) domain.EligibilityResult {
	result := domain.EligibilityResult{Screened: len(answers.Answers) > 0}

	if !statusEligible {
		result.Failed = append(result.Failed, FilingStatusCheck)
	}
	for _, q := range questions {
		got, ok := answers.Answers[q.ID]
		if !ok {
			result.Unanswered = append(result.Unanswered, q.ID)
			continue
		}
		if got != q.Required {
			result.Failed = append(result.Failed, q.ID)
		}
	}

	result.Eligible = len(result.Failed) == 0
	result.Overridden = !result.Eligible && answers.Override
	return result
}

// Complete reports whether every question has been answered
func Complete(questions []Question, answers domain.EligibilityAnswers) bool {
	for _, q := range questions {
		if _, ok := answers.Answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Screen evaluates answers against DefaultQuestions
func Screen(answers domain.EligibilityAnswers, statusEligible bool) domain.EligibilityResult {
	return Evaluate(DefaultQuestions, answers, statusEligible)
}
