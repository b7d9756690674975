package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/obbbcalc/internal/output"
	"github.com/rgehrsitz/obbbcalc/internal/session"
)

var stepTitles = map[session.Step]string{
	session.StepEligibility:  "Eligibility",
	session.StepFilingStatus: "Filing Status",
	session.StepIncome:       "Income",
	session.StepOvertime:     "Overtime",
	session.StepTips:         "Tips",
	session.StepReview:       "Review",
}

// View renders the current step
func (m Model) View() string {
	var content string
	switch m.session.Step {
	case session.StepEligibility:
		content = m.renderEligibility()
	case session.StepFilingStatus:
		content = m.renderFilingStatus()
	case session.StepIncome:
		content = m.renderFields("Modified adjusted gross income (MAGI):", []string{"MAGI"})
	case session.StepOvertime:
		content = m.renderFields("Overtime pay by multiplier:", []string{"1.5x", "2.0x"}) +
			"\n" + MetricLabelStyle.Render(fmt.Sprintf("Amounts are: %s (ctrl+t)   Multipliers: %s (ctrl+l)", m.kind(), m.session.Input.Mode))
	case session.StepTips:
		content = m.renderFields("Qualified tips:", []string{"Tips"})
	case session.StepReview:
		content = m.renderReview()
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n\n")
	b.WriteString(content)
	if m.err != nil {
		b.WriteString("\n\n" + ErrorStyle.Render("Error: "+m.err.Error()))
	}
	if m.notice != "" {
		b.WriteString("\n\n" + InfoStyle.Render(m.notice))
	}
	b.WriteString("\n" + StatusBarStyle.Render(m.helpLine()))
	return AppStyle.Render(b.String())
}

func (m Model) renderTitleBar() string {
	steps := make([]string, 0, len(stepTitles))
	for s := session.StepEligibility; s <= session.StepReview; s++ {
		name := stepTitles[s]
		if s == m.session.Step {
			steps = append(steps, SelectedItemStyle.Render(name))
		} else {
			steps = append(steps, MetricLabelStyle.Render(name))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("OBBB Overtime Deduction Estimator"),
		strings.Join(steps, " › "))
}

func (m Model) renderEligibility() string {
	var b strings.Builder
	answers := m.session.Input.Eligibility.Answers
	for i, q := range m.session.Questions {
		mark := "[ ]"
		if given, ok := answers[q.ID]; ok {
			if given {
				mark = "[y]"
			} else {
				mark = "[n]"
			}
		}
		line := fmt.Sprintf("%s %s", mark, q.Prompt)
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(UnselectedItemStyle.Render("  "+line) + "\n")
		}
	}

	res := m.session.Screening(m.rules)
	switch {
	case len(res.Unanswered) > 0:
	case res.Eligible:
		b.WriteString("\n" + PassStyle.Render("Screening passed."))
	case res.Overridden:
		b.WriteString("\n" + ErrorStyle.Render("Screening failed; continuing anyway (override on)."))
	default:
		b.WriteString("\n" + ErrorStyle.Render("Screening failed on: "+strings.Join(res.Failed, ", ")+". Press o to continue anyway."))
	}
	return b.String()
}

func (m Model) renderFilingStatus() string {
	var b strings.Builder
	for i, fs := range m.statuses() {
		label := fs.DisplayName()
		if m.rules != nil {
			if sr, err := m.rules.For(fs); err == nil && !sr.Eligible {
				label += " (not eligible)"
			}
		}
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString(UnselectedItemStyle.Render("  "+label) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderFields(heading string, labels []string) string {
	var b strings.Builder
	b.WriteString(heading + "\n\n")
	for i, f := range m.fields {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		b.WriteString(fmt.Sprintf("%-6s %s\n", label, f.View()))
	}
	return b.String()
}

func (m Model) renderReview() string {
	s := m.result
	if s == nil {
		return SubtitleStyle.Render("No estimate available.")
	}

	card := func(label, value string) string {
		return CardStyle.Render(MetricLabelStyle.Render(label) + "\n" + MetricValueStyle.Render(value))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Deduction", output.FormatDollars(s.TotalDeduction)),
		card("Tips Deduction", output.FormatDollars(s.Tips.FinalDeduction)),
		card("Overtime Deduction", output.FormatDollars(s.Overtime.FinalDeduction)),
	)

	var b strings.Builder
	b.WriteString(cards + "\n\n")
	b.WriteString(fmt.Sprintf("Filing status: %s   MAGI: %s\n", s.FilingStatus.DisplayName(), output.FormatDollars(s.Income)))
	for _, t := range s.Tiers {
		b.WriteString(fmt.Sprintf("  %s premium: %s\n", t.Name, output.FormatDollars(t.Premium)))
	}
	b.WriteString(fmt.Sprintf("Overtime ceiling after phase-out: %s\n", output.FormatDollars(s.Overtime.PhaseoutCeiling)))
	for _, w := range s.Warnings {
		b.WriteString(SubtitleStyle.Render("• "+w) + "\n")
	}
	b.WriteString("\n" + SubtitleStyle.Render(output.Disclaimer))
	return b.String()
}

func (m Model) helpLine() string {
	switch m.session.Step {
	case session.StepEligibility:
		return "↑/↓ move • y/n answer • o override • enter next • q quit"
	case session.StepFilingStatus:
		return "↑/↓ move • enter select • esc back • q quit"
	case session.StepReview:
		return "e export PDF • r restart • esc back • q quit"
	default:
		return "tab next field • enter next • esc back • ctrl+c quit"
	}
}
