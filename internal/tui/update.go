package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/rgehrsitz/obbbcalc/internal/session"
)

var (
	keyQuit     = key.NewBinding(key.WithKeys("ctrl+c"))
	keyBack     = key.NewBinding(key.WithKeys("esc"))
	keyNext     = key.NewBinding(key.WithKeys("enter"))
	keyUp       = key.NewBinding(key.WithKeys("up", "k"))
	keyDown     = key.NewBinding(key.WithKeys("down", "j"))
	keyYes      = key.NewBinding(key.WithKeys("y"))
	keyNo       = key.NewBinding(key.WithKeys("n"))
	keyOverride = key.NewBinding(key.WithKeys("o"))
	keyField    = key.NewBinding(key.WithKeys("tab", "shift+tab"))
	keyKind     = key.NewBinding(key.WithKeys("ctrl+t"))
	keyMode     = key.NewBinding(key.WithKeys("ctrl+l"))
	keyExport   = key.NewBinding(key.WithKeys("e"))
	keyRestart  = key.NewBinding(key.WithKeys("r"))
	keyLetterQ  = key.NewBinding(key.WithKeys("q"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.notice = "Saved " + msg.Path
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, keyBack) {
			m.session.Back()
			m.enterStep()
			return m, nil
		}
		return m.handleStepKey(msg)
	}

	return m.updateFields(msg)
}

func (m Model) handleStepKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.session.Step {
	case session.StepEligibility:
		return m.updateEligibility(msg)
	case session.StepFilingStatus:
		return m.updateFilingStatus(msg)
	case session.StepReview:
		return m.updateReview(msg)
	default:
		return m.updateAmounts(msg)
	}
}

func (m Model) updateEligibility(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	questions := m.session.Questions
	switch {
	case key.Matches(msg, keyLetterQ):
		return m, tea.Quit
	case key.Matches(msg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keyDown):
		if m.cursor < len(questions)-1 {
			m.cursor++
		}
	case key.Matches(msg, keyYes), key.Matches(msg, keyNo):
		if m.cursor < len(questions) {
			m.err = m.session.Answer(questions[m.cursor].ID, key.Matches(msg, keyYes))
			if m.cursor < len(questions)-1 {
				m.cursor++
			}
		}
	case key.Matches(msg, keyOverride):
		m.session.SetOverride(!m.session.Input.Eligibility.Override)
	case key.Matches(msg, keyNext):
		return m.advance()
	}
	return m, nil
}

func (m Model) updateFilingStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	statuses := m.statuses()
	switch {
	case key.Matches(msg, keyLetterQ):
		return m, tea.Quit
	case key.Matches(msg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keyDown):
		if m.cursor < len(statuses)-1 {
			m.cursor++
		}
	case key.Matches(msg, keyOverride):
		m.session.SetOverride(!m.session.Input.Eligibility.Override)
	case key.Matches(msg, keyNext):
		if m.cursor < len(statuses) {
			if err := m.session.SetFilingStatus(statuses[m.cursor]); err != nil {
				m.err = err
				return m, nil
			}
		}
		return m.advance()
	}
	return m, nil
}

func (m Model) updateAmounts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyField):
		if len(m.fields) > 1 {
			m.fields[m.focused].Blur()
			if msg.String() == "shift+tab" {
				m.focused = (m.focused + len(m.fields) - 1) % len(m.fields)
			} else {
				m.focused = (m.focused + 1) % len(m.fields)
			}
			return m, m.fields[m.focused].Focus()
		}
		return m, nil
	case key.Matches(msg, keyKind):
		m.kindIdx = (m.kindIdx + 1) % len(amountKinds)
		return m, nil
	case key.Matches(msg, keyMode):
		if m.session.Input.Mode == domain.MultiplierLenient {
			m.session.SetMode(domain.MultiplierStrict)
		} else {
			m.session.SetMode(domain.MultiplierLenient)
		}
		return m, nil
	case key.Matches(msg, keyNext):
		if err := m.commitAmounts(); err != nil {
			m.err = err
			return m, nil
		}
		return m.advance()
	}
	return m.updateFields(msg)
}

// commitAmounts copies the text inputs of the current step into the session
func (m *Model) commitAmounts() error {
	values := make([]string, len(m.fields))
	for i, f := range m.fields {
		values[i] = f.Value()
	}

	switch m.session.Step {
	case session.StepIncome:
		income, err := parseAmount(values[0])
		if err != nil {
			return fmt.Errorf("income is not a number: %q", values[0])
		}
		return m.session.SetIncome(income)
	case session.StepOvertime:
		var tiers []domain.OvertimeTier
		multipliers := []struct {
			label string
			value string
		}{{"1.5x", "1.5"}, {"2.0x", "2.0"}}
		for i, v := range values {
			amount, err := parseAmount(v)
			if err != nil {
				return fmt.Errorf("%s overtime is not a number: %q", multipliers[i].label, v)
			}
			if amount.IsNegative() {
				return fmt.Errorf("%s overtime: %w", multipliers[i].label, domain.ErrNegativeAmount)
			}
			if amount.IsZero() {
				continue
			}
			a := amount
			mult := domain.TimeAndAHalf
			if i == 1 {
				mult = domain.DoubleTime
			}
			tiers = append(tiers, domain.OvertimeTier{Label: multipliers[i].label, Multiplier: mult, Amount: &a, Kind: m.kind()})
		}
		m.session.SetTiers(tiers)
	case session.StepTips:
		tips, err := parseAmount(values[0])
		if err != nil {
			return fmt.Errorf("tips are not a number: %q", values[0])
		}
		return m.session.SetTips(tips)
	}
	return nil
}

func (m Model) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyLetterQ):
		return m, tea.Quit
	case key.Matches(msg, keyRestart):
		m.session.Reset()
		m.result = nil
		m.notice = ""
		m.enterStep()
	case key.Matches(msg, keyExport):
		if m.result != nil {
			return m, m.exportCmd(m.result)
		}
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if err := m.session.Advance(m.rules); err != nil {
		m.err = err
		return m, nil
	}
	m.enterStep()
	if m.session.Step == session.StepReview {
		m.refreshResult()
	}
	return m, nil
}

func (m Model) updateFields(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused], cmd = m.fields[m.focused].Update(msg)
	return m, cmd
}
