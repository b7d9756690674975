// Package tui implements the interactive estimate wizard
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/obbbcalc/internal/calculation"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/rgehrsitz/obbbcalc/internal/output"
	"github.com/rgehrsitz/obbbcalc/internal/session"
)

// amountKinds is the cycle order for the overtime kind toggle
var amountKinds = []domain.AmountKind{domain.AmountUnknown, domain.AmountTotal, domain.AmountPremiumOnly}

// Model is the wizard state for Bubble Tea
type Model struct {
	session *session.Session
	rules   *domain.Rules
	calc    *calculation.DeductionCalculator

	width  int
	height int

	cursor   int
	fields   []textinput.Model
	focused  int
	kindIdx  int
	result   *domain.EstimateSummary
	err      error
	notice   string
	exportTo string
}

// NewModel creates a wizard over a rule set. exportDir is where summary
// documents are written; empty means the working directory.
func NewModel(rules *domain.Rules, calc *calculation.DeductionCalculator, exportDir string) Model {
	m := Model{
		session:  session.New(),
		rules:    rules,
		calc:     calc,
		width:    80,
		height:   24,
		exportTo: exportDir,
	}
	m.enterStep()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Session exposes the underlying wizard state
func (m Model) Session() *session.Session {
	return m.session
}

func newAmountInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 14
	ti.Width = 20
	ti.Prompt = "$ "
	return ti
}

// enterStep prepares the inputs for the current step
func (m *Model) enterStep() {
	m.err = nil
	m.cursor = 0
	m.focused = 0
	m.fields = nil

	in := m.session.Input
	switch m.session.Step {
	case session.StepFilingStatus:
		for i, fs := range m.statuses() {
			if fs == in.FilingStatus {
				m.cursor = i
			}
		}
	case session.StepIncome:
		m.fields = []textinput.Model{newAmountInput("e.g. 150000")}
		if !in.Income.IsZero() {
			m.fields[0].SetValue(in.Income.String())
		}
	case session.StepOvertime:
		m.fields = []textinput.Model{newAmountInput("1.5x overtime pay"), newAmountInput("2.0x overtime pay")}
		for _, t := range in.Tiers {
			if t.Amount == nil {
				continue
			}
			switch {
			case t.Multiplier.Equal(domain.TimeAndAHalf):
				m.fields[0].SetValue(t.Amount.String())
			case t.Multiplier.Equal(domain.DoubleTime):
				m.fields[1].SetValue(t.Amount.String())
			}
		}
	case session.StepTips:
		m.fields = []textinput.Model{newAmountInput("qualified tips")}
		if !in.Tips.IsZero() {
			m.fields[0].SetValue(in.Tips.String())
		}
	}
	if len(m.fields) > 0 {
		m.fields[0].Focus()
	}
}

func (m Model) statuses() []domain.FilingStatus {
	if m.rules == nil {
		return domain.AllFilingStatuses()
	}
	return m.rules.Statuses()
}

func (m Model) kind() domain.AmountKind {
	return amountKinds[m.kindIdx%len(amountKinds)]
}

// parseAmount accepts "12,500", "$12500.50" or empty (zero)
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.NewReplacer(",", "", "$", "").Replace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// refreshResult recomputes the estimate shown on the review step
func (m *Model) refreshResult() {
	m.result, m.err = m.session.Result(m.calc)
}

func (m Model) exportCmd(summary *domain.EstimateSummary) tea.Cmd {
	dir := m.exportTo
	return func() tea.Msg {
		doc := *summary
		output.Stamp(&doc, time.Now())
		pdf := output.PDFFormatter{}
		path, err := output.WriteFormatted(pdf, &doc, dir, output.Extension(pdf))
		return ExportedMsg{Path: path, Err: err}
	}
}
