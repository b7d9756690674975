package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, ValidateRules(rules))

	single, err := rules.For(domain.FilingSingle)
	require.NoError(t, err)
	assert.True(t, single.Eligible)
	assert.True(t, decimal.NewFromInt(12500).Equal(single.Overtime.MaxValue))
	assert.True(t, decimal.NewFromInt(150000).Equal(single.Overtime.PhaseStart))
	assert.True(t, decimal.NewFromInt(100000).Equal(single.Overtime.PhaseRange))

	joint, err := rules.For(domain.FilingMarriedJointly)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25000).Equal(joint.Overtime.MaxValue))
	assert.True(t, decimal.NewFromInt(300000).Equal(joint.Overtime.PhaseStart))

	mfs, err := rules.For(domain.FilingMarriedSeparately)
	require.NoError(t, err)
	assert.False(t, mfs.Eligible)

	assert.Equal(t, domain.AllFilingStatuses(), rules.Statuses())
}

func TestParseRules_OverridesStatus(t *testing.T) {
	doc := `
metadata:
  tax_year: 2026
  description: wider joint band
tolerance: 5
filing_statuses:
  mfj:
    eligible: true
    overtime: {max_value: 25000, phase_start: 300000, phase_range: 250000}
    tips: {max_value: 25000, phase_start: 300000, phase_range: 100000}
`
	rules, err := ParseRules([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 2026, rules.Metadata.TaxYear)
	assert.True(t, decimal.NewFromInt(5).Equal(rules.Tolerance))

	joint, err := rules.For(domain.FilingMarriedJointly)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250000).Equal(joint.Overtime.PhaseRange))

	single, err := rules.For(domain.FilingSingle)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100000).Equal(single.Overtime.PhaseRange), "unlisted statuses keep defaults")
}

func TestParseRules_PartialOverlayKeepsDefaults(t *testing.T) {
	doc := `
filing_statuses:
  mfj:
    overtime: {phase_range: 250000}
  single:
    overtime: {max_value: 10000}
`
	rules, err := ParseRules([]byte(doc))
	require.NoError(t, err)

	joint, err := rules.For(domain.FilingMarriedJointly)
	require.NoError(t, err)
	assert.True(t, joint.Eligible, "eligibility is kept when omitted")
	assert.True(t, decimal.NewFromInt(250000).Equal(joint.Overtime.PhaseRange))
	assert.True(t, decimal.NewFromInt(25000).Equal(joint.Overtime.MaxValue))
	assert.True(t, decimal.NewFromInt(300000).Equal(joint.Overtime.PhaseStart))
	assert.Equal(t, DefaultRules().FilingStatuses[domain.FilingMarriedJointly].Tips, joint.Tips)

	single, err := rules.For(domain.FilingSingle)
	require.NoError(t, err)
	assert.True(t, single.Eligible)
	assert.True(t, decimal.NewFromInt(10000).Equal(single.Overtime.MaxValue))
	assert.True(t, decimal.NewFromInt(100000).Equal(single.Tips.PhaseRange), "tips policy is kept when omitted")

	mfs, err := rules.For(domain.FilingMarriedSeparately)
	require.NoError(t, err)
	assert.False(t, mfs.Eligible)
}

func TestParseRules_OverlayCanChangeEligibility(t *testing.T) {
	rules, err := ParseRules([]byte("filing_statuses:\n  mfs:\n    eligible: true\n"))
	require.NoError(t, err)
	assert.True(t, rules.FilingStatuses[domain.FilingMarriedSeparately].Eligible)
}

func TestParseRules_MetadataAndTolerance(t *testing.T) {
	rules, err := ParseRules([]byte("metadata:\n  tax_year: 2026\ntolerance: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 2026, rules.Metadata.TaxYear)
	assert.Equal(t, DefaultRules().Metadata.Description, rules.Metadata.Description)
	assert.True(t, rules.Tolerance.IsZero())
}

func TestParseRules_RejectsDegenerateRange(t *testing.T) {
	doc := `
filing_statuses:
  single:
    eligible: true
    overtime: {max_value: 12500, phase_start: 150000, phase_range: 0}
    tips: {max_value: 25000, phase_start: 150000, phase_range: 100000}
`
	_, err := ParseRules([]byte(doc))
	assert.ErrorIs(t, err, domain.ErrDegeneratePhaseRange)
}

func TestParseRules_Errors(t *testing.T) {
	_, err := ParseRules([]byte("filing_statuses:\n  widowed: {}\n"))
	assert.ErrorIs(t, err, domain.ErrUnknownFilingStatus)

	_, err = ParseRules([]byte("tolerance: -1\n"))
	assert.Error(t, err)

	_, err = ParseRules([]byte("tolerance: [\n"))
	assert.Error(t, err)
}

func TestResolveRules(t *testing.T) {
	rules, err := ResolveRules("")
	require.NoError(t, err)
	assert.Equal(t, 2025, rules.Metadata.TaxYear)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metadata:\n  tax_year: 2027\n"), 0o644))
	rules, err = ResolveRules(path)
	require.NoError(t, err)
	assert.Equal(t, 2027, rules.Metadata.TaxYear)

	_, err = ResolveRules(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRules(t *testing.T) {
	assert.Error(t, ValidateRules(nil))
	assert.Error(t, ValidateRules(&domain.Rules{}))

	rules := DefaultRules()
	sr := rules.FilingStatuses[domain.FilingSingle]
	sr.Tips.MaxValue = decimal.NewFromInt(-1)
	rules.FilingStatuses[domain.FilingSingle] = sr
	assert.ErrorIs(t, ValidateRules(rules), domain.ErrNegativeCap)
}
