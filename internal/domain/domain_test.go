package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmountKind(t *testing.T) {
	tests := []struct {
		in      string
		want    AmountKind
		wantErr bool
	}{
		{"total", AmountTotal, false},
		{" TOTAL ", AmountTotal, false},
		{"premium", AmountPremiumOnly, false},
		{"premium_only", AmountPremiumOnly, false},
		{"unknown", AmountUnknown, false},
		{"", AmountUnknown, false},
		{"gross", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAmountKind(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAmountKind, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.True(t, AmountTotal.IncludesBasePay())
	assert.True(t, AmountUnknown.IncludesBasePay())
	assert.False(t, AmountPremiumOnly.IncludesBasePay())
}

func TestMultiplierMode_Permits(t *testing.T) {
	assert.True(t, MultiplierStrict.Permits(dec("1.5")))
	assert.True(t, MultiplierStrict.Permits(dec("2.0")))
	assert.False(t, MultiplierStrict.Permits(dec("1.75")))
	assert.False(t, MultiplierStrict.Permits(dec("1")))

	assert.True(t, MultiplierLenient.Permits(dec("1.75")))
	assert.True(t, MultiplierLenient.Permits(dec("3")))
	assert.False(t, MultiplierLenient.Permits(dec("1")))
	assert.False(t, MultiplierLenient.Permits(dec("0.5")))
}

func TestMultiplierMode_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mode       MultiplierMode
		multiplier string
		wantErr    bool
	}{
		{"strict time and a half", MultiplierStrict, "1.5", false},
		{"strict double time", MultiplierStrict, "2", false},
		{"strict straight time", MultiplierStrict, "1", false},
		{"strict below straight time", MultiplierStrict, "0.5", false},
		{"strict outside set", MultiplierStrict, "1.75", true},
		{"strict zero", MultiplierStrict, "0", true},
		{"lenient any above one", MultiplierLenient, "3", false},
		{"lenient straight time", MultiplierLenient, "1", false},
		{"lenient negative", MultiplierLenient, "-2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mode.Validate(dec(tt.multiplier))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ime *InvalidMultiplierError
			assert.True(t, errors.As(err, &ime))
		})
	}
}

func TestParseMultiplierMode(t *testing.T) {
	m, err := ParseMultiplierMode("")
	require.NoError(t, err)
	assert.Equal(t, MultiplierStrict, m)

	m, err = ParseMultiplierMode("Lenient")
	require.NoError(t, err)
	assert.Equal(t, MultiplierLenient, m)

	_, err = ParseMultiplierMode("fuzzy")
	assert.Error(t, err)
}

func TestNewOvertimeReport(t *testing.T) {
	r, err := NewOvertimeReport(dec("300"), dec("1.5"), "", MultiplierStrict)
	require.NoError(t, err)
	assert.Equal(t, AmountUnknown, r.Kind)

	_, err = NewOvertimeReport(dec("-1"), dec("1.5"), AmountTotal, MultiplierStrict)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewOvertimeReport(dec("1"), dec("1.5"), "bogus", MultiplierStrict)
	assert.ErrorIs(t, err, ErrInvalidAmountKind)

	_, err = NewOvertimeReport(dec("1"), dec("1.75"), AmountTotal, MultiplierStrict)
	var ime *InvalidMultiplierError
	require.True(t, errors.As(err, &ime))
	assert.Equal(t, MultiplierStrict, ime.Mode)
	assert.Contains(t, err.Error(), "1.5, 2.0")

	_, err = NewOvertimeReport(dec("1"), dec("0"), AmountTotal, MultiplierLenient)
	require.True(t, errors.As(err, &ime))
	assert.Contains(t, err.Error(), "must be positive")

	_, err = NewOvertimeReport(dec("1"), dec("3"), AmountTotal, MultiplierLenient)
	assert.NoError(t, err)

	r, err = NewOvertimeReport(dec("500"), dec("1"), AmountTotal, MultiplierStrict)
	require.NoError(t, err, "straight time is valid")
	assert.True(t, dec("1").Equal(r.Multiplier))

	_, err = NewOvertimeReport(dec("0"), dec("3"), AmountTotal, MultiplierStrict)
	assert.NoError(t, err, "zero amount skips the multiplier check")

	r, err = NewOvertimeReport(dec("1"), dec("1.75"), AmountPremiumOnly, MultiplierLenient)
	require.NoError(t, err)
	assert.Equal(t, AmountPremiumOnly, r.Kind)
}

func TestOvertimeTier(t *testing.T) {
	amount := dec("10")
	tier := OvertimeTier{Multiplier: dec("2"), Amount: &amount}
	assert.Equal(t, "2x", tier.Name())
	assert.True(t, tier.HasReportedAmount())
	assert.False(t, tier.HasHours())

	hours := dec("5")
	tier.Hours = &hours
	assert.False(t, tier.HasHours(), "hours alone are not a complete method")
	tier.BaseRate = &hours
	assert.True(t, tier.HasHours())

	tier.Label = "holiday"
	assert.Equal(t, "holiday", tier.Name())
}

func TestNewPhaseoutPolicy(t *testing.T) {
	p, err := NewPhaseoutPolicy(dec("12500"), dec("150000"), dec("100000"))
	require.NoError(t, err)
	assert.True(t, dec("250000").Equal(p.PhaseEnd()))

	_, err = NewPhaseoutPolicy(dec("12500"), dec("150000"), dec("0"))
	assert.ErrorIs(t, err, ErrDegeneratePhaseRange)

	_, err = NewPhaseoutPolicy(dec("12500"), dec("150000"), dec("-5"))
	assert.ErrorIs(t, err, ErrDegeneratePhaseRange)

	_, err = NewPhaseoutPolicy(dec("-1"), dec("150000"), dec("100000"))
	assert.ErrorIs(t, err, ErrNegativeCap)

	_, err = NewPhaseoutPolicy(dec("1"), dec("-150000"), dec("100000"))
	assert.ErrorIs(t, err, ErrNegativePhaseStart)
}

func TestNewDeductionResult(t *testing.T) {
	r := NewDeductionResult(dec("6666"), dec("6250"))
	assert.True(t, dec("6250").Equal(r.FinalDeduction))
	assert.True(t, r.Limited())

	r = NewDeductionResult(dec("100"), dec("12500"))
	assert.True(t, dec("100").Equal(r.FinalDeduction))
	assert.False(t, r.Limited())

	r = NewDeductionResult(dec("-5"), dec("100"))
	assert.True(t, r.FinalDeduction.IsZero(), "final deduction is never negative")
}

func TestParseFilingStatus(t *testing.T) {
	for in, want := range map[string]FilingStatus{
		"single":                 FilingSingle,
		"HOH":                    FilingHeadOfHousehold,
		"mfj":                    FilingMarriedJointly,
		"married_filing_jointly": FilingMarriedJointly,
		"mfs":                    FilingMarriedSeparately,
	} {
		got, err := ParseFilingStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilingStatus("widowed")
	assert.ErrorIs(t, err, ErrUnknownFilingStatus)

	assert.Equal(t, "Married filing jointly", FilingMarriedJointly.DisplayName())
}

func TestRules_For(t *testing.T) {
	rules := &Rules{FilingStatuses: map[FilingStatus]StatusRules{FilingSingle: {Eligible: true}}}

	sr, err := rules.For(FilingSingle)
	require.NoError(t, err)
	assert.True(t, sr.Eligible)

	_, err = rules.For(FilingMarriedJointly)
	assert.ErrorIs(t, err, ErrUnknownFilingStatus)

	assert.Equal(t, []FilingStatus{FilingSingle}, rules.Statuses())
}

func TestErrorMessages(t *testing.T) {
	conflict := &ConflictingEstimatesError{
		Tier:            "1.5x",
		ReportedPremium: dec("2000"),
		HoursPremium:    dec("1800"),
		Tolerance:       dec("1"),
	}
	assert.True(t, dec("200").Equal(conflict.Difference()))
	assert.Contains(t, conflict.Error(), "$2000")
	assert.Contains(t, conflict.Error(), "$1800")

	inel := &IneligibleError{Failed: []string{"non_exempt", "valid_ssn"}}
	assert.Contains(t, inel.Error(), "non_exempt, valid_ssn")
}
