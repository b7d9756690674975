package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/obbbcalc/internal/calculation"
	"github.com/rgehrsitz/obbbcalc/internal/config"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() *domain.EstimateInput {
	amount := decimal.NewFromInt(20000)
	return &domain.EstimateInput{
		FilingStatus: domain.FilingSingle,
		Income:       decimal.NewFromInt(200000),
		Mode:         domain.MultiplierStrict,
		Tiers: []domain.OvertimeTier{
			{Multiplier: domain.TimeAndAHalf, Amount: &amount, Kind: domain.AmountTotal},
		},
	}
}

func testEngine() *CompareEngine {
	return NewCompareEngine(calculation.NewDeductionCalculator(config.DefaultRules()))
}

func TestCompare_FilingStatuses(t *testing.T) {
	compSet, err := testEngine().Compare(context.Background(), testInput(), CompareOptions{
		Statuses: domain.AllFilingStatuses(),
	})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.True(t, decimal.NewFromInt(6250).Equal(compSet.BaseResult.TotalDeduction))
	assert.True(t, compSet.BaseResult.PhaseoutLimited)

	// single is the base and is skipped
	require.Len(t, compSet.AlternativeResults, 3)
	byStatus := map[domain.FilingStatus]ComparisonResult{}
	for _, r := range compSet.AlternativeResults {
		byStatus[r.FilingStatus] = r
	}

	hoh := byStatus[domain.FilingHeadOfHousehold]
	assert.True(t, hoh.DeductionDiffFromBase.IsZero())

	joint := byStatus[domain.FilingMarriedJointly]
	assert.True(t, decimal.NewFromInt(6666).Equal(joint.TotalDeduction), "joint ceiling is not reached")
	assert.True(t, decimal.NewFromInt(416).Equal(joint.DeductionDiffFromBase))
	assert.False(t, joint.PhaseoutLimited)

	mfs := byStatus[domain.FilingMarriedSeparately]
	assert.False(t, mfs.Eligible())
	assert.Contains(t, mfs.Ineligible, "filing_status")

	recs := strings.Join(compSet.Recommendations, "\n")
	assert.Contains(t, recs, "Largest Deduction: married_filing_jointly deducts $416 more")
	assert.Contains(t, recs, "Phase-Out")
	assert.Contains(t, recs, "Not Eligible: married_filing_separately")
}

func TestCompare_IncomeAdjustments(t *testing.T) {
	compSet, err := testEngine().Compare(context.Background(), testInput(), CompareOptions{
		IncomeAdjustments: []decimal.Decimal{decimal.NewFromInt(-50000), decimal.NewFromInt(60000), decimal.NewFromInt(-500000)},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 3)

	lower := compSet.AlternativeResults[0]
	assert.Equal(t, "income -50000", lower.ScenarioName)
	assert.True(t, decimal.NewFromInt(6666).Equal(lower.TotalDeduction))

	higher := compSet.AlternativeResults[1]
	assert.Equal(t, "income +60000", higher.ScenarioName)
	assert.True(t, higher.TotalDeduction.IsZero())
	assert.True(t, decimal.NewFromInt(-100).Equal(higher.DeductionPctFromBase))

	floored := compSet.AlternativeResults[2]
	assert.True(t, floored.Income.IsZero(), "income never goes negative")
}

func TestCompare_BaseErrorAborts(t *testing.T) {
	input := testInput()
	input.FilingStatus = domain.FilingMarriedSeparately
	_, err := testEngine().Compare(context.Background(), input, CompareOptions{})
	var inel *domain.IneligibleError
	assert.ErrorAs(t, err, &inel)
}

func TestCompare_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testEngine().Compare(ctx, testInput(), CompareOptions{Statuses: domain.AllFilingStatuses()})
	assert.ErrorIs(t, err, context.Canceled)
}

func sampleSet(t *testing.T) *ComparisonSet {
	t.Helper()
	compSet, err := testEngine().Compare(context.Background(), testInput(), CompareOptions{
		Statuses:  domain.AllFilingStatuses(),
		InputPath: "/path/to/input.yaml",
	})
	require.NoError(t, err)
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet(t))

	assert.Contains(t, out, "DEDUCTION SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: base (single)")
	assert.Contains(t, out, "Input: /path/to/input.yaml")
	assert.Contains(t, out, "$6250 *")
	assert.Contains(t, out, "not eligible")
	assert.Contains(t, out, "+$416")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(sampleSet(t))
	assert.True(t, strings.HasPrefix(out, "Base: base (single) | "))
	assert.Contains(t, out, "head_of_household: =")
	assert.Contains(t, out, "married_filing_jointly: +$416")
	assert.Contains(t, out, "married_filing_separately: n/a")
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"base (single)", "base", "single", "200000.00", "6250", "0", "6250", "yes", "yes", "0", "0.00"}, records[1])
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := sampleSet(t)
	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(compSet)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "base (single)", decoded["baseScenarioName"])
		assert.Len(t, decoded["alternativeResults"], 3)
		assert.Equal(t, pretty, strings.Contains(out, "\n"))
	}
}
