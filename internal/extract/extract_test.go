package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	if want == "" {
		want = "0"
	}
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		income   string
		tips     string
		overtime string
		matches  int
	}{
		{
			name:     "pay stub",
			text:     "Gross Pay: $2,150.00\nOvertime Pay 450.00\nTips 75.25",
			income:   "2150",
			tips:     "75.25",
			overtime: "450",
			matches:  3,
		},
		{
			name:     "lower case and spelling variants",
			text:     "ytd gross $52,000\nover-time $3,000\nover time 500\not 100",
			income:   "52000",
			overtime: "3600",
			matches:  4,
		},
		{
			name:    "allocated tips",
			text:    "Allocated tips      $1,200",
			tips:    "1200",
			matches: 1,
		},
		{
			name:    "label too far from amount",
			text:    "GROSS ......................... 5000",
			matches: 0,
		},
		{
			name:    "box 12 is not box 1",
			text:    "BOX 12 5000",
			matches: 0,
		},
		{
			name:    "words containing OT are ignored",
			text:    "NOTE 500 HOTEL 20",
			matches: 0,
		},
		{
			name:    "empty",
			text:    "",
			matches: 0,
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractText(tt.text)
			assert.Len(t, got.Matches, tt.matches)
			assertAmount(t, tt.income, got.Income)
			assertAmount(t, tt.tips, got.Tips)
			assertAmount(t, tt.overtime, got.Overtime)
		})
	}
}

func TestExtract_RejectsPDF(t *testing.T) {
	_, err := NewExtractor().Extract(strings.NewReader("%PDF-1.7\n..."))
	assert.ErrorIs(t, err, ErrBinaryDocument)
}

func TestExtractFiles_SumsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	stub1 := filepath.Join(dir, "stub1.txt")
	stub2 := filepath.Join(dir, "stub2.txt")
	require.NoError(t, os.WriteFile(stub1, []byte("GROSS 1,000.00\nOVERTIME 150.00"), 0o644))
	require.NoError(t, os.WriteFile(stub2, []byte("GROSS 1,000.00\nOVERTIME 50.00\nTIPS 20"), 0o644))

	got, err := NewExtractor().ExtractFiles([]string{stub1, stub2})
	require.NoError(t, err)

	assert.True(t, d("2000").Equal(got.Income))
	assert.True(t, d("200").Equal(got.Overtime))
	assert.True(t, d("20").Equal(got.Tips))
	require.Len(t, got.Matches, 5)
	assert.Equal(t, stub1, got.Matches[0].Source)
	assert.Equal(t, stub2, got.Matches[len(got.Matches)-1].Source)
	assert.False(t, got.Empty())
}

func TestExtractFiles_MissingFile(t *testing.T) {
	_, err := NewExtractor().ExtractFiles([]string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestAmounts_Apply(t *testing.T) {
	amounts := Amounts{Income: d("90000"), Tips: d("1500"), Overtime: d("6000")}

	t.Run("fills empty fields", func(t *testing.T) {
		input := &domain.EstimateInput{FilingStatus: domain.FilingSingle}
		filled := amounts.Apply(input)

		assert.Equal(t, []string{"income", "tips", "overtime"}, filled)
		assertAmount(t, "90000", input.Income)
		assertAmount(t, "1500", input.Tips)
		require.Len(t, input.Tiers, 1)
		assertAmount(t, "1.5", input.Tiers[0].Multiplier)
		assertAmount(t, "6000", *input.Tiers[0].Amount)
		assert.Equal(t, domain.AmountTotal, input.Tiers[0].Kind)
	})

	t.Run("keeps reported values", func(t *testing.T) {
		amount := d("100")
		input := &domain.EstimateInput{
			Income: d("50000"),
			Tiers:  []domain.OvertimeTier{{Multiplier: d("2"), Amount: &amount}},
		}
		filled := amounts.Apply(input)

		assert.Equal(t, []string{"tips"}, filled)
		assertAmount(t, "50000", input.Income)
		require.Len(t, input.Tiers, 1)
		assertAmount(t, "2", input.Tiers[0].Multiplier)
	})

	t.Run("nothing scraped", func(t *testing.T) {
		input := &domain.EstimateInput{}
		assert.Empty(t, Amounts{}.Apply(input))
		assert.Empty(t, input.Tiers)
	})
}
