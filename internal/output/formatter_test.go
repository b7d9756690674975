package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSummary() *domain.EstimateSummary {
	reported := decimal.NewFromInt(6666)
	return &domain.EstimateSummary{
		Reference:    "ref-123",
		GeneratedAt:  time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		PreparedFor:  "Pat Example",
		FilingStatus: domain.FilingSingle,
		Income:       decimal.NewFromInt(200000),
		Mode:         domain.MultiplierStrict,
		Tiers: []domain.TierResult{{
			Name:            "1.5x",
			Multiplier:      domain.TimeAndAHalf,
			ReportedPremium: &reported,
			Premium:         reported,
		}},
		Overtime:       domain.NewDeductionResult(decimal.NewFromInt(6666), decimal.NewFromInt(6250)),
		Tips:           domain.NewDeductionResult(decimal.NewFromInt(1200), decimal.NewFromInt(12500)),
		TotalDeduction: decimal.NewFromInt(7450),
		Warnings:       []string{"Overtime deduction limited by income phase-out."},
	}
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.EstimateSummary
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(s *domain.EstimateSummary) ([]byte, error) {
			received = s
			return []byte("test output"), nil
		},
	}

	summary := buildTestSummary()
	out, err := f.Format(summary)
	require.NoError(t, err)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Same(t, summary, received)
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	f := FormatterFunc{ID: "x", F: func(*domain.EstimateSummary) ([]byte, error) {
		return []byte("test output content"), nil
	}}

	filename, err := WriteFormatted(f, buildTestSummary(), dir, "txt")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(filename))
	assert.Contains(t, filepath.Base(filename), "deduction_summary_")
	assert.Equal(t, ".txt", filepath.Ext(filename))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "err", F: func(*domain.EstimateSummary) ([]byte, error) {
		return nil, fmt.Errorf("formatter error")
	}}

	filename, err := WriteFormatted(f, buildTestSummary(), t.TempDir(), "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	for name, ext := range map[string]string{"console": "txt", "json": "json", "csv": "csv", "html": "html", "pdf": "pdf"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
		assert.Equal(t, ext, Extension(f))
	}

	f := GetFormatterByName("TEXT")
	require.NotNil(t, f)
	assert.Equal(t, "console", f.Name())

	assert.Nil(t, GetFormatterByName("non-existent"))
	assert.Equal(t, []string{"console", "csv", "html", "json", "pdf"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "text")
}

func TestStamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &domain.EstimateSummary{}
	Stamp(s, now)
	assert.Len(t, s.Reference, 36)
	assert.Equal(t, now, s.GeneratedAt)

	ref := s.Reference
	Stamp(s, now.Add(time.Hour))
	assert.Equal(t, ref, s.Reference, "existing reference kept")
	assert.Equal(t, now, s.GeneratedAt)
}

func TestFormatDollars(t *testing.T) {
	tests := map[string]string{
		"0":          "$0",
		"999":        "$999",
		"1000":       "$1,000",
		"12500":      "$12,500",
		"6666.99":    "$6,666",
		"1234567":    "$1,234,567",
		"-2500":      "$-2,500",
		"250000.004": "$250,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDollars(decimal.RequireFromString(in)), in)
	}
	assert.Equal(t, "$12,500.50", FormatCurrency(decimal.RequireFromString("12500.5")))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestSummary())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "OBBB DEDUCTION SUMMARY")
	assert.Contains(t, content, "Prepared for:   Pat Example")
	assert.Contains(t, content, "Total Deduction:     $7,450")
	assert.Contains(t, content, "Tips Deduction:      $1,200")
	assert.Contains(t, content, "Overtime Deduction:  $6,250")
	assert.Contains(t, content, "limited by income phase-out")
	assert.Contains(t, content, "Reference: ref-123")
	assert.NotContains(t, content, "ASSUMPTIONS:")

	verbose, err := ConsoleFormatter{Verbose: true}.Format(buildTestSummary())
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "ASSUMPTIONS:")

	_, err = ConsoleFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(buildTestSummary())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "single", decoded["filing_status"])
	assert.Equal(t, "7450", decoded["total_deduction"])
	assert.Contains(t, string(out), "\n  ")

	compact, err := JSONFormatter{}.Format(buildTestSummary())
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestSummary())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Amount"}, records[0])

	values := map[string]string{}
	for _, r := range records[1:] {
		values[r[0]] = r[1]
	}
	assert.Equal(t, "single", values["FilingStatus"])
	assert.Equal(t, "6666", values["TierPremium:1.5x"])
	assert.Equal(t, "6250", values["OvertimeDeduction"])
	assert.Equal(t, "1200", values["TipsDeduction"])
	assert.Equal(t, "7450", values["TotalDeduction"])
	assert.Equal(t, "ref-123", values["Reference"])
}

func TestHTMLFormatter(t *testing.T) {
	s := buildTestSummary()
	s.PreparedFor = "<script>alert(1)</script>"
	out, err := HTMLFormatter{}.Format(s)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>OBBB Deduction Summary</title>")
	assert.Contains(t, content, "$7,450")
	assert.Contains(t, content, "Single")
	assert.Contains(t, content, "Generated on: 2026-02-01 09:30:00")
	assert.NotContains(t, content, "<script>alert(1)</script>", "user text is escaped")
	assert.Contains(t, content, Disclaimer)
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestSummary())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)

	_, err = PDFFormatter{}.Format(nil)
	assert.Error(t, err)
}
