// Package extract scrapes income, tips and overtime figures out of pay-stub
// and W-2 text so the estimate form can be pre-filled.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrBinaryDocument is returned for PDF files that have not been converted to text
var ErrBinaryDocument = errors.New("document is a PDF; convert it to text first (for example with pdftotext)")

// Field identifies which amount a label feeds
type Field string

const (
	FieldIncome   Field = "income"
	FieldTips     Field = "tips"
	FieldOvertime Field = "overtime"
)

// Labels are matched on upper-cased text. The amount must follow within 20
// non-digit characters.
const amountSuffix = `\b[^\d]{0,20}?\$?(\d[\d,]*(?:\.\d+)?)`

var defaultPatterns = []struct {
	field Field
	expr  string
}{
	{FieldIncome, `\b(YTD GROSS|GROSS|BOX 1)` + amountSuffix},
	{FieldTips, `\b(ALLOCATED TIPS|TIPS|BOX 7|BOX 8)` + amountSuffix},
	{FieldOvertime, `\b(OVER[-\s]?TIME|OT)` + amountSuffix},
}

// Match is one label/amount pair found in a document
type Match struct {
	Field  Field           `json:"field"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Source string          `json:"source,omitempty"`
}

// Amounts holds the summed figures across every match
type Amounts struct {
	Income   decimal.Decimal `json:"income"`
	Tips     decimal.Decimal `json:"tips"`
	Overtime decimal.Decimal `json:"overtime"`
	Matches  []Match         `json:"matches,omitempty"`
}

// Add folds other into a
func (a *Amounts) Add(other Amounts) {
	a.Income = a.Income.Add(other.Income)
	a.Tips = a.Tips.Add(other.Tips)
	a.Overtime = a.Overtime.Add(other.Overtime)
	a.Matches = append(a.Matches, other.Matches...)
}

// Empty reports whether nothing was found
func (a Amounts) Empty() bool {
	return len(a.Matches) == 0
}

type pattern struct {
	field Field
	re    *regexp.Regexp
}

// Extractor finds labelled amounts in document text
type Extractor struct {
	patterns []pattern
}

// NewExtractor creates an extractor with the built-in label set
func NewExtractor() *Extractor {
	e := &Extractor{}
	for _, p := range defaultPatterns {
		e.patterns = append(e.patterns, pattern{field: p.field, re: regexp.MustCompile(p.expr)})
	}
	return e
}

// Extract scans one document
func (e *Extractor) Extract(r io.Reader) (Amounts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Amounts{}, fmt.Errorf("failed to read document: %w", err)
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return Amounts{}, ErrBinaryDocument
	}
	return e.ExtractText(string(data)), nil
}

// ExtractText scans already-loaded text
func (e *Extractor) ExtractText(text string) Amounts {
	text = strings.ToUpper(text)

	var out Amounts
	for _, p := range e.patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			amount, err := parseAmount(m[2])
			if err != nil {
				continue
			}
			out.Matches = append(out.Matches, Match{Field: p.field, Label: m[1], Amount: amount})
			switch p.field {
			case FieldIncome:
				out.Income = out.Income.Add(amount)
			case FieldTips:
				out.Tips = out.Tips.Add(amount)
			case FieldOvertime:
				out.Overtime = out.Overtime.Add(amount)
			}
		}
	}
	return out
}

// ExtractFiles scans every file and sums the results
func (e *Extractor) ExtractFiles(paths []string) (Amounts, error) {
	var total Amounts
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return Amounts{}, fmt.Errorf("failed to open %s: %w", path, err)
		}
		amounts, err := e.Extract(f)
		f.Close()
		if err != nil {
			return Amounts{}, fmt.Errorf("%s: %w", path, err)
		}
		for i := range amounts.Matches {
			amounts.Matches[i].Source = path
		}
		total.Add(amounts)
	}
	return total, nil
}

// DefaultStubMultiplier is assumed for overtime scraped from a stub, which
// rarely states the rate.
var DefaultStubMultiplier = decimal.NewFromFloat(1.5)

// Apply fills empty fields of input from the scraped amounts and returns the
// names of the fields it set. Values already present in input are kept.
// Scraped overtime becomes a single 1.5x tier reported as total pay.
func (a Amounts) Apply(input *domain.EstimateInput) []string {
	var filled []string
	if input.Income.IsZero() && a.Income.IsPositive() {
		input.Income = a.Income
		filled = append(filled, string(FieldIncome))
	}
	if input.Tips.IsZero() && a.Tips.IsPositive() {
		input.Tips = a.Tips
		filled = append(filled, string(FieldTips))
	}
	if len(input.Tiers) == 0 && a.Overtime.IsPositive() {
		amount := a.Overtime
		input.Tiers = append(input.Tiers, domain.OvertimeTier{
			Label:      "pay stub overtime",
			Multiplier: DefaultStubMultiplier,
			Amount:     &amount,
			Kind:       domain.AmountTotal,
		})
		filled = append(filled, string(FieldOvertime))
	}
	return filled
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
