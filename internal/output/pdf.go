package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
)

// PDFFormatter renders a one-page Letter summary
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(s *domain.EstimateSummary) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("summary is required")
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(36, 36, 36)
	pdf.SetAutoPageBreak(true, 36)
	pdf.SetTitle("OBBB Deduction Summary", false)
	pdf.SetCreator("obbb", false)
	if !s.GeneratedAt.IsZero() {
		pdf.SetCreationDate(s.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 28, "OBBB Deduction Summary", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	if s.PreparedFor != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 16, tr("Prepared for: "+s.PreparedFor), "", 1, "L", false, 0, "")
		pdf.Ln(6)
	}

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(150, 18, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 18, value, "", 1, "L", false, 0, "")
	}
	line("Total Deduction:", FormatDollars(s.TotalDeduction))
	line("Tips Deduction:", FormatDollars(s.Tips.FinalDeduction))
	line("Overtime Deduction:", FormatDollars(s.Overtime.FinalDeduction))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, tr("Filing status: "+s.FilingStatus.DisplayName()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 14, "MAGI: "+FormatDollars(s.Income), "", 1, "L", false, 0, "")
	for _, t := range s.Tiers {
		pdf.CellFormat(0, 14, tr(fmt.Sprintf("Overtime premium (%s): %s", t.Name, FormatDollars(t.Premium))), "", 1, "L", false, 0, "")
	}
	for _, w := range s.Warnings {
		pdf.MultiCell(0, 14, tr(w), "", "L", false)
	}
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 12, Disclaimer, "", "L", false)
	if s.Reference != "" {
		pdf.CellFormat(0, 12, "Reference: "+s.Reference, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
