package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/obbbcalc/internal/domain"
)

// ConsoleFormatter renders a plain-text summary for the terminal
type ConsoleFormatter struct {
	Verbose bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(s *domain.EstimateSummary) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("summary is required")
	}
	var buf bytes.Buffer
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "OBBB DEDUCTION SUMMARY")
	fmt.Fprintln(&buf, rule)
	if s.PreparedFor != "" {
		fmt.Fprintf(&buf, "Prepared for:   %s\n", s.PreparedFor)
	}
	fmt.Fprintf(&buf, "Filing status:  %s\n", s.FilingStatus.DisplayName())
	fmt.Fprintf(&buf, "MAGI:           %s\n", FormatDollars(s.Income))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "OVERTIME PREMIUM BY TIER")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	if len(s.Tiers) == 0 {
		fmt.Fprintln(&buf, "  (no overtime reported)")
	}
	for _, t := range s.Tiers {
		fmt.Fprintf(&buf, "  %-12s %12s\n", t.Name, FormatDollars(t.Premium))
		if c.Verbose && t.ReportedPremium != nil && t.HoursPremium != nil {
			fmt.Fprintf(&buf, "    reported %s, hours x rate %s\n",
				FormatDollars(*t.ReportedPremium), FormatDollars(*t.HoursPremium))
		}
	}
	fmt.Fprintln(&buf)

	writeDeduction(&buf, "OVERTIME", s.Overtime)
	writeDeduction(&buf, "TIPS", s.Tips)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Total Deduction:     %s\n", FormatDollars(s.TotalDeduction))
	fmt.Fprintf(&buf, "Tips Deduction:      %s\n", FormatDollars(s.Tips.FinalDeduction))
	fmt.Fprintf(&buf, "Overtime Deduction:  %s\n", FormatDollars(s.Overtime.FinalDeduction))
	fmt.Fprintln(&buf, rule)

	if len(s.Warnings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "NOTES:")
		for _, w := range s.Warnings {
			fmt.Fprintf(&buf, "• %s\n", w)
		}
	}
	if c.Verbose {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "ASSUMPTIONS:")
		for _, a := range DefaultAssumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}
	if s.Reference != "" {
		fmt.Fprintf(&buf, "\nReference: %s\n", s.Reference)
	}
	fmt.Fprintf(&buf, "\n%s\n", Disclaimer)
	return buf.Bytes(), nil
}

func writeDeduction(buf *bytes.Buffer, label string, r domain.DeductionResult) {
	fmt.Fprintf(buf, "%s\n", label)
	fmt.Fprintf(buf, "  Eligible amount:     %s\n", FormatDollars(r.GrossPremium))
	fmt.Fprintf(buf, "  Phase-out ceiling:   %s\n", FormatDollars(r.PhaseoutCeiling))
	fmt.Fprintf(buf, "  Deduction:           %s\n", FormatDollars(r.FinalDeduction))
	fmt.Fprintln(buf)
}
