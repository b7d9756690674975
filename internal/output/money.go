package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDollars formats whole dollars with thousands separators, e.g. $12,500.
// Amounts are truncated toward zero.
func FormatDollars(amount decimal.Decimal) string {
	return "$" + groupThousands(amount.Truncate(0).StringFixed(0))
}

// FormatCurrency formats dollars and cents, e.g. $12,500.00
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	return "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
