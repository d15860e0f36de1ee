package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Sign classes used by the templates to color monetary figures.
const (
	ClassPositive = "positive"
	ClassNegative = "negative"
)

// FormatCurrency renders a monetary value as dollars with thousands grouping
// and two decimal places, e.g. -1234.5 -> "-$1,234.50".
func FormatCurrency(v decimal.Decimal) string {
	s := v.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// SignClass classifies a monetary value for styling: strictly positive and
// strictly negative get a class, zero gets neither.
func SignClass(v decimal.Decimal) string {
	switch v.Sign() {
	case 1:
		return ClassPositive
	case -1:
		return ClassNegative
	default:
		return ""
	}
}
