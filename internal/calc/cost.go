package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CostSummary is the derived totals of a list of costs plus overhead.
// Values are exact; round only when displaying.
type CostSummary struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	OverheadPercentage decimal.Decimal `json:"overhead_percentage"`
	OverheadAmount     decimal.Decimal `json:"overhead_amount"`
	Total              decimal.Decimal `json:"total"`
}

// Cost sums costs and applies an overhead percentage. Negative costs are
// summed like any other.
func Cost(costs []decimal.Decimal, overheadPercentage decimal.Decimal) CostSummary {
	subtotal := decimal.Zero
	for _, c := range costs {
		subtotal = subtotal.Add(c)
	}

	overhead := subtotal.Mul(overheadPercentage).Div(hundred)

	return CostSummary{
		Subtotal:           subtotal,
		OverheadPercentage: overheadPercentage,
		OverheadAmount:     overhead,
		Total:              subtotal.Add(overhead),
	}
}

// FormatMoney renders an amount with exactly two decimals, rounding half
// away from zero: 4.575 becomes "4.58".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCurrency renders an amount as dollars with thousands separators,
// e.g. "$1,234.50" or "-$3.00".
func FormatCurrency(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "$" + b.String() + "." + frac
}
