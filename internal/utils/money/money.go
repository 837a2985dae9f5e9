package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to two decimal places (half away from zero).
// All stored totals, subtotals and profits pass through this before leaving the engine.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Pct returns amount * pct / 100, unrounded. Callers round the final figure.
func Pct(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(decimal.NewFromInt(100))
}
