package finledger

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a decimal amount with the conventions of its
// currency (symbol, separators, fraction digits).
func FormatAmount(v decimal.Decimal, code string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, code).Currency()
	minor := v.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.Round(0).IntPart())
}

// FormatSignedAmount is like FormatAmount but keeps an explicit sign for
// positive values. Zero is rendered as "-".
func FormatSignedAmount(v decimal.Decimal, code string) string {
	if v.IsZero() {
		return "-"
	}
	if v.IsPositive() {
		return "+" + FormatAmount(v, code)
	}
	return FormatAmount(v, code)
}
