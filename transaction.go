package finledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RawTransaction is one row as read from the source file. It is immutable
// once read: the normalizer derives from it, never mutates it.
type RawTransaction struct {
	Date        Date
	Category    string
	Amount      string // raw amount field, possibly symbol-prefixed
	Description string
}

// NormalizedTransaction is a transaction expressed in the base currency,
// with provenance kept for audit: the original amount, its currency, and the
// rate that was applied.
//
// Invariant: BaseAmount = OriginalAmount * Rate.
type NormalizedTransaction struct {
	Date             Date
	Category         string
	Description      string
	BaseAmount       decimal.Decimal
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	Rate             decimal.Decimal
	Tier             RateTier
}

// Converted reports whether the amount actually changed currency during
// normalization. False for base-currency rows and for unknown currencies
// carried through at rate 1.
func (t NormalizedTransaction) Converted() bool {
	return Rate{Value: t.Rate, Tier: t.Tier}.Converted()
}

func (t NormalizedTransaction) String() string {
	if !t.Converted() {
		return fmt.Sprintf("%s %s %s", t.Date, t.Category, t.BaseAmount)
	}
	return fmt.Sprintf("%s %s %s (from %s %s at %s)",
		t.Date, t.Category, t.BaseAmount, t.OriginalAmount, t.OriginalCurrency, t.Rate)
}
