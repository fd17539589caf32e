package finledger

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalizeIdentity(t *testing.T) {
	cfg := testConfig()
	n := NewNormalizer(cfg, NewRateSource(cfg, nil))

	tx, err := n.Normalize(RawTransaction{
		Date:     NewDate(2024, time.March, 1),
		Category: "Food",
		Amount:   "E£250.50",
	})
	if err != nil {
		t.Fatalf("Normalize unexpected error: %v", err)
	}
	if tx.OriginalCurrency != "EGP" || tx.Tier != TierIdentity {
		t.Errorf("got %s %s, want EGP identity", tx.OriginalCurrency, tx.Tier)
	}
	if !tx.BaseAmount.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("BaseAmount = %v, want 250.50", tx.BaseAmount)
	}
	if !tx.BaseAmount.Equal(tx.OriginalAmount) {
		t.Error("identity conversion must keep the amount unchanged")
	}
}

func TestNormalizeAllSkipsMalformedRows(t *testing.T) {
	cfg := testConfig()
	n := NewNormalizer(cfg, NewRateSource(cfg, nil))

	rows := []RawTransaction{
		{Date: NewDate(2024, time.March, 1), Category: "Food", Amount: "100"},
		{Date: NewDate(2024, time.March, 2), Category: "Broken", Amount: "not money"},
		{Date: NewDate(2024, time.March, 3), Category: "Rent", Amount: "-2000"},
	}
	txs, summary, err := n.NormalizeAll(rows)
	if err != nil {
		t.Fatalf("NormalizeAll unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if summary.RowsSkipped() != 1 {
		t.Fatalf("RowsSkipped = %d, want 1", summary.RowsSkipped())
	}
	skipped := summary.Skipped[0]
	if skipped.Index != 1 || skipped.Category != "Broken" {
		t.Errorf("skipped row = %+v, want index 1 category Broken", skipped)
	}
}

func TestNormalizeAllEmpty(t *testing.T) {
	cfg := testConfig()
	n := NewNormalizer(cfg, NewRateSource(cfg, nil))
	if _, _, err := n.NormalizeAll(nil); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("NormalizeAll(nil) error = %v, want ErrEmptyBatch", err)
	}
}

func TestNormalizeAllSortsChronologically(t *testing.T) {
	cfg := testConfig()
	n := NewNormalizer(cfg, NewRateSource(cfg, nil))

	rows := []RawTransaction{
		{Date: NewDate(2024, time.May, 10), Category: "B", Amount: "1"},
		{Date: NewDate(2024, time.January, 2), Category: "A", Amount: "1"},
		{Date: NewDate(2024, time.May, 10), Category: "C", Amount: "1"},
	}
	txs, _, err := n.NormalizeAll(rows)
	if err != nil {
		t.Fatal(err)
	}
	if txs[0].Category != "A" {
		t.Errorf("first transaction is %s, want the oldest (A)", txs[0].Category)
	}
	// Same-day rows keep their input order.
	if txs[1].Category != "B" || txs[2].Category != "C" {
		t.Errorf("same-day order = %s, %s, want B, C", txs[1].Category, txs[2].Category)
	}
}

// TestNormalizeMixedCurrencies walks a small mixed batch against a USD base
// with only the static fallback table available.
func TestNormalizeMixedCurrencies(t *testing.T) {
	cfg := testConfig()
	cfg.BaseCurrency = "USD"
	n := NewNormalizer(cfg, NewRateSource(cfg, nil))

	rows := []RawTransaction{
		{Date: NewDate(2024, time.April, 1), Category: "Food", Amount: "$100.00"},
		{Date: NewDate(2024, time.April, 2), Category: "Transport", Amount: "€85.50"},
		{Date: NewDate(2024, time.April, 3), Category: "Charity", Amount: "£75.25"},
	}
	txs, summary, err := n.NormalizeAll(rows)
	if err != nil {
		t.Fatalf("NormalizeAll unexpected error: %v", err)
	}

	wantAmounts := []string{"100.00", "92.34", "94.815"} // 85.50*1.08, 75.25*1.26
	wantTiers := []RateTier{TierIdentity, TierFallback, TierFallback}
	for i, tx := range txs {
		if !tx.BaseAmount.Equal(decimal.RequireFromString(wantAmounts[i])) {
			t.Errorf("row %d BaseAmount = %v, want %s", i, tx.BaseAmount, wantAmounts[i])
		}
		if tx.Tier != wantTiers[i] {
			t.Errorf("row %d tier = %s, want %s", i, tx.Tier, wantTiers[i])
		}
	}

	if summary.Rows != 3 || summary.RowsConverted != 2 {
		t.Errorf("summary rows = %d converted = %d, want 3 and 2", summary.Rows, summary.RowsConverted)
	}
	if want := []string{"EUR", "GBP"}; !slices.Equal(summary.CurrenciesSeen, want) {
		t.Errorf("CurrenciesSeen = %v, want %v", summary.CurrenciesSeen, want)
	}
	if len(summary.Unconverted) != 0 {
		t.Errorf("Unconverted = %v, want empty", summary.Unconverted)
	}
	if summary.RunID == "" {
		t.Error("summary has no run id")
	}
}

func TestNormalizeUnknownCurrencyCarriedThrough(t *testing.T) {
	cfg := testConfig()
	cfg.SupportedCurrencies = append(cfg.SupportedCurrencies, "NZD")
	n := NewNormalizer(cfg, NewRateSource(cfg, nil))

	rows := []RawTransaction{
		{Date: NewDate(2024, time.April, 1), Category: "Travel", Amount: "120 NZD"},
	}
	txs, summary, err := n.NormalizeAll(rows)
	if err != nil {
		t.Fatal(err)
	}
	tx := txs[0]
	if tx.Tier != TierUnknown {
		t.Fatalf("tier = %s, want unknown", tx.Tier)
	}
	if !tx.BaseAmount.Equal(tx.OriginalAmount) {
		t.Errorf("unknown rate must carry the amount through, got %v", tx.BaseAmount)
	}
	if want := []string{"NZD"}; !slices.Equal(summary.Unconverted, want) {
		t.Errorf("Unconverted = %v, want %v", summary.Unconverted, want)
	}
}
