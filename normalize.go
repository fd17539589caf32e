package finledger

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyBatch reports a run with no transactions to analyze. Unlike
// row-level conditions it surfaces to the caller: a silently zeroed ledger
// would hide a broken input.
var ErrEmptyBatch = errors.New("no transactions to analyze")

// SkippedRow records one row dropped during normalization and why.
type SkippedRow struct {
	Index    int // position in the input batch
	Category string
	Amount   string
	Reason   string
}

// BatchSummary accumulates conversion statistics over one normalization run.
type BatchSummary struct {
	RunID          string // identifies the run in report artifacts
	Rows           int    // rows received
	RowsConverted  int    // rows whose amount changed currency
	Skipped        []SkippedRow
	CurrenciesSeen []string // non-base currencies encountered, sorted
	Unconverted    []string // currencies carried through at rate 1, sorted
}

// RowsSkipped returns the number of rows dropped during the run.
func (s *BatchSummary) RowsSkipped() int { return len(s.Skipped) }

// Normalizer converts raw transactions into base-currency records using the
// currency detector and the rate source.
type Normalizer struct {
	base     string
	detector *CurrencyDetector
	rates    *RateSource
}

// NewNormalizer builds a normalizer over a configured rate source.
func NewNormalizer(cfg Config, rates *RateSource) *Normalizer {
	return &Normalizer{
		base:     cfg.BaseCurrency,
		detector: NewCurrencyDetector(cfg),
		rates:    rates,
	}
}

// Normalize converts a single raw transaction. Each normalization is
// independent of every other row. The only failure mode is a malformed
// amount field; rate degradation never fails (see RateSource).
func (n *Normalizer) Normalize(raw RawTransaction) (NormalizedTransaction, error) {
	code, numeric, err := n.detector.Detect(raw.Amount)
	if err != nil {
		return NormalizedTransaction{}, err
	}
	amount, err := decimal.NewFromString(numeric)
	if err != nil {
		// Detect has already vetted the numeric text.
		return NormalizedTransaction{}, fmt.Errorf("%w: %q: %v", ErrMalformedAmount, raw.Amount, err)
	}

	rate := Rate{Value: one, Tier: TierIdentity}
	if code != n.base {
		rate = n.rates.GetRate(code, n.base)
	}
	return NormalizedTransaction{
		Date:             raw.Date,
		Category:         raw.Category,
		Description:      raw.Description,
		BaseAmount:       amount.Mul(rate.Value),
		OriginalAmount:   amount,
		OriginalCurrency: code,
		Rate:             rate.Value,
		Tier:             rate.Tier,
	}, nil
}

// NormalizeAll converts a batch of rows. Malformed rows are skipped and
// recorded in the summary, never aborting the batch. The result is sorted
// chronologically (stable), ready for reconciliation. An empty input batch
// returns ErrEmptyBatch.
func (n *Normalizer) NormalizeAll(rows []RawTransaction) ([]NormalizedTransaction, *BatchSummary, error) {
	if len(rows) == 0 {
		return nil, nil, ErrEmptyBatch
	}

	summary := &BatchSummary{RunID: uuid.NewString(), Rows: len(rows)}
	seen := make(map[string]bool)
	unconverted := make(map[string]bool)

	txs := make([]NormalizedTransaction, 0, len(rows))
	for i, raw := range rows {
		tx, err := n.Normalize(raw)
		if err != nil {
			summary.Skipped = append(summary.Skipped, SkippedRow{
				Index:    i,
				Category: raw.Category,
				Amount:   raw.Amount,
				Reason:   err.Error(),
			})
			continue
		}
		if tx.Converted() {
			summary.RowsConverted++
		}
		if tx.OriginalCurrency != n.base {
			seen[tx.OriginalCurrency] = true
			if tx.Tier == TierUnknown {
				unconverted[tx.OriginalCurrency] = true
			}
		}
		txs = append(txs, tx)
	}

	summary.CurrenciesSeen = sortedKeys(seen)
	summary.Unconverted = sortedKeys(unconverted)

	// Input order is not assumed chronological; reconciliation needs it so.
	slices.SortStableFunc(txs, func(a, b NormalizedTransaction) int {
		return a.Date.Compare(b.Date)
	})
	return txs, summary, nil
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
