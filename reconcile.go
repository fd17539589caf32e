package finledger

import (
	"slices"

	"github.com/shopspring/decimal"
)

// SpendingClass is the simplified classification of a category.
type SpendingClass int

const (
	ClassNormal SpendingClass = iota
	ClassCharity
	ClassLending
)

func (c SpendingClass) String() string {
	switch c {
	case ClassCharity:
		return "charity"
	case ClassLending:
		return "lending"
	default:
		return "normal"
	}
}

// SpendingClasses lists all classes in report order.
var SpendingClasses = []SpendingClass{ClassCharity, ClassLending, ClassNormal}

// Classifier maps a category label to its spending class. Charity and
// lending are explicit allow-lists; everything else is normal.
type Classifier struct {
	charity map[string]bool
	lending map[string]bool
}

// NewClassifier builds a classifier from the configured allow-lists.
func NewClassifier(cfg Config) *Classifier {
	c := &Classifier{
		charity: make(map[string]bool, len(cfg.CharityCategories)),
		lending: make(map[string]bool, len(cfg.LendingCategories)),
	}
	for _, cat := range cfg.CharityCategories {
		c.charity[cat] = true
	}
	for _, cat := range cfg.LendingCategories {
		c.lending[cat] = true
	}
	return c
}

// Classify returns the spending class of a category.
func (c *Classifier) Classify(category string) SpendingClass {
	switch {
	case c.charity[category]:
		return ClassCharity
	case c.lending[category]:
		return ClassLending
	default:
		return ClassNormal
	}
}

// PeriodLedger is the aggregated result for one analysis bucket.
//
// Income and Spending exclude lending-class transactions: money lent out is
// not ordinary spending and a repayment is not earnings. CategoryTotals and
// SimplifiedTotals are the raw audit view and include everything.
// OutstandingLending and ExcessRepayment derive from one running signed
// lending balance and are never both positive.
type PeriodLedger struct {
	Key PeriodKey

	Income     decimal.Decimal // non-negative
	Spending   decimal.Decimal // non-negative
	NetBalance decimal.Decimal // Income - Spending

	CategoryTotals   map[string]decimal.Decimal
	SimplifiedTotals map[SpendingClass]decimal.Decimal

	LentOut            decimal.Decimal // gross amount lent out in the period
	Repaid             decimal.Decimal // gross repayments received in the period
	OutstandingLending decimal.Decimal // non-negative
	ExcessRepayment    decimal.Decimal // non-negative

	TransactionCount int
	Converted        int
	CurrenciesSeen   []string

	lendingBalance decimal.Decimal // running signed balance, folded chronologically
	currencies     map[string]bool
}

func newPeriodLedger(key PeriodKey) *PeriodLedger {
	return &PeriodLedger{
		Key:              key,
		CategoryTotals:   make(map[string]decimal.Decimal),
		SimplifiedTotals: make(map[SpendingClass]decimal.Decimal),
		currencies:       make(map[string]bool),
	}
}

// apply folds one transaction into the ledger. Transactions must arrive in
// chronological order: the lending balance is a running fold.
func (l *PeriodLedger) apply(tx NormalizedTransaction, class SpendingClass, base string) {
	l.TransactionCount++
	if tx.Converted() {
		l.Converted++
	}
	if tx.OriginalCurrency != base {
		l.currencies[tx.OriginalCurrency] = true
	}

	l.CategoryTotals[tx.Category] = l.CategoryTotals[tx.Category].Add(tx.BaseAmount)
	l.SimplifiedTotals[class] = l.SimplifiedTotals[class].Add(tx.BaseAmount)

	if class == ClassLending {
		l.lendingBalance = l.lendingBalance.Add(tx.BaseAmount)
		if tx.BaseAmount.IsNegative() {
			l.LentOut = l.LentOut.Add(tx.BaseAmount.Neg())
		} else {
			l.Repaid = l.Repaid.Add(tx.BaseAmount)
		}
		return
	}
	if tx.BaseAmount.IsPositive() {
		l.Income = l.Income.Add(tx.BaseAmount)
	} else if tx.BaseAmount.IsNegative() {
		l.Spending = l.Spending.Add(tx.BaseAmount.Neg())
	}
}

// finalize settles the lending balance into its reported fields and fixes
// the derived totals.
func (l *PeriodLedger) finalize() {
	switch {
	case l.lendingBalance.IsNegative():
		l.OutstandingLending = l.lendingBalance.Neg()
		l.ExcessRepayment = decimal.Zero
	case l.lendingBalance.IsPositive():
		l.ExcessRepayment = l.lendingBalance
		l.OutstandingLending = decimal.Zero
	default:
		l.OutstandingLending = decimal.Zero
		l.ExcessRepayment = decimal.Zero
	}
	l.NetBalance = l.Income.Sub(l.Spending)
	l.CurrenciesSeen = sortedKeys(l.currencies)
}

// ClassTotal returns the simplified total for a class (zero when absent).
func (l *PeriodLedger) ClassTotal(class SpendingClass) decimal.Decimal {
	return l.SimplifiedTotals[class]
}

// CharitySpending returns the magnitude of charity-class spending.
func (l *PeriodLedger) CharitySpending() decimal.Decimal {
	total := l.SimplifiedTotals[ClassCharity]
	if total.IsNegative() {
		return total.Neg()
	}
	return decimal.Zero
}

// LedgerSet holds the reconciled ledgers of one run: the all-time bucket
// plus one bucket per calendar year and per calendar month the data spans.
type LedgerSet struct {
	Base    string // base currency of all amounts
	AllTime *PeriodLedger
	Yearly  map[int]*PeriodLedger
	Monthly map[PeriodKey]*PeriodLedger
}

// Years returns the years with data, ascending.
func (s *LedgerSet) Years() []int {
	years := make([]int, 0, len(s.Yearly))
	for y := range s.Yearly {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Months returns the monthly keys with data, chronologically.
func (s *LedgerSet) Months() []PeriodKey {
	keys := make([]PeriodKey, 0, len(s.Monthly))
	for k := range s.Monthly {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, PeriodKey.Compare)
	return keys
}

// Reconciler folds a normalized transaction stream into period ledgers.
type Reconciler struct {
	base       string
	classifier *Classifier
}

// NewReconciler builds a reconciler from the configured allow-lists.
func NewReconciler(cfg Config) *Reconciler {
	return &Reconciler{base: cfg.BaseCurrency, classifier: NewClassifier(cfg)}
}

// Classify exposes the simplified classification of a category.
func (r *Reconciler) Classify(category string) SpendingClass {
	return r.classifier.Classify(category)
}

// Reconcile aggregates the transactions into the all-time, yearly and
// monthly ledgers. Every transaction contributes to the all-time bucket and
// to exactly one yearly and one monthly bucket, by its date. Each bucket
// folds its own lending balance independently: outstanding lending is not
// carried across period boundaries.
//
// The input need not be sorted; Reconcile orders it chronologically before
// folding. An empty input returns ErrEmptyBatch.
func (r *Reconciler) Reconcile(txs []NormalizedTransaction) (*LedgerSet, error) {
	if len(txs) == 0 {
		return nil, ErrEmptyBatch
	}

	ordered := slices.Clone(txs)
	slices.SortStableFunc(ordered, func(a, b NormalizedTransaction) int {
		return a.Date.Compare(b.Date)
	})

	set := &LedgerSet{
		Base:    r.base,
		AllTime: newPeriodLedger(AllTimeKey()),
		Yearly:  make(map[int]*PeriodLedger),
		Monthly: make(map[PeriodKey]*PeriodLedger),
	}

	for _, tx := range ordered {
		class := r.classifier.Classify(tx.Category)

		year, ok := set.Yearly[tx.Date.Year()]
		if !ok {
			year = newPeriodLedger(YearKey(tx.Date.Year()))
			set.Yearly[tx.Date.Year()] = year
		}
		mkey := MonthKey(tx.Date.Year(), tx.Date.Month())
		month, ok := set.Monthly[mkey]
		if !ok {
			month = newPeriodLedger(mkey)
			set.Monthly[mkey] = month
		}

		set.AllTime.apply(tx, class, r.base)
		year.apply(tx, class, r.base)
		month.apply(tx, class, r.base)
	}

	set.AllTime.finalize()
	for _, l := range set.Yearly {
		l.finalize()
	}
	for _, l := range set.Monthly {
		l.finalize()
	}
	return set, nil
}
