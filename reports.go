package finledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// This file derives the secondary report views from a reconciled LedgerSet:
// lending activity, charity analysis, top categories and monthly trends.

// LendingActivity summarizes lending for one bucket.
type LendingActivity struct {
	Key         PeriodKey
	LentOut     decimal.Decimal
	Repaid      decimal.Decimal
	Outstanding decimal.Decimal
	Excess      decimal.Decimal
}

func lendingActivity(l *PeriodLedger) LendingActivity {
	return LendingActivity{
		Key:         l.Key,
		LentOut:     l.LentOut,
		Repaid:      l.Repaid,
		Outstanding: l.OutstandingLending,
		Excess:      l.ExcessRepayment,
	}
}

// LendingSummary reports the overall lending activity followed by the
// monthly breakdown, chronologically.
func (s *LedgerSet) LendingSummary() []LendingActivity {
	out := []LendingActivity{lendingActivity(s.AllTime)}
	for _, key := range s.Months() {
		out = append(out, lendingActivity(s.Monthly[key]))
	}
	return out
}

// HasLending reports whether any bucket saw lending-class activity.
func (s *LedgerSet) HasLending() bool {
	return !s.AllTime.LentOut.IsZero() || !s.AllTime.Repaid.IsZero()
}

// CharityStat is the charity view of one bucket.
type CharityStat struct {
	Key               PeriodKey
	Amount            decimal.Decimal
	PercentOfSpending float64 // of the bucket's total spending
}

func charityStat(l *PeriodLedger) CharityStat {
	stat := CharityStat{Key: l.Key, Amount: l.CharitySpending()}
	if l.Spending.IsPositive() {
		stat.PercentOfSpending = stat.Amount.Div(l.Spending).InexactFloat64() * 100
	}
	return stat
}

// CharityAnalysis reports overall charity spending followed by the monthly
// breakdown, chronologically.
func (s *LedgerSet) CharityAnalysis() []CharityStat {
	out := []CharityStat{charityStat(s.AllTime)}
	for _, key := range s.Months() {
		out = append(out, charityStat(s.Monthly[key]))
	}
	return out
}

// CategoryTotal pairs a category with its signed total.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// TopSpendingCategories returns the n categories with the largest spending
// magnitude in the bucket. Categories with a net positive total are not
// spending and are excluded.
func (l *PeriodLedger) TopSpendingCategories(n int) []CategoryTotal {
	spend := make([]CategoryTotal, 0, len(l.CategoryTotals))
	for category, total := range l.CategoryTotals {
		if total.IsNegative() {
			spend = append(spend, CategoryTotal{Category: category, Total: total.Neg()})
		}
	}
	sort.Slice(spend, func(i, j int) bool {
		if !spend[i].Total.Equal(spend[j].Total) {
			return spend[i].Total.GreaterThan(spend[j].Total)
		}
		return spend[i].Category < spend[j].Category
	})
	if n > 0 && len(spend) > n {
		spend = spend[:n]
	}
	return spend
}

// Categories returns the bucket's categories sorted by name, for stable
// report rendering.
func (l *PeriodLedger) Categories() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(l.CategoryTotals))
	for category, total := range l.CategoryTotals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// TrendPoint is one month of the income/spending/net series.
type TrendPoint struct {
	Key      PeriodKey
	Income   decimal.Decimal
	Spending decimal.Decimal
	Net      decimal.Decimal
}

// MonthlyTrend returns the month-by-month series, chronologically.
func (s *LedgerSet) MonthlyTrend() []TrendPoint {
	out := make([]TrendPoint, 0, len(s.Monthly))
	for _, key := range s.Months() {
		l := s.Monthly[key]
		out = append(out, TrendPoint{Key: key, Income: l.Income, Spending: l.Spending, Net: l.NetBalance})
	}
	return out
}
