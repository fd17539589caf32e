package finledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func reportSet(t *testing.T) *LedgerSet {
	t.Helper()
	txs := []NormalizedTransaction{
		ntx(NewDate(2024, time.January, 5), "Salary", "4000"),
		ntx(NewDate(2024, time.January, 8), "Rent", "-1500"),
		ntx(NewDate(2024, time.January, 12), "Food", "-600"),
		ntx(NewDate(2024, time.January, 20), "Charity", "-200"),
		ntx(NewDate(2024, time.February, 3), "Food", "-400"),
		ntx(NewDate(2024, time.February, 9), "Loan, interests", "-300"),
		ntx(NewDate(2024, time.February, 25), "Loan, interests", "100"),
	}
	set, err := NewReconciler(testConfig()).Reconcile(txs)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestTopSpendingCategories(t *testing.T) {
	set := reportSet(t)

	top := set.AllTime.TopSpendingCategories(2)
	if len(top) != 2 {
		t.Fatalf("got %d categories, want 2", len(top))
	}
	if top[0].Category != "Rent" || !top[0].Total.Equal(decimal.RequireFromString("1500")) {
		t.Errorf("top category = %s %v, want Rent 1500", top[0].Category, top[0].Total)
	}
	if top[1].Category != "Food" || !top[1].Total.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("second category = %s %v, want Food 1000", top[1].Category, top[1].Total)
	}

	// Net-positive categories are not spending.
	for _, ct := range set.AllTime.TopSpendingCategories(0) {
		if ct.Category == "Salary" {
			t.Error("Salary listed as a spending category")
		}
	}
}

func TestLendingSummary(t *testing.T) {
	set := reportSet(t)
	if !set.HasLending() {
		t.Fatal("HasLending() = false with lending activity present")
	}

	summary := set.LendingSummary()
	// overall plus one entry per month
	if len(summary) != 3 {
		t.Fatalf("got %d entries, want 3", len(summary))
	}
	overall := summary[0]
	if overall.Key != AllTimeKey() {
		t.Errorf("first entry key = %v, want all-time", overall.Key)
	}
	if !overall.LentOut.Equal(decimal.RequireFromString("300")) ||
		!overall.Repaid.Equal(decimal.RequireFromString("100")) ||
		!overall.Outstanding.Equal(decimal.RequireFromString("200")) {
		t.Errorf("overall = %+v, want 300 lent, 100 repaid, 200 outstanding", overall)
	}
	if jan := summary[1]; !jan.LentOut.IsZero() {
		t.Errorf("January lending = %v, want none", jan.LentOut)
	}
}

func TestCharityAnalysis(t *testing.T) {
	set := reportSet(t)
	stats := set.CharityAnalysis()
	if len(stats) != 3 {
		t.Fatalf("got %d entries, want 3", len(stats))
	}
	overall := stats[0]
	if !overall.Amount.Equal(decimal.RequireFromString("200")) {
		t.Errorf("overall charity = %v, want 200", overall.Amount)
	}
	// 200 of 2700 total spending.
	if overall.PercentOfSpending < 7.40 || overall.PercentOfSpending > 7.41 {
		t.Errorf("PercentOfSpending = %v, want ~7.407", overall.PercentOfSpending)
	}
	if feb := stats[2]; !feb.Amount.IsZero() {
		t.Errorf("February charity = %v, want 0", feb.Amount)
	}
}

func TestMonthlyTrend(t *testing.T) {
	set := reportSet(t)
	trend := set.MonthlyTrend()
	if len(trend) != 2 {
		t.Fatalf("got %d points, want 2", len(trend))
	}
	jan, feb := trend[0], trend[1]
	if jan.Key != MonthKey(2024, time.January) || feb.Key != MonthKey(2024, time.February) {
		t.Fatalf("trend keys = %v, %v, want chronological months", jan.Key, feb.Key)
	}
	if !jan.Net.Equal(decimal.RequireFromString("1700")) {
		t.Errorf("January net = %v, want 1700", jan.Net)
	}
	// February has no income and the loan is excluded from spending.
	if !feb.Income.IsZero() || !feb.Spending.Equal(decimal.RequireFromString("400")) {
		t.Errorf("February = %v income, %v spending, want 0 and 400", feb.Income, feb.Spending)
	}
}
