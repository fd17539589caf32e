package finledger

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestImportTransactions(t *testing.T) {
	in := strings.NewReader(`Date, Category, Description, Amount
2024-03-01, Food, lunch, $12.50
2024-03-02, Salary, , 5000
`)
	rows, err := ImportTransactions(in)
	if err != nil {
		t.Fatalf("ImportTransactions unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := RawTransaction{
		Date:        NewDate(2024, time.March, 1),
		Category:    "Food",
		Description: "lunch",
		Amount:      "$12.50",
	}
	if rows[0] != want {
		t.Errorf("row 0 = %+v, want %+v", rows[0], want)
	}
	if rows[1].Description != "" {
		t.Errorf("row 1 description = %q, want empty", rows[1].Description)
	}
}

func TestImportPrefersRefCurrencyAmount(t *testing.T) {
	in := strings.NewReader(`date,category,amount,ref_currency_amount
2024-03-01,Food,$12.50,615.00
`)
	rows, err := ImportTransactions(in)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Amount != "615.00" {
		t.Errorf("Amount = %q, want the ref_currency_amount column", rows[0].Amount)
	}
}

func TestImportErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{name: "no date column", in: "category,amount\nFood,10\n"},
		{name: "no amount column", in: "date,category\n2024-03-01,Food\n"},
		{name: "bad date", in: "date,category,amount\nyesterday,Food,10\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ImportTransactions(strings.NewReader(tc.in)); err == nil {
				t.Error("expected error")
			}
		})
	}

	for _, in := range []string{"", "date,category,amount\n"} {
		if _, err := ImportTransactions(strings.NewReader(in)); !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("ImportTransactions(%q) error = %v, want ErrEmptyBatch", in, err)
		}
	}
}

func TestExportAnalysisCSV(t *testing.T) {
	txs := []NormalizedTransaction{
		ntx(NewDate(2024, time.January, 5), "Salary", "3000"),
		ntx(NewDate(2024, time.January, 8), "Food", "-200"),
		ntx(NewDate(2024, time.February, 2), "Rent", "-1200"),
	}
	set, err := NewReconciler(testConfig()).Reconcile(txs)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := ExportAnalysisCSV(&sb, set, &BatchSummary{Rows: 3}); err != nil {
		t.Fatalf("ExportAnalysisCSV unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	// header + all-time + 1 year + 2 months
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), sb.String())
	}
	if !strings.HasPrefix(lines[1], "all-time,3000,1400,1600,") {
		t.Errorf("all-time row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2024,") {
		t.Errorf("yearly row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "2024-01,") || !strings.HasPrefix(lines[4], "2024-02,") {
		t.Errorf("monthly rows = %q, %q, want chronological", lines[3], lines[4])
	}
}
