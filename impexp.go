package finledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// this file contains functions to handle the import/export formats.
//
// Import is the CSV contract with the spreadsheet collaborator: a header row
// naming at least "date", "category" and an amount column, in any order and
// case. Export is the analysis summary as a flat CSV, one row per bucket.

// ImportTransactions reads raw transactions from a CSV export.
//
// The amount column is "ref_currency_amount" when present (amounts already
// expressed in the reference currency), falling back to "amount". Rows keep
// their file order; the caller must not assume it chronological.
func ImportTransactions(r io.Reader) ([]RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyBatch
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateCol, ok := col["date"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "date")
	}
	categoryCol, ok := col["category"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "category")
	}
	amountCol, ok := col["ref_currency_amount"]
	if !ok {
		if amountCol, ok = col["amount"]; !ok {
			return nil, fmt.Errorf("neither %q nor %q column found", "ref_currency_amount", "amount")
		}
	}
	descriptionCol, hasDescription := col["description"]

	var rows []RawTransaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV line %d: %w", line, err)
		}
		date, err := ParseDate(record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		raw := RawTransaction{
			Date:     date,
			Category: strings.TrimSpace(record[categoryCol]),
			Amount:   record[amountCol],
		}
		if hasDescription {
			raw.Description = strings.TrimSpace(record[descriptionCol])
		}
		rows = append(rows, raw)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}
	return rows, nil
}

// ExportAnalysisCSV writes the reconciled analysis as a flat CSV, one row
// per bucket: the all-time bucket, then years, then months.
func ExportAnalysisCSV(w io.Writer, set *LedgerSet, summary *BatchSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		"period", "income", "spending", "net_balance",
		"charity", "lending", "normal",
		"outstanding_lending", "excess_repayment",
		"transactions", "converted",
	}); err != nil {
		return err
	}

	write := func(l *PeriodLedger) error {
		return cw.Write([]string{
			l.Key.String(),
			l.Income.String(),
			l.Spending.String(),
			l.NetBalance.String(),
			l.ClassTotal(ClassCharity).String(),
			l.ClassTotal(ClassLending).String(),
			l.ClassTotal(ClassNormal).String(),
			l.OutstandingLending.String(),
			l.ExcessRepayment.String(),
			fmt.Sprint(l.TransactionCount),
			fmt.Sprint(l.Converted),
		})
	}

	if err := write(set.AllTime); err != nil {
		return err
	}
	for _, year := range set.Years() {
		if err := write(set.Yearly[year]); err != nil {
			return err
		}
	}
	for _, key := range set.Months() {
		if err := write(set.Monthly[key]); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
