// Package renderer turns reconciled ledgers into markdown reports.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/selimh/finledger"
)

// Overview renders the headline report: all-time metrics, simplified
// classes, lending position and the batch conversion summary.
func Overview(set *finledger.LedgerSet, summary *finledger.BatchSummary) string {
	var b strings.Builder
	all := set.AllTime

	fmt.Fprintf(&b, "# Financial Summary (%s)\n\n", set.Base)

	table(&b, []string{"Metric", "Value"}, [][]string{
		{"Total Income", finledger.FormatAmount(all.Income, set.Base)},
		{"Total Spending", finledger.FormatAmount(all.Spending, set.Base)},
		{"Net Balance", finledger.FormatSignedAmount(all.NetBalance, set.Base)},
		{"Transactions", fmt.Sprint(all.TransactionCount)},
	})

	b.WriteString("## Simplified Spending\n\n")
	rows := make([][]string, 0, len(finledger.SpendingClasses))
	for _, class := range finledger.SpendingClasses {
		rows = append(rows, []string{
			capitalize(class.String()),
			finledger.FormatSignedAmount(all.ClassTotal(class), set.Base),
		})
	}
	table(&b, []string{"Class", "Total"}, rows)

	ConditionalBlock(&b, func(w io.Writer) bool { return renderLendingPosition(w, all, set.Base) })
	ConditionalBlock(&b, func(w io.Writer) bool { return renderConversionSummary(w, summary) })
	return b.String()
}

// PeriodReport renders the detailed view of one bucket, with its category
// breakdown.
func PeriodReport(l *finledger.PeriodLedger, base string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", l.Key)
	table(&b, []string{"Metric", "Value"}, [][]string{
		{"Income", finledger.FormatAmount(l.Income, base)},
		{"Spending", finledger.FormatAmount(l.Spending, base)},
		{"Net Balance", finledger.FormatSignedAmount(l.NetBalance, base)},
		{"Outstanding Lending", finledger.FormatAmount(l.OutstandingLending, base)},
		{"Excess Repayment", finledger.FormatAmount(l.ExcessRepayment, base)},
	})

	categories := l.Categories()
	if len(categories) > 0 {
		b.WriteString("### Categories\n\n")
		rows := make([][]string, 0, len(categories))
		for _, ct := range categories {
			rows = append(rows, []string{ct.Category, finledger.FormatSignedAmount(ct.Total, base)})
		}
		table(&b, []string{"Category", "Total"}, rows)
	}
	return b.String()
}

// LendingReport renders the overall lending activity and its monthly breakdown.
func LendingReport(set *finledger.LedgerSet) string {
	var b strings.Builder
	b.WriteString("# Lending Activity\n\n")

	if !set.HasLending() {
		b.WriteString("No lending activity in this data set.\n")
		return b.String()
	}

	rows := make([][]string, 0)
	for _, act := range set.LendingSummary() {
		rows = append(rows, []string{
			act.Key.String(),
			finledger.FormatAmount(act.LentOut, set.Base),
			finledger.FormatAmount(act.Repaid, set.Base),
			finledger.FormatAmount(act.Outstanding, set.Base),
			finledger.FormatAmount(act.Excess, set.Base),
		})
	}
	table(&b, []string{"Period", "Lent Out", "Repaid", "Outstanding", "Excess Repayment"}, rows)
	return b.String()
}

// CharityReport renders charity spending overall and per month.
func CharityReport(set *finledger.LedgerSet) string {
	var b strings.Builder
	b.WriteString("# Charity Spending\n\n")

	rows := make([][]string, 0)
	for _, stat := range set.CharityAnalysis() {
		rows = append(rows, []string{
			stat.Key.String(),
			finledger.FormatAmount(stat.Amount, set.Base),
			fmt.Sprintf("%.1f%%", stat.PercentOfSpending),
		})
	}
	table(&b, []string{"Period", "Amount", "% of Spending"}, rows)
	return b.String()
}

// TrendReport renders the month-by-month income/spending/net series.
func TrendReport(set *finledger.LedgerSet) string {
	var b strings.Builder
	b.WriteString("# Monthly Trend\n\n")

	rows := make([][]string, 0)
	for _, pt := range set.MonthlyTrend() {
		rows = append(rows, []string{
			pt.Key.String(),
			finledger.FormatAmount(pt.Income, set.Base),
			finledger.FormatAmount(pt.Spending, set.Base),
			finledger.FormatSignedAmount(pt.Net, set.Base),
		})
	}
	table(&b, []string{"Month", "Income", "Spending", "Net"}, rows)
	return b.String()
}

func renderLendingPosition(w io.Writer, l *finledger.PeriodLedger, base string) bool {
	if l.LentOut.IsZero() && l.Repaid.IsZero() {
		return false
	}
	fmt.Fprintf(w, "## Lending Position\n\n")
	table(w, []string{"Metric", "Value"}, [][]string{
		{"Lent Out", finledger.FormatAmount(l.LentOut, base)},
		{"Repaid", finledger.FormatAmount(l.Repaid, base)},
		{"Outstanding", finledger.FormatAmount(l.OutstandingLending, base)},
		{"Excess Repayment", finledger.FormatAmount(l.ExcessRepayment, base)},
	})
	return true
}

func renderConversionSummary(w io.Writer, summary *finledger.BatchSummary) bool {
	if summary == nil {
		return false
	}
	fmt.Fprintf(w, "## Currency Conversion\n\n")
	rows := [][]string{
		{"Rows Converted", fmt.Sprint(summary.RowsConverted)},
		{"Rows Skipped", fmt.Sprint(summary.RowsSkipped())},
	}
	if len(summary.CurrenciesSeen) > 0 {
		rows = append(rows, []string{"Currencies Seen", strings.Join(summary.CurrenciesSeen, ", ")})
	}
	if len(summary.Unconverted) > 0 {
		rows = append(rows, []string{"Unconverted (no rate)", strings.Join(summary.Unconverted, ", ")})
	}
	table(w, []string{"Metric", "Value"}, rows)

	for _, skip := range summary.Skipped {
		fmt.Fprintf(w, "- skipped row %d (%s): %s\n", skip.Index, skip.Category, skip.Reason)
	}
	if len(summary.Skipped) > 0 {
		fmt.Fprintln(w)
	}
	return true
}
