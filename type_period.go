package finledger

import (
	"fmt"
	"strings"
	"time"
)

// Period identifies the granularity of an analysis bucket.
type Period int

const (
	AllTime Period = iota
	Yearly
	Monthly
)

func (p Period) String() string {
	switch p {
	case AllTime:
		return "all-time"
	case Yearly:
		return "yearly"
	case Monthly:
		return "monthly"
	default:
		return "periodic"
	}
}

// Name returns the singular noun for the period (e.g., "year", "month").
func (p Period) Name() string {
	switch p {
	case Yearly:
		return "year"
	case Monthly:
		return "month"
	default:
		return "period"
	}
}

// ParsePeriod parses a period name as accepted on the command line.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "all-time", "alltime":
		return AllTime, nil
	case "yearly", "year":
		return Yearly, nil
	case "monthly", "month":
		return Monthly, nil
	default:
		return AllTime, fmt.Errorf("unknown period %q", s)
	}
}

// PeriodKey identifies one analysis bucket: the all-time bucket, a calendar
// year, or a calendar month. The zero Year/Month fields are meaningful only
// for the granularities that use them.
type PeriodKey struct {
	Period Period
	Year   int
	Month  time.Month
}

// AllTimeKey returns the key of the single all-time bucket.
func AllTimeKey() PeriodKey { return PeriodKey{Period: AllTime} }

// YearKey returns the key of the yearly bucket for the given year.
func YearKey(year int) PeriodKey { return PeriodKey{Period: Yearly, Year: year} }

// MonthKey returns the key of the monthly bucket for the given year and month.
func MonthKey(year int, month time.Month) PeriodKey {
	return PeriodKey{Period: Monthly, Year: year, Month: month}
}

// KeyOf returns the bucket key the date d falls into at granularity p.
func KeyOf(d Date, p Period) PeriodKey {
	switch p {
	case Yearly:
		return YearKey(d.Year())
	case Monthly:
		return MonthKey(d.Year(), d.Month())
	default:
		return AllTimeKey()
	}
}

// Contains reports whether the date d falls into this bucket.
func (k PeriodKey) Contains(d Date) bool {
	switch k.Period {
	case Yearly:
		return d.Year() == k.Year
	case Monthly:
		return d.Year() == k.Year && d.Month() == k.Month
	default:
		return true
	}
}

// String renders the key in its report form: "all-time", "2024" or "2024-01".
func (k PeriodKey) String() string {
	switch k.Period {
	case Yearly:
		return fmt.Sprintf("%04d", k.Year)
	case Monthly:
		return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
	default:
		return "all-time"
	}
}

// Compare orders keys chronologically within the same granularity.
func (k PeriodKey) Compare(o PeriodKey) int {
	if c := int(k.Period) - int(o.Period); c != 0 {
		return c
	}
	if c := k.Year - o.Year; c != 0 {
		return c
	}
	return int(k.Month) - int(o.Month)
}
