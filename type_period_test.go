package finledger

import (
	"testing"
	"time"
)

func TestPeriodKeyString(t *testing.T) {
	testCases := []struct {
		key  PeriodKey
		want string
	}{
		{key: AllTimeKey(), want: "all-time"},
		{key: YearKey(2024), want: "2024"},
		{key: MonthKey(2024, time.January), want: "2024-01"},
		{key: MonthKey(2023, time.December), want: "2023-12"},
	}
	for _, tc := range testCases {
		if got := tc.key.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestKeyOf(t *testing.T) {
	d := NewDate(2024, time.March, 15)

	if got := KeyOf(d, AllTime); got != AllTimeKey() {
		t.Errorf("KeyOf(AllTime) = %v", got)
	}
	if got := KeyOf(d, Yearly); got != YearKey(2024) {
		t.Errorf("KeyOf(Yearly) = %v", got)
	}
	if got := KeyOf(d, Monthly); got != MonthKey(2024, time.March) {
		t.Errorf("KeyOf(Monthly) = %v", got)
	}

	for _, p := range []Period{AllTime, Yearly, Monthly} {
		if !KeyOf(d, p).Contains(d) {
			t.Errorf("KeyOf(%v) does not contain its own date", p)
		}
	}
	if MonthKey(2024, time.March).Contains(NewDate(2024, time.April, 1)) {
		t.Error("monthly bucket contains a date from another month")
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod("Month"); err != nil || p != Monthly {
		t.Errorf("ParsePeriod(Month) = %v, %v", p, err)
	}
	if _, err := ParsePeriod("weekly"); err == nil {
		t.Error("ParsePeriod(weekly) expected error")
	}
}
