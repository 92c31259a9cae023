package workday

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWeekend(t *testing.T) {
	// 2025-03-08 is a Saturday, 2025-03-09 a Sunday, 2025-03-10 a Monday.
	if !IsWeekend(date(2025, 3, 8)) {
		t.Fatal("expected Saturday to be weekend")
	}
	if !IsWeekend(date(2025, 3, 9)) {
		t.Fatal("expected Sunday to be weekend")
	}
	if IsWeekend(date(2025, 3, 10)) {
		t.Fatal("expected Monday not to be weekend")
	}
}

func TestIsSaturday(t *testing.T) {
	if !IsSaturday(date(2025, 3, 8)) {
		t.Fatal("expected Saturday")
	}
	if IsSaturday(date(2025, 3, 9)) {
		t.Fatal("Sunday is not Saturday")
	}
}

func TestBusinessDaysBetweenSameDay(t *testing.T) {
	if got := BusinessDaysBetween(date(2025, 3, 10), date(2025, 3, 10)); got != 1 {
		t.Fatalf("expected 1 business day on a Monday, got %d", got)
	}
	if got := BusinessDaysBetween(date(2025, 3, 8), date(2025, 3, 8)); got != 0 {
		t.Fatalf("expected 0 business days on a Saturday, got %d", got)
	}
	if got := BusinessDaysBetween(date(2025, 3, 9), date(2025, 3, 9)); got != 0 {
		t.Fatalf("expected 0 business days on a Sunday, got %d", got)
	}
}

func TestBusinessDaysBetweenSpansWeekend(t *testing.T) {
	// Monday 2025-03-10 through Friday 2025-03-14.
	if got := BusinessDaysBetween(date(2025, 3, 10), date(2025, 3, 14)); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	// Friday through next Monday crosses one weekend.
	if got := BusinessDaysBetween(date(2025, 3, 14), date(2025, 3, 17)); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestBusinessDaysBetweenInverted(t *testing.T) {
	if got := BusinessDaysBetween(date(2025, 3, 14), date(2025, 3, 10)); got != 0 {
		t.Fatalf("expected 0 for inverted range, got %d", got)
	}
}

func TestCalendarDaysBetween(t *testing.T) {
	if got := CalendarDaysBetween(date(2025, 6, 1), date(2025, 6, 5)); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := CalendarDaysBetween(date(2025, 6, 1), date(2025, 6, 1)); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := CalendarDaysBetween(date(2025, 6, 5), date(2025, 6, 1)); got >= 1 {
		t.Fatalf("expected non-positive count for inverted range, got %d", got)
	}
}
