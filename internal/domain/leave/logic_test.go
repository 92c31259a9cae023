package leave

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func approved(start, end time.Time, days int) LeaveRequest {
	return LeaveRequest{StartDate: start, EndDate: end, RequestedDays: days, Status: StatusApproved}
}

func TestRemainingQuotaNoRequests(t *testing.T) {
	if got := RemainingQuota(nil, 2025); got != AnnualAllowance {
		t.Fatalf("expected full allowance, got %d", got)
	}
}

func TestRemainingQuotaSumsApprovedDays(t *testing.T) {
	requests := []LeaveRequest{
		approved(date(2025, 2, 3), date(2025, 2, 5), 3),
		approved(date(2025, 5, 12), date(2025, 5, 15), 4),
	}
	if got := RemainingQuota(requests, 2025); got != 2 {
		t.Fatalf("expected 2 remaining, got %d", got)
	}
}

func TestRemainingQuotaIgnoresOtherYearsAndStatuses(t *testing.T) {
	requests := []LeaveRequest{
		approved(date(2024, 11, 4), date(2024, 11, 8), 5),
		{StartDate: date(2025, 3, 3), EndDate: date(2025, 3, 7), RequestedDays: 5, Status: StatusPending},
		{StartDate: date(2025, 4, 7), EndDate: date(2025, 4, 11), RequestedDays: 5, Status: StatusRejected},
	}
	if got := RemainingQuota(requests, 2025); got != AnnualAllowance {
		t.Fatalf("expected full allowance, got %d", got)
	}
}

func TestRemainingQuotaClampsAtZero(t *testing.T) {
	requests := []LeaveRequest{
		approved(date(2025, 1, 6), date(2025, 1, 17), 10),
		approved(date(2025, 6, 2), date(2025, 6, 6), 5),
	}
	if got := RemainingQuota(requests, 2025); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestRangesOverlapSymmetry(t *testing.T) {
	cases := []struct {
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{date(2025, 3, 10), date(2025, 3, 14), date(2025, 3, 12), date(2025, 3, 13), true},
		{date(2025, 3, 10), date(2025, 3, 14), date(2025, 3, 15), date(2025, 3, 18), false},
		{date(2025, 3, 10), date(2025, 3, 14), date(2025, 3, 14), date(2025, 3, 20), true},
		{date(2025, 3, 10), date(2025, 3, 10), date(2025, 3, 10), date(2025, 3, 10), true},
	}
	for _, tc := range cases {
		got := RangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
		if got != tc.want {
			t.Fatalf("overlap(%v-%v, %v-%v) = %v, want %v", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
		}
		mirrored := RangesOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd)
		if mirrored != got {
			t.Fatalf("overlap is not symmetric for %v-%v vs %v-%v", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
		}
	}
}

func TestOverlapsPendingBlocksRejectedDoesNot(t *testing.T) {
	existing := []LeaveRequest{
		{StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 14), Status: StatusPending},
	}
	if !Overlaps(date(2025, 3, 12), date(2025, 3, 13), existing) {
		t.Fatal("expected overlap with pending request")
	}
	if Overlaps(date(2025, 3, 15), date(2025, 3, 18), existing) {
		t.Fatal("expected no overlap with disjoint range")
	}

	existing[0].Status = StatusRejected
	if Overlaps(date(2025, 3, 12), date(2025, 3, 13), existing) {
		t.Fatal("rejected requests must not block")
	}
}

func TestOverlapsEmptySet(t *testing.T) {
	if Overlaps(date(2025, 3, 12), date(2025, 3, 13), nil) {
		t.Fatal("expected no overlap against empty set")
	}
}

func TestValidateSubmission(t *testing.T) {
	start := date(2025, 3, 10)
	end := date(2025, 3, 12)

	days, err := ValidateSubmission("dental appointment", start, end, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 business days, got %d", days)
	}

	if _, err := ValidateSubmission("", start, end, 9); !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("expected ErrEmptyReason, got %v", err)
	}
	if _, err := ValidateSubmission("x", end, start, 9); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	// Saturday to Sunday has no business days.
	if _, err := ValidateSubmission("x", date(2025, 3, 8), date(2025, 3, 9), 9); !errors.Is(err, ErrNoBusinessDays) {
		t.Fatalf("expected ErrNoBusinessDays, got %v", err)
	}
	// Three business days against a quota of two.
	if _, err := ValidateSubmission("x", start, end, 2); !errors.Is(err, ErrInsufficientQuota) {
		t.Fatalf("expected ErrInsufficientQuota, got %v", err)
	}
}
