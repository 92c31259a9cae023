package leave

import (
	"errors"
	"time"

	"hrops/internal/domain/workday"
)

// AnnualAllowance is the fixed leave-day grant per employee per
// calendar year.
const AnnualAllowance = 9

var (
	ErrEmptyReason       = errors.New("reason is required")
	ErrInvalidRange      = errors.New("end date before start date")
	ErrNoBusinessDays    = errors.New("range contains no business days")
	ErrInsufficientQuota = errors.New("insufficient leave quota")
	ErrOverlap           = errors.New("range overlaps an existing request")
	ErrInvalidState      = errors.New("request is not pending")
	ErrCommentRequired   = errors.New("approval comment is required")
)

// RemainingQuota computes the employee's unused allowance for the given
// year from their approved requests. A request counts against the year
// its start date falls in. Never negative.
func RemainingQuota(approved []LeaveRequest, year int) int {
	used := 0
	for _, req := range approved {
		if req.Status != StatusApproved {
			continue
		}
		if req.StartDate.Year() != year {
			continue
		}
		used += req.RequestedDays
	}
	if used >= AnnualAllowance {
		return 0
	}
	return AnnualAllowance - used
}

// RangesOverlap reports whether the closed date intervals [aStart,aEnd]
// and [bStart,bEnd] share at least one day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Overlaps reports whether the proposed range collides with any
// non-rejected request in existing. Pending requests block too: a
// rejection is the only status that frees the days.
func Overlaps(proposedStart, proposedEnd time.Time, existing []LeaveRequest) bool {
	for _, req := range existing {
		if req.Status == StatusRejected {
			continue
		}
		if RangesOverlap(proposedStart, proposedEnd, req.StartDate, req.EndDate) {
			return true
		}
	}
	return false
}

// ValidateSubmission runs every submit-time rule except the overlap
// check and returns the business-day count of the range. The first
// violated rule is reported.
func ValidateSubmission(reason string, start, end time.Time, remainingQuota int) (int, error) {
	if reason == "" {
		return 0, ErrEmptyReason
	}
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	days := workday.BusinessDaysBetween(start, end)
	if days == 0 {
		return 0, ErrNoBusinessDays
	}
	if days > remainingQuota {
		return 0, ErrInsufficientQuota
	}
	return days, nil
}
