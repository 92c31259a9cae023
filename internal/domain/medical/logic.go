package medical

import (
	"errors"
	"time"

	"hrops/internal/domain/workday"
)

var (
	ErrInvalidType       = errors.New("invalid medical leave type")
	ErrInvalidRange      = errors.New("end date before start date")
	ErrDiagnosisRequired = errors.New("diagnosis is required")
)

// Validate checks a registration and returns the inclusive calendar-day
// total. Medical leave counts every calendar day, weekends included.
func Validate(leaveType, diagnosis string, start, end time.Time) (int, error) {
	if !ValidType(leaveType) {
		return 0, ErrInvalidType
	}
	if diagnosis == "" {
		return 0, ErrDiagnosisRequired
	}
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return workday.CalendarDaysBetween(start, end), nil
}
