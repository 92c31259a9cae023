package medical

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateCountsCalendarDays(t *testing.T) {
	days, err := Validate(TypeGeneralIllness, "influenza", date(2025, 6, 1), date(2025, 6, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 5 {
		t.Fatalf("expected 5 calendar days, got %d", days)
	}
}

func TestValidateSingleDay(t *testing.T) {
	days, err := Validate(TypeWorkAccident, "sprained ankle", date(2025, 6, 7), date(2025, 6, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %d", days)
	}
}

func TestValidateRejections(t *testing.T) {
	if _, err := Validate("vacation", "x", date(2025, 6, 1), date(2025, 6, 5)); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if _, err := Validate(TypeMaternity, "", date(2025, 6, 1), date(2025, 6, 5)); !errors.Is(err, ErrDiagnosisRequired) {
		t.Fatalf("expected ErrDiagnosisRequired, got %v", err)
	}
	if _, err := Validate(TypeMaternity, "x", date(2025, 6, 5), date(2025, 6, 1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
