package attendance

import (
	"context"
	"errors"
	"testing"
	"time"
)

// The validation loop runs before any storage access, so a nil-backed
// service exercises it directly.

func TestRecordDayRejectsMalformedCheckIn(t *testing.T) {
	svc := NewService(nil, nil)
	entries := []Entry{{EmployeeID: "e1", Status: StatusPresent, CheckIn: "8h30"}}

	_, err := svc.RecordDay(context.Background(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "north", "rec@example.com", entries)
	if !errors.Is(err, ErrInvalidCheckIn) {
		t.Fatalf("expected ErrInvalidCheckIn, got %v", err)
	}
}

func TestRecordDayRejectsUnknownStatus(t *testing.T) {
	svc := NewService(nil, nil)
	entries := []Entry{{EmployeeID: "e1", Status: "vacation"}}

	_, err := svc.RecordDay(context.Background(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "north", "rec@example.com", entries)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestRecordDayRejectsEmptySheet(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.RecordDay(context.Background(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "north", "rec@example.com", nil)
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
}
