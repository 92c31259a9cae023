package shared

import (
	"testing"
	"time"
)

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("reason", "", "reason is required")
	v.Required("employeeId", "", "employee id is required")
	v.Enum("status", "maybe", []string{"pending", "approved"}, "must be a known status")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Field != "employeeId" {
		t.Fatalf("expected issues sorted by field, got %q first", issues[0].Field)
	}
}

func TestValidatorDateAndOrder(t *testing.T) {
	v := NewValidator()
	start, ok := v.Date("startDate", "2026-03-02")
	if !ok || v.HasIssues() {
		t.Fatalf("expected valid date, issues: %+v", v.Issues())
	}
	end, _ := v.Date("endDate", "2026-03-01")
	v.DateOrder("startDate", start, "endDate", end)
	if !v.HasIssues() {
		t.Fatal("expected inverted range to be flagged")
	}
}

func TestValidatorRejectsBadDate(t *testing.T) {
	v := NewValidator()
	if _, ok := v.Date("date", "03/02/2026"); ok {
		t.Fatal("expected slash format to be rejected")
	}
	if !v.HasIssues() {
		t.Fatal("expected an issue for bad date")
	}
}

func TestParseDateFormats(t *testing.T) {
	plain, err := ParseDate("2026-08-15")
	if err != nil {
		t.Fatalf("plain date error: %v", err)
	}
	if plain.Year() != 2026 || plain.Month() != time.August || plain.Day() != 15 {
		t.Fatalf("unexpected parse: %v", plain)
	}

	if _, err := ParseDate("2026-08-15T10:30:00Z"); err != nil {
		t.Fatalf("rfc3339 error: %v", err)
	}

	zero, err := ParseDate("")
	if err != nil || !zero.IsZero() {
		t.Fatalf("empty input should be zero time, got %v %v", zero, err)
	}
}
