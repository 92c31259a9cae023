package attendance

import "testing"

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPresent, StatusAbsent, StatusLate, StatusOnLeave, StatusOnMedicalLeave} {
		if !ValidStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if ValidStatus("vacation") {
		t.Fatal("unknown status must be invalid")
	}
	if ValidStatus("") {
		t.Fatal("empty status must be invalid")
	}
}

func TestValidCheckIn(t *testing.T) {
	for _, good := range []string{"08:30", "8:05", "08:30:15", "23:59"} {
		if !ValidCheckIn(good) {
			t.Fatalf("expected %q to be a valid check-in", good)
		}
	}
	for _, bad := range []string{"8h30", "25:00", "08:61", "garbage", "2026-08-29"} {
		if ValidCheckIn(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestRequiresCheckIn(t *testing.T) {
	if !RequiresCheckIn(StatusPresent) || !RequiresCheckIn(StatusLate) {
		t.Fatal("present and late keep their check-in time")
	}
	if RequiresCheckIn(StatusAbsent) || RequiresCheckIn(StatusOnLeave) || RequiresCheckIn(StatusOnMedicalLeave) {
		t.Fatal("absence statuses have no check-in")
	}
}
