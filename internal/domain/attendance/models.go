package attendance

import "time"

const (
	StatusPresent        = "present"
	StatusAbsent         = "absent"
	StatusLate           = "late"
	StatusOnLeave        = "on_leave"
	StatusOnMedicalLeave = "on_medical_leave"
)

var validStatuses = map[string]bool{
	StatusPresent:        true,
	StatusAbsent:         true,
	StatusLate:           true,
	StatusOnLeave:        true,
	StatusOnMedicalLeave: true,
}

func ValidStatus(status string) bool {
	return validStatuses[status]
}

// RequiresCheckIn reports whether the status describes someone who
// showed up and therefore has a check-in time worth recording.
func RequiresCheckIn(status string) bool {
	return status == StatusPresent || status == StatusLate
}

// ValidCheckIn accepts HH:MM or HH:MM:SS, the wall-clock formats the
// time column takes.
func ValidCheckIn(checkIn string) bool {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, checkIn); err == nil {
			return true
		}
	}
	return false
}

type Record struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	CheckIn    string    `json:"checkIn,omitempty"`
	IsSaturday bool      `json:"isSaturday"`
	Office     string    `json:"office"`
	RecordedBy string    `json:"recordedBy"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Entry is one line of a day sheet as submitted by a recorder.
type Entry struct {
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`
	CheckIn    string `json:"checkIn,omitempty"`
	Note       string `json:"note,omitempty"`
}
