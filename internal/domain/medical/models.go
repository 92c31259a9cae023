package medical

import "time"

const (
	TypeGeneralIllness   = "general_illness"
	TypeMaternity        = "maternity"
	TypeWorkAccident     = "work_accident"
	TypeOccupationalRisk = "occupational_risk"
)

var Types = []string{TypeGeneralIllness, TypeMaternity, TypeWorkAccident, TypeOccupationalRisk}

var validTypes = map[string]bool{
	TypeGeneralIllness:   true,
	TypeMaternity:        true,
	TypeWorkAccident:     true,
	TypeOccupationalRisk: true,
}

func ValidType(t string) bool {
	return validTypes[t]
}

// MedicalLeave is tracked apart from the leave-day allowance: calendar
// days, no quota.
type MedicalLeave struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	Type            string    `json:"type"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	TotalDays       int       `json:"totalDays"`
	Diagnosis       string    `json:"diagnosis"`
	ReferenceNumber string    `json:"referenceNumber,omitempty"`
	Institution     string    `json:"institution,omitempty"`
	DocumentURL     string    `json:"documentUrl,omitempty"`
	Office          string    `json:"office"`
	RecordedBy      string    `json:"recordedBy"`
	CreatedAt       time.Time `json:"createdAt"`
}
