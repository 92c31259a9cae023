package employee

import "time"

type Employee struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"fullName"`
	Office             string    `json:"office"`
	Active             bool      `json:"active"`
	RemainingLeaveDays int       `json:"remainingLeaveDays"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// YearStats aggregates an employee's current-year record counts for the
// dashboard view.
type YearStats struct {
	Year               int `json:"year"`
	PresentDays        int `json:"presentDays"`
	AbsentDays         int `json:"absentDays"`
	LateDays           int `json:"lateDays"`
	SaturdaysWorked    int `json:"saturdaysWorked"`
	RemainingLeaveDays int `json:"remainingLeaveDays"`
	MedicalLeaves      int `json:"medicalLeaves"`
}
