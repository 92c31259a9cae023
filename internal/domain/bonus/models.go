package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the process-wide bonus policy. One row, updated only by an
// administrator or supervisor.
type Config struct {
	BaseAmount          decimal.Decimal `json:"baseAmount"`
	LatePenalty         decimal.Decimal `json:"latePenalty"`
	AbsencePenalty      decimal.Decimal `json:"absencePenalty"`
	MinimumPresenceDays int             `json:"minimumPresenceDays"`
	UpdatedBy           string          `json:"updatedBy,omitempty"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Record is one employee's bonus for a (year, month) period.
// Recomputation updates the row in place.
type Record struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employeeId"`
	FullName    string          `json:"fullName,omitempty"`
	Office      string          `json:"office,omitempty"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	WorkedDays  int             `json:"workedDays"`
	PresentDays int             `json:"presentDays"`
	LateDays    int             `json:"lateDays"`
	AbsentDays  int             `json:"absentDays"`
	Amount      decimal.Decimal `json:"amount"`
	ComputedBy  string          `json:"computedBy"`
	ComputedAt  time.Time       `json:"computedAt"`
}
