package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveRequest struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employeeId"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         time.Time  `json:"endDate"`
	RequestedDays   int        `json:"requestedDays"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	RequestedBy     string     `json:"requestedBy"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ApprovalComment string     `json:"approvalComment,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
