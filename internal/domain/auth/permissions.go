package auth

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleRecorder   = "recorder"
)

var RoleNames = []string{RoleAdmin, RoleSupervisor, RoleRecorder}

const (
	PermEmployeesRead   = "employees.read"
	PermEmployeesWrite  = "employees.write"
	PermAttendanceRead  = "attendance.read"
	PermAttendanceWrite = "attendance.write"
	PermLeaveRead       = "leave.read"
	PermLeaveWrite      = "leave.write"
	PermLeaveApprove    = "leave.approve"
	PermMedicalRead     = "medical.read"
	PermMedicalWrite    = "medical.write"
	PermBonusRead       = "bonus.read"
	PermBonusCompute    = "bonus.compute"
	PermBonusConfigure  = "bonus.configure"
	PermAuditRead       = "audit.read"
	PermExportRun       = "export.run"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermMedicalRead,
	PermMedicalWrite,
	PermBonusRead,
	PermBonusCompute,
	PermBonusConfigure,
	PermAuditRead,
	PermExportRun,
}

var RolePermissions = map[string][]string{
	RoleRecorder: {
		PermEmployeesRead,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermLeaveRead,
		PermLeaveWrite,
		PermMedicalRead,
		PermMedicalWrite,
	},
	RoleSupervisor: {
		PermEmployeesRead,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermMedicalRead,
		PermMedicalWrite,
		PermBonusRead,
		PermBonusCompute,
		PermBonusConfigure,
		PermAuditRead,
	},
	RoleAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermMedicalRead,
		PermMedicalWrite,
		PermBonusRead,
		PermBonusCompute,
		PermBonusConfigure,
		PermAuditRead,
		PermExportRun,
	},
}
