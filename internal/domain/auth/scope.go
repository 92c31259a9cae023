package auth

import "errors"

// ErrOfficeScope is returned when an office-scoped caller targets an
// employee assigned to another office.
var ErrOfficeScope = errors.New("employee is outside the caller's office")

// OfficeScope returns the office a caller's writes are confined to.
// Recorders are tied to their assigned office; every other role gets an
// empty scope, meaning unrestricted.
func OfficeScope(roleName, office string) string {
	if roleName == RoleRecorder {
		return office
	}
	return ""
}

// CheckOfficeScope rejects a write targeting an employee outside the
// scope. An empty scope always passes.
func CheckOfficeScope(scope, employeeOffice string) error {
	if scope == "" || scope == employeeOffice {
		return nil
	}
	return ErrOfficeScope
}
