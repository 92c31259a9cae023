package auth

import "testing"

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestDefaultPermissionsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		if _, ok := seen[perm]; ok {
			t.Fatalf("duplicate permission %s", perm)
		}
		seen[perm] = struct{}{}
	}
}

func TestAdminHoldsEveryPermission(t *testing.T) {
	adminPerms := map[string]struct{}{}
	for _, perm := range RolePermissions[RoleAdmin] {
		adminPerms[perm] = struct{}{}
	}
	for _, perm := range DefaultPermissions {
		if _, ok := adminPerms[perm]; !ok {
			t.Fatalf("admin is missing permission %s", perm)
		}
	}
}

func TestRecorderCannotApproveOrConfigure(t *testing.T) {
	for _, perm := range RolePermissions[RoleRecorder] {
		switch perm {
		case PermLeaveApprove, PermBonusConfigure, PermBonusCompute, PermExportRun, PermEmployeesWrite:
			t.Fatalf("recorder must not hold %s", perm)
		}
	}
}
