package auth

import (
	"errors"
	"testing"
)

func TestOfficeScopePerRole(t *testing.T) {
	if got := OfficeScope(RoleRecorder, "north"); got != "north" {
		t.Fatalf("recorder scope = %q, want north", got)
	}
	if got := OfficeScope(RoleSupervisor, "north"); got != "" {
		t.Fatalf("supervisor scope = %q, want unrestricted", got)
	}
	if got := OfficeScope(RoleAdmin, "north"); got != "" {
		t.Fatalf("admin scope = %q, want unrestricted", got)
	}
}

func TestCheckOfficeScope(t *testing.T) {
	if err := CheckOfficeScope("", "south"); err != nil {
		t.Fatalf("empty scope must pass, got %v", err)
	}
	if err := CheckOfficeScope("north", "north"); err != nil {
		t.Fatalf("matching office must pass, got %v", err)
	}
	if err := CheckOfficeScope("north", "south"); !errors.Is(err, ErrOfficeScope) {
		t.Fatalf("expected ErrOfficeScope, got %v", err)
	}
}
