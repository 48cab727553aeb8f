package models

import "testing"

func TestParseUserRole(t *testing.T) {
	cases := []struct {
		raw   string
		want  UserRole
		valid bool
	}{
		{"a", RoleAdmin, true},
		{"A", RoleAdmin, true},
		{" g ", RoleGuest, true},
		{"u", RoleAttendant, true},
		{"z", "Z", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseUserRole(tc.raw)
		if ok != tc.valid {
			t.Fatalf("ParseUserRole(%q) valid=%v, want %v", tc.raw, ok, tc.valid)
		}
		if tc.valid && got != tc.want {
			t.Fatalf("ParseUserRole(%q)=%q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestAdminAuthoritiesCoverAllRoles(t *testing.T) {
	for _, required := range []UserRole{RoleAdmin, RoleAttendant, RoleGuest} {
		if !RoleAdmin.HasAuthority(required) {
			t.Fatalf("admin should carry the %s authority", required)
		}
	}
}

func TestNonAdminAuthoritiesStandAlone(t *testing.T) {
	if !RoleGuest.HasAuthority(RoleGuest) {
		t.Fatal("guest should carry its own authority")
	}
	if RoleGuest.HasAuthority(RoleAttendant) {
		t.Fatal("guest should not carry the attendant authority")
	}
	if !RoleAttendant.HasAuthority(RoleAttendant) {
		t.Fatal("attendant should carry its own authority")
	}
	if RoleAttendant.HasAuthority(RoleAdmin) {
		t.Fatal("attendant should not carry the admin authority")
	}
}
