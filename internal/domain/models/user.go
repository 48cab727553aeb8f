package models

import (
	"strings"
	"time"

	"hotelapi/internal/domain"
)

// UserRole is the single-letter role code stored on a user.
type UserRole string

const (
	RoleAdmin     UserRole = "A"
	RoleGuest     UserRole = "G"
	RoleAttendant UserRole = "U"
)

// ParseUserRole uppercases raw and reports whether it names a known role.
func ParseUserRole(raw string) (UserRole, bool) {
	r := UserRole(strings.ToUpper(strings.TrimSpace(raw)))
	switch r {
	case RoleAdmin, RoleGuest, RoleAttendant:
		return r, true
	}
	return r, false
}

// Authorities derives the authority set for a role. ADMIN implies both
// ATTENDANT and GUEST; the other two stand alone.
func (r UserRole) Authorities() []UserRole {
	if r == RoleAdmin {
		return []UserRole{RoleAdmin, RoleAttendant, RoleGuest}
	}
	return []UserRole{r}
}

// HasAuthority reports whether r's authority set covers required.
func (r UserRole) HasAuthority(required UserRole) bool {
	for _, a := range r.Authorities() {
		if a == required {
			return true
		}
	}
	return false
}

// User holds a guest, attendant or admin account. The password hash never
// leaves the backend.
type User struct {
	ID           domain.ID `json:"id"`
	Document     string    `json:"document"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	PhoneDDD     string    `json:"phone_ddd"`
	PhoneDDI     string    `json:"phone_ddi"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
