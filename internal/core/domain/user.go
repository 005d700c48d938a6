package domain

import "strings"

// DefaultRole is assigned when a registration omits the role.
const DefaultRole = "USER"

// User models a registered account on the platform.
//
// Password holds the credential exactly as supplied at signup; authentication
// compares it as a plain string. That mirrors the upstream contract and is a
// known gap — a production deployment must hash credentials before storing.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// NormalizeRole maps a raw role string to its stored form: blank becomes
// DefaultRole, everything else is uppercased.
func NormalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return DefaultRole
	}
	return strings.ToUpper(role)
}
