package models

import "strings"

// Role is the closed enumeration of account types. Every role-keyed branch
// in the system switches over this type exhaustively; anything else is
// treated as unrecognized.
type Role string

const (
	RoleStudent           Role = "student"
	RoleLecturer          Role = "lecturer"
	RolePrincipalLecturer Role = "principal_lecturer"
	RoleProgramLeader     Role = "program_leader"
	RoleAdmin             Role = "admin"
)

// AllRoles lists the enumeration in declaration order.
func AllRoles() []Role {
	return []Role{RoleStudent, RoleLecturer, RolePrincipalLecturer, RoleProgramLeader, RoleAdmin}
}

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RolePrincipalLecturer, RoleProgramLeader, RoleAdmin:
		return true
	}
	return false
}

// Display renders the role for presentation, e.g. "PRINCIPAL LECTURER".
func (r Role) Display() string {
	return strings.ToUpper(strings.ReplaceAll(string(r), "_", " "))
}

// User is the session's authenticated account, supplied by the gateway.
// Immutable for the lifetime of a request.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the immutable per-request identity context. It is created once
// by the session middleware at login-token decode time and passed explicitly
// through handlers and services; nothing looks identity up ambiently.
type Session struct {
	User User
}

// Anonymous reports whether the session carries no authenticated user.
func (s Session) Anonymous() bool {
	return s.User.ID == 0 && s.User.Role == ""
}
