package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleManager   UserRole = "MANAGER"
	RoleHR        UserRole = "HR"
	RoleEmployee  UserRole = "EMPLOYEE"
	RoleInventory UserRole = "INVENTORY"
)

// Roles lists the known roles in the order they appear in role pickers.
var Roles = []UserRole{RoleEmployee, RoleManager, RoleHR, RoleInventory, RoleAdmin}

// Valid reports whether r is one of the five known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleHR, RoleEmployee, RoleInventory:
		return true
	}
	return false
}

// Label is the human form used in dropdowns ("HR" stays upper case).
func (r UserRole) Label() string {
	if r == RoleHR {
		return "HR"
	}
	s := strings.ToLower(string(r))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseRole normalises case; unknown values are returned as-is and stay invalid.
func ParseRole(s string) UserRole {
	return UserRole(strings.ToUpper(strings.TrimSpace(s)))
}

// User is a directory entry as returned by the ERP API.
type User struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      UserRole        `json:"role"`
	Salary    decimal.Decimal `json:"salary"`
	Status    bool            `json:"status"`
	LastLogin *time.Time      `json:"lastLogin,omitempty"`
}

// UserInput is the payload for POST /users and PUT /users/:id.
type UserInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password,omitempty"`
	Role     UserRole        `json:"role"`
	Salary   decimal.Decimal `json:"salary"`
	Status   *bool           `json:"status,omitempty"`
}

// UserFilter holds the query of GET /users.
type UserFilter struct {
	Page   int
	Limit  int
	Search string
	Role   UserRole
	Status string // "", "true", "false"
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HasPrev and HasNext drive the pager links.
func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.Pages }

type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the body of a successful POST /auth/login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
