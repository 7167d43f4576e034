package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, manages users, settings and schedules
	RoleManager  Role = "manager"  // Can approve leave, expense and outing requests
	RoleEmployee Role = "employee" // Regular employee
)

// Roles lists every valid role.
var Roles = []string{string(RoleAdmin), string(RoleManager), string(RoleEmployee)}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	RealName     *string
	EmployeeCode *string
	Department   *string
	Position     *string
	Phone        *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can decide approval requests
func (u *User) CanApprove() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// HashPassword returns the bcrypt hash stored in PasswordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
