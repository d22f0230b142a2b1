package domain

import (
	"time"
)

// Role types
const (
	RoleCliente = "cliente"
	RoleAdmin   = "admin"
)

// User represents the user entity (domain model). Deactivated users keep
// their row so email/username stay unique forever; there is no hard delete.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	Company      string    `json:"company,omitempty"`
	Role         string    `json:"role" gorm:"not null;default:'cliente'"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository defines the contract for user data access.
// Find methods search all users, active or not; FindActive is the exception.
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	// FindActive returns active users, newest first, capped at limit.
	FindActive(limit int) ([]User, error)
	Update(user *User) error
	CountActive() (int64, error)
}
