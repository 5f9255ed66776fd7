package domain

import "time"

// UserRole controls what a user may do; SLA configuration is admin-only.
type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleAgent     UserRole = "AGENT"
	UserRoleRequester UserRole = "REQUESTER"
)

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for accounts that create and work tickets.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
