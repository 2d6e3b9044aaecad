package models

import "time"

// User is the database row shape of an account.
type User struct {
	UserID         string     `db:"user_id"`
	Username       string     `db:"username"`
	Name           string     `db:"name"`
	Email          string     `db:"email"`
	PasswordHash   string     `db:"password_hash"`
	Role           string     `db:"role"`
	OrganizationID *string    `db:"organization_id"` // null unless treasurer
	DeletedAt      *time.Time `db:"deleted_at"`
	AuditFields
}
