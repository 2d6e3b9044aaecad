package domain

import "time"

// Role defines what a user may do in the liquidation workflow.
type Role string

const (
	// RoleTreasurer prepares and submits cash flow statements for an
	// organization.
	RoleTreasurer Role = "treasurer"
	// RoleCOA is the Commission on Audit reviewer who approves, flags or
	// returns submissions.
	RoleCOA Role = "coa"
	// RoleAuditor has read access to the review queue.
	RoleAuditor Role = "auditor"
	// RoleAdmin manages users and organizations.
	RoleAdmin Role = "admin"
)

// IsValidRole reports whether r is a known role.
func IsValidRole(r Role) bool {
	switch r {
	case RoleTreasurer, RoleCOA, RoleAuditor, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may act on submitted statements.
func (r Role) CanReview() bool {
	return r == RoleCOA || r == RoleAdmin
}

// CanViewReviewQueue reports whether the role may read the review queue.
func (r Role) CanViewReviewQueue() bool {
	return r == RoleCOA || r == RoleAuditor || r == RoleAdmin
}

// GoogleUserInfo holds the profile details returned by Google after a
// successful OAuth exchange.
type GoogleUserInfo struct {
	ProviderUserID string
	Email          string
	Name           string
	PictureURL     string
}

// Actor identifies the authenticated caller of a service operation, as
// extracted from the token claims.
type Actor struct {
	UserID string
	Role   Role
}

// User represents an account in the system.
type User struct {
	UserID         string `json:"userID"` // Primary Key (UUID)
	Username       string `json:"username"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	Role           Role   `json:"role"`
	OrganizationID string `json:"organizationID,omitempty"` // set for treasurers
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // soft delete
}
