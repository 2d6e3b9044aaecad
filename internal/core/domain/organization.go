package domain

// Organization is a registered student organization whose funds are subject
// to liquidation.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	AcademicYear   string `json:"academicYear"` // YYYY-YYYY
	IsActive       bool   `json:"isActive"`
	AuditFields
}
