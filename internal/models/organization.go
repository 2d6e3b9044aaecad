package models

// Organization is the database row shape of a student organization.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	AcademicYear   string `db:"academic_year"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
