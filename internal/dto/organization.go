package dto

import (
	"time"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
)

// CreateOrganizationRequest registers a student organization.
type CreateOrganizationRequest struct {
	Name         string `json:"name" binding:"required"`
	AcademicYear string `json:"academic_year" binding:"required,academicyear"`
}

// OrganizationResponse is the wire shape of an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	AcademicYear   string    `json:"academic_year"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListOrganizationsResponse wraps the organization listing used by the form
// header dropdown.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// ToOrganizationResponse converts a domain Organization to its wire shape.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		AcademicYear:   o.AcademicYear,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
	}
}

// ToOrganizationResponses converts a slice of domain organizations.
func ToOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = ToOrganizationResponse(&orgs[i])
	}
	return responses
}
