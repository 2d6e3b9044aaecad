package services

import (
	"context"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	"github.com/darwincarillo2003/liquidation-backend/internal/dto"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// GetOrganizationByID retrieves an organization by ID.
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves a paginated list of organizations.
	ListOrganizations(ctx context.Context, limit, offset int) ([]domain.Organization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization registers a new student organization.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, requester domain.Actor) (*domain.Organization, error)

	// DeactivateOrganization marks an organization inactive, blocking new submissions.
	DeactivateOrganization(ctx context.Context, organizationID string, requester domain.Actor) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
}
