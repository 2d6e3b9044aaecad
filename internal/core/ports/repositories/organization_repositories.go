package repositories

import (
	"context"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// FindOrganizationByName retrieves an organization by its exact name.
	FindOrganizationByName(ctx context.Context, name string) (*domain.Organization, error)

	// ListOrganizations retrieves a paginated list of organizations.
	ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, organization domain.Organization) error

	// UpdateOrganization updates the details of an existing organization.
	UpdateOrganization(ctx context.Context, organization domain.Organization) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
