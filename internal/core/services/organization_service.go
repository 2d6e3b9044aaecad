package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/darwincarillo2003/liquidation-backend/internal/apperrors"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	portsrepo "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/repositories"
	portssvc "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/services"
	"github.com/darwincarillo2003/liquidation-backend/internal/dto"
	"github.com/darwincarillo2003/liquidation-backend/internal/middleware"
)

var ErrOrgNameTaken = errors.New("an organization with this name already exists")

// organizationService manages the student organization registry.
type organizationService struct {
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization registers a new student organization. Admin only.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, requester domain.Actor) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requester.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if existing, err := s.orgRepo.FindOrganizationByName(ctx, req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrOrgNameTaken)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check organization name: %w", err)
	}

	now := time.Now().UTC()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		AcademicYear:   req.AcademicYear,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.UserID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	logger.Info("organization created", slog.String("organization_id", org.OrganizationID), slog.String("name", org.Name))
	return &org, nil
}

// GetOrganizationByID retrieves an organization by ID.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// ListOrganizations retrieves a paginated list of organizations.
func (s *organizationService) ListOrganizations(ctx context.Context, limit, offset int) ([]domain.Organization, error) {
	if limit <= 0 {
		limit = 50
	}
	orgs, err := s.orgRepo.ListOrganizations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// DeactivateOrganization marks an organization inactive. Admin only.
func (s *organizationService) DeactivateOrganization(ctx context.Context, organizationID string, requester domain.Actor) error {
	if requester.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return err
	}
	if !org.IsActive {
		return nil
	}

	org.IsActive = false
	org.LastUpdatedAt = time.Now().UTC()
	org.LastUpdatedBy = requester.UserID

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		return fmt.Errorf("failed to deactivate organization: %w", err)
	}
	return nil
}
