package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darwincarillo2003/liquidation-backend/internal/apperrors"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	portsrepo "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/repositories"
	"github.com/darwincarillo2003/liquidation-backend/internal/models"
	"github.com/darwincarillo2003/liquidation-backend/internal/utils/mapping"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `
	organization_id, name, academic_year, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanOrganization(row pgx.Row) (models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.Name,
		&m.AcademicYear,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOrganization inserts a new organization row.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization) error {
	m := mapping.ToModelOrganization(organization)
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.AcademicYear,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}
	return nil
}

// UpdateOrganization updates the mutable fields of an organization.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, organization domain.Organization) error {
	m := mapping.ToModelOrganization(organization)
	query := `
		UPDATE organizations SET
			name = $2,
			academic_year = $3,
			is_active = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE organization_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.AcademicYear,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", m.OrganizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its primary key.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE organization_id = $1;
	`
	m, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}

	d := mapping.ToDomainOrganization(m)
	return &d, nil
}

// FindOrganizationByName retrieves an organization by its exact name.
func (r *PgxOrganizationRepository) FindOrganizationByName(ctx context.Context, name string) (*domain.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE name = $1;
	`
	m, err := scanOrganization(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by name: %w", err)
	}

	d := mapping.ToDomainOrganization(m)
	return &d, nil
}

// ListOrganizations retrieves a page of organizations ordered by name.
func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		m, scanErr := scanOrganization(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", scanErr)
		}
		orgs = append(orgs, mapping.ToDomainOrganization(m))
	}
	return orgs, rows.Err()
}
