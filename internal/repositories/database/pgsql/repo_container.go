package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories. The document
// store is disk-backed and injected separately by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, documents portsrepo.DocumentStore) portsrepo.RepositoryProvider {
	submissionRepo := newPgxSubmissionRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		SubmissionRepo:   submissionRepo,
		OrganizationRepo: organizationRepo,
		UserRepo:         userRepo,
		Documents:        documents,
	}
}
