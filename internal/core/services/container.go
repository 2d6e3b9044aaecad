package services

import (
	portsrepo "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/repositories"
	portssvc "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/services"
	"github.com/darwincarillo2003/liquidation-backend/internal/platform/config"
)

// NewServiceContainer wires all application services with their repository
// dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	container.User = NewUserService(repos.UserRepo, repos.OrganizationRepo)
	container.Cashflow = NewCashflowService(
		repos.SubmissionRepo,
		repos.OrganizationRepo,
		repos.UserRepo,
		repos.Documents,
		cfg.MaxUploadSizeBytes,
	)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
