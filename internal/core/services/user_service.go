package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/darwincarillo2003/liquidation-backend/internal/apperrors"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	portsrepo "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/repositories"
	portssvc "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/services"
	"github.com/darwincarillo2003/liquidation-backend/internal/dto"
	"github.com/darwincarillo2003/liquidation-backend/internal/middleware"
	"github.com/darwincarillo2003/liquidation-backend/internal/utils"
)

var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrOrgRequired     = errors.New("treasurers must belong to an organization")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken   = errors.New("username already in use")
	ErrSelfDeleteGuard = errors.New("users may not delete their own account")
)

// userService implements account management and authentication.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	orgRepo  portsrepo.OrganizationRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, orgRepo: orgRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new account. Only admins may create accounts.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requester domain.Actor) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requester.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	role := domain.Role(req.Role)
	if !domain.IsValidRole(role) {
		return nil, apperrors.NewFieldValidationError(map[string][]string{
			"role": {ErrUnknownRole.Error()},
		})
	}
	if role == domain.RoleTreasurer && req.OrganizationID == "" {
		return nil, apperrors.NewFieldValidationError(map[string][]string{
			"organization_id": {ErrOrgRequired.Error()},
		})
	}
	if req.OrganizationID != "" {
		if _, err := s.orgRepo.FindOrganizationByID(ctx, req.OrganizationID); err != nil {
			return nil, fmt.Errorf("failed to resolve organization: %w", err)
		}
	}

	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrUsernameTaken)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:         uuid.NewString(),
		Username:       req.Username,
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		PasswordHash:   hash,
		Role:           role,
		OrganizationID: req.OrganizationID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of the request to the user.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requester domain.Actor) (*domain.User, error) {
	if requester.Role != domain.RoleAdmin && requester.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Role != nil {
		// Role changes are an admin operation regardless of who is updating.
		if requester.Role != domain.RoleAdmin {
			return nil, apperrors.ErrForbidden
		}
		role := domain.Role(*req.Role)
		if !domain.IsValidRole(role) {
			return nil, apperrors.NewFieldValidationError(map[string][]string{
				"role": {ErrUnknownRole.Error()},
			})
		}
		user.Role = role
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requester.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// FindOrCreateUserFromGoogle resolves a local account for a Google sign-in,
// creating a treasurer-less account on first login. New Google accounts get
// no role privileges until an admin assigns them one.
func (s *userService) FindOrCreateUserFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(info.Email)
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:   uuid.NewString(),
		Username: email,
		Name:     info.Name,
		Email:    email,
		Role:     domain.RoleTreasurer,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "google-oauth",
			LastUpdatedAt: now,
			LastUpdatedBy: "google-oauth",
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user from google sign-in: %w", err)
	}

	logger.Info("user provisioned from google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// DeleteUser marks a user as deleted (soft delete).
func (s *userService) DeleteUser(ctx context.Context, userID string, requester domain.Actor) error {
	if requester.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	if requester.UserID == userID {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrSelfDeleteGuard)
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), requester.UserID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// AuthenticateUser checks username/password credentials.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrBadCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrBadCredentials)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrBadCredentials)
	}
	return user, nil
}
