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

var (
	ErrNotSubmitter     = errors.New("only the submitting treasurer may modify this submission")
	ErrNotEditable      = errors.New("submission is no longer editable")
	ErrNoOrganization   = errors.New("user does not belong to an organization")
	ErrFileTooLarge     = errors.New("supporting document exceeds the size limit")
	ErrUnsupportedFile  = errors.New("supporting document type is not accepted")
	ErrUnknownDecision  = errors.New("unknown review decision")
	ErrOrgInactive      = errors.New("organization is not active")
	ErrReviewCommentReq = errors.New("comments are required when returning or flagging a submission")
)

const (
	defaultReviewPageSize = 20
	maxReviewPageSize     = 100
)

// allowedDocumentTypes lists the MIME types accepted for supporting documents.
var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// cashflowService implements the liquidation workflow around cash flow
// statement submissions.
type cashflowService struct {
	submissionRepo portsrepo.SubmissionRepositoryFacade
	orgRepo        portsrepo.OrganizationRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	documents      portsrepo.DocumentStore
	maxUploadBytes int64
}

// NewCashflowService creates a new cashflow service.
func NewCashflowService(
	submissionRepo portsrepo.SubmissionRepositoryFacade,
	orgRepo portsrepo.OrganizationRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	documents portsrepo.DocumentStore,
	maxUploadBytes int64,
) portssvc.CashflowSvcFacade {
	return &cashflowService{
		submissionRepo: submissionRepo,
		orgRepo:        orgRepo,
		userRepo:       userRepo,
		documents:      documents,
		maxUploadBytes: maxUploadBytes,
	}
}

var _ portssvc.CashflowSvcFacade = (*cashflowService)(nil)

// SaveDraft creates or updates a draft submission. Saving a draft twice for
// the same organization and academic year updates the existing draft rather
// than creating a second one.
func (s *cashflowService) SaveDraft(ctx context.Context, input dto.ParsedSubmissionInput, files []portssvc.UploadedFile, requester domain.Actor) (*domain.Submission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requester.Role != domain.RoleTreasurer && requester.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	submitter, err := s.userRepo.FindUserByID(ctx, requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitter: %w", err)
	}
	if submitter.OrganizationID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNoOrganization)
	}
	orgID := submitter.OrganizationID

	org, err := s.orgRepo.FindOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if !org.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrOrgInactive)
	}

	form := input.Form
	if form.OrganizationName == "" {
		form.OrganizationName = org.Name
	}
	if form.AcademicYear == "" {
		form.AcademicYear = org.AcademicYear
	}
	if form.CashOutflows.HasConflictingShapes() {
		logger.Warn("cash outflows carry both activity and legacy shapes, activities take precedence",
			slog.String("organization_id", orgID))
	}
	form.CashOutflows.Normalize()

	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewFieldValidationError(fieldErrs)
	}

	submission, err := s.resolveDraft(ctx, input.SubmissionID, orgID, form.AcademicYear, requester)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if submission == nil {
		submission = &domain.Submission{
			SubmissionID:   uuid.NewString(),
			OrganizationID: orgID,
			SubmitterID:    requester.UserID,
			Status:         domain.StatusDraft,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: requester.UserID,
			},
		}
		submission.Form = form
		submission.Signatories = input.Signatories
		submission.AttachedForms = input.AttachedForms
		submission.CompletedForms = input.CompletedForms
		submission.LastUpdatedAt = now
		submission.LastUpdatedBy = requester.UserID

		if err := s.submissionRepo.SaveSubmission(ctx, *submission); err != nil {
			return nil, fmt.Errorf("failed to save submission: %w", err)
		}
	} else {
		submission.Form = form
		submission.Signatories = input.Signatories
		submission.AttachedForms = input.AttachedForms
		submission.CompletedForms = input.CompletedForms
		submission.LastUpdatedAt = now
		submission.LastUpdatedBy = requester.UserID

		if err := s.submissionRepo.UpdateSubmission(ctx, *submission); err != nil {
			return nil, fmt.Errorf("failed to update submission: %w", err)
		}
	}

	if len(files) > 0 {
		docs, err := s.storeDocuments(ctx, files, now)
		if err != nil {
			return nil, err
		}
		if err := s.submissionRepo.AddSupportingDocuments(ctx, submission.SubmissionID, docs); err != nil {
			return nil, fmt.Errorf("failed to record supporting documents: %w", err)
		}
		submission.Documents = append(submission.Documents, docs...)
	}

	logger.Info("draft saved",
		slog.String("submission_id", submission.SubmissionID),
		slog.String("organization_id", orgID))
	return submission, nil
}

// resolveDraft finds the submission a save should land on: the one named in
// the request, or the organization's existing editable draft, or nil when a
// new draft must be created.
func (s *cashflowService) resolveDraft(ctx context.Context, submissionID, orgID, academicYear string, requester domain.Actor) (*domain.Submission, error) {
	if submissionID != "" {
		existing, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
		if err != nil {
			return nil, err
		}
		if err := s.authorizeEdit(existing, requester); err != nil {
			return nil, err
		}
		return existing, nil
	}

	existing, err := s.submissionRepo.FindDraftByOrganization(ctx, orgID, academicYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.authorizeEdit(existing, requester); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *cashflowService) authorizeEdit(submission *domain.Submission, requester domain.Actor) error {
	if submission.SubmitterID != requester.UserID && requester.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotSubmitter)
	}
	if !submission.Status.IsEditable() {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNotEditable)
	}
	return nil
}

// storeDocuments validates and persists uploaded files, returning their
// metadata records.
func (s *cashflowService) storeDocuments(ctx context.Context, files []portssvc.UploadedFile, now time.Time) ([]domain.SupportingDocument, error) {
	docs := make([]domain.SupportingDocument, 0, len(files))
	for _, f := range files {
		if !allowedDocumentTypes[f.MimeType] {
			return nil, apperrors.NewFieldValidationError(map[string][]string{
				"supporting_documents": {fmt.Sprintf("%s: %s", f.FileName, ErrUnsupportedFile)},
			})
		}
		if s.maxUploadBytes > 0 && f.Size > s.maxUploadBytes {
			return nil, apperrors.NewFieldValidationError(map[string][]string{
				"supporting_documents": {fmt.Sprintf("%s: %s", f.FileName, ErrFileTooLarge)},
			})
		}

		storageKey := uuid.NewString()
		written, err := s.documents.SaveFile(ctx, storageKey, f.Contents)
		if err != nil {
			return nil, fmt.Errorf("failed to store document %s: %w", f.FileName, err)
		}

		docs = append(docs, domain.SupportingDocument{
			DocumentID: uuid.NewString(),
			FileName:   f.FileName,
			MimeType:   f.MimeType,
			SizeBytes:  written,
			StorageKey: storageKey,
			UploadedAt: now,
		})
	}
	return docs, nil
}

// Submit moves a draft or returned submission into the review queue.
func (s *cashflowService) Submit(ctx context.Context, submissionID string, requester domain.Actor) (*domain.Submission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	submission, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.SubmitterID != requester.UserID && requester.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotSubmitter)
	}
	if !submission.Status.CanTransitionTo(domain.StatusSubmitted) {
		return nil, fmt.Errorf("%w: cannot submit a %s submission", apperrors.ErrConflict, submission.Status)
	}

	if fieldErrs := submission.Form.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.NewFieldValidationError(fieldErrs)
	}

	now := time.Now().UTC()
	if err := s.submissionRepo.UpdateSubmissionStatus(ctx, submissionID, domain.StatusSubmitted, &now, nil, requester.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to submit: %w", err)
	}

	submission.Status = domain.StatusSubmitted
	submission.SubmittedAt = &now
	submission.LastUpdatedAt = now
	submission.LastUpdatedBy = requester.UserID

	logger.Info("submission entered review queue", slog.String("submission_id", submissionID))
	return submission, nil
}

// Review applies a reviewer decision to a submitted form.
func (s *cashflowService) Review(ctx context.Context, submissionID string, decision domain.SubmissionStatus, comments string, reviewer domain.Actor) (*domain.Submission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !reviewer.Role.CanReview() {
		return nil, apperrors.ErrForbidden
	}

	switch decision {
	case domain.StatusApproved, domain.StatusFlagged, domain.StatusUnliquidated, domain.StatusReturned:
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnknownDecision)
	}
	if comments == "" && (decision == domain.StatusReturned || decision == domain.StatusFlagged) {
		return nil, apperrors.NewFieldValidationError(map[string][]string{
			"comments": {ErrReviewCommentReq.Error()},
		})
	}

	submission, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if !submission.Status.CanTransitionTo(decision) {
		return nil, fmt.Errorf("%w: cannot move a %s submission to %s", apperrors.ErrConflict, submission.Status, decision)
	}

	now := time.Now().UTC()
	comment := &domain.ReviewComment{
		CommentID:  uuid.NewString(),
		ReviewerID: reviewer.UserID,
		Action:     decision,
		Comments:   comments,
		CreatedAt:  now,
	}

	if err := s.submissionRepo.UpdateSubmissionStatus(ctx, submissionID, decision, submission.SubmittedAt, comment, reviewer.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to record review decision: %w", err)
	}

	submission.Status = decision
	submission.ReviewComments = append(submission.ReviewComments, *comment)
	submission.LastUpdatedAt = now
	submission.LastUpdatedBy = reviewer.UserID

	logger.Info("review decision recorded",
		slog.String("submission_id", submissionID),
		slog.String("decision", string(decision)))
	return submission, nil
}

// GetSubmissionByID retrieves a submission, restricting access to its
// submitter, members of its organization, and review roles.
func (s *cashflowService) GetSubmissionByID(ctx context.Context, submissionID string, requester domain.Actor) (*domain.Submission, *domain.User, error) {
	submission, err := s.submissionRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, nil, err
	}

	if !requester.Role.CanViewReviewQueue() && submission.SubmitterID != requester.UserID {
		requestingUser, err := s.userRepo.FindUserByID(ctx, requester.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load requesting user: %w", err)
		}
		if requestingUser.OrganizationID == "" || requestingUser.OrganizationID != submission.OrganizationID {
			return nil, nil, apperrors.ErrForbidden
		}
	}

	submitter, err := s.userRepo.FindUserByID(ctx, submission.SubmitterID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to load submitter: %w", err)
	}
	return submission, submitter, nil
}

// ListReviewQueue returns a page of submissions for COA review.
func (s *cashflowService) ListReviewQueue(ctx context.Context, requester domain.Actor, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
	if !requester.Role.CanViewReviewQueue() {
		return nil, apperrors.ErrForbidden
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultReviewPageSize
	}
	if limit > maxReviewPageSize {
		limit = maxReviewPageSize
	}

	var status *domain.SubmissionStatus
	if params.Status != "" {
		if !domain.IsValidStatus(params.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		st := domain.SubmissionStatus(params.Status)
		status = &st
	}

	submissions, nextToken, err := s.submissionRepo.ListForReview(ctx, status, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list review queue: %w", err)
	}

	resp := &dto.ListReviewResponse{
		Submissions: make([]dto.SubmissionResponse, 0, len(submissions)),
		NextToken:   nextToken,
	}
	for i := range submissions {
		submitter, err := s.userRepo.FindUserByID(ctx, submissions[i].SubmitterID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load submitter: %w", err)
		}
		resp.Submissions = append(resp.Submissions, dto.ToSubmissionResponse(&submissions[i], submitter))
	}
	return resp, nil
}
