package repositories

import (
	"context"
	"time"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
)

// SubmissionReader defines read operations for cash flow submission data
type SubmissionReader interface {
	// FindSubmissionByID retrieves a submission together with its supporting
	// documents and review comments.
	FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error)

	// FindDraftByOrganization retrieves the editable draft for an organization
	// and academic year, if one exists.
	FindDraftByOrganization(ctx context.Context, organizationID string, academicYear string) (*domain.Submission, error)

	// ListForReview retrieves a paginated list of submissions awaiting review,
	// optionally filtered by status, using token-based pagination.
	// It returns the submissions, a token for the next page, and an error.
	ListForReview(ctx context.Context, status *domain.SubmissionStatus, limit int, nextToken *string) ([]domain.Submission, *string, error)
}

// SubmissionWriter defines write operations for cash flow submission data
type SubmissionWriter interface {
	// SaveSubmission persists a new submission.
	SaveSubmission(ctx context.Context, submission domain.Submission) error

	// UpdateSubmission replaces the form contents of an existing submission.
	UpdateSubmission(ctx context.Context, submission domain.Submission) error

	// UpdateSubmissionStatus moves a submission to a new status, recording the
	// review comment (if any) in the same database transaction.
	UpdateSubmissionStatus(ctx context.Context, submissionID string, status domain.SubmissionStatus, submittedAt *time.Time, comment *domain.ReviewComment, updatedByUserID string, updatedAt time.Time) error

	// AddSupportingDocuments attaches document records to a submission.
	AddSupportingDocuments(ctx context.Context, submissionID string, documents []domain.SupportingDocument) error
}

// SubmissionRepositoryFacade combines all submission-related repository interfaces
// This is a facade for clients that need access to all operations
type SubmissionRepositoryFacade interface {
	SubmissionReader
	SubmissionWriter
}

// SubmissionRepositoryWithTx extends SubmissionRepositoryFacade with transaction capabilities
type SubmissionRepositoryWithTx interface {
	SubmissionRepositoryFacade
	TransactionManager
}
