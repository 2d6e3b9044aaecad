package services

import (
	"context"
	"io"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	"github.com/darwincarillo2003/liquidation-backend/internal/dto"
)

// UploadedFile carries a single supporting document received over a
// multipart request, decoupled from the HTTP layer.
type UploadedFile struct {
	FileName string
	MimeType string
	Size     int64
	Contents io.Reader
}

// CashflowReaderSvc defines read operations for cash flow submissions
type CashflowReaderSvc interface {
	// GetSubmissionByID retrieves a submission by its ID, enforcing that the
	// requesting actor may view it.
	GetSubmissionByID(ctx context.Context, submissionID string, requester domain.Actor) (*domain.Submission, *domain.User, error)

	// ListReviewQueue retrieves a paginated list of submissions awaiting COA review.
	ListReviewQueue(ctx context.Context, requester domain.Actor, params dto.ListReviewParams) (*dto.ListReviewResponse, error)
}

// CashflowWriterSvc defines write operations for cash flow submissions
type CashflowWriterSvc interface {
	// SaveDraft creates or updates the caller's draft submission from the
	// parsed form payload and any uploaded supporting documents.
	SaveDraft(ctx context.Context, input dto.ParsedSubmissionInput, files []UploadedFile, requester domain.Actor) (*domain.Submission, error)

	// Submit moves a draft (or returned) submission into the review queue.
	Submit(ctx context.Context, submissionID string, requester domain.Actor) (*domain.Submission, error)
}

// CashflowReviewerSvc defines review operations available to COA reviewers
type CashflowReviewerSvc interface {
	// Review moves a submitted form to the given terminal review status,
	// recording the reviewer's comments.
	Review(ctx context.Context, submissionID string, decision domain.SubmissionStatus, comments string, reviewer domain.Actor) (*domain.Submission, error)
}

// CashflowSvcFacade combines all cash-flow-related service interfaces
// This is a facade for clients that need access to all operations
type CashflowSvcFacade interface {
	CashflowReaderSvc
	CashflowWriterSvc
	CashflowReviewerSvc
}
