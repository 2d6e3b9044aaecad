package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darwincarillo2003/liquidation-backend/internal/apperrors"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	portsrepo "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/repositories"
	"github.com/darwincarillo2003/liquidation-backend/internal/models"
	"github.com/darwincarillo2003/liquidation-backend/internal/utils/mapping"
	"github.com/darwincarillo2003/liquidation-backend/internal/utils/pagination"
)

type PgxSubmissionRepository struct {
	BaseRepository
}

// newPgxSubmissionRepository creates a new repository for submission data.
func newPgxSubmissionRepository(pool *pgxpool.Pool) portsrepo.SubmissionRepositoryFacade {
	return &PgxSubmissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSubmissionRepository implements portsrepo.SubmissionRepositoryFacade
var _ portsrepo.SubmissionRepositoryFacade = (*PgxSubmissionRepository)(nil)

const submissionColumns = `
	submission_id, organization_id, submitter_id, status,
	form_data, signatories, attached_forms, completed_forms,
	submitted_at, created_at, created_by, last_updated_at, last_updated_by
`

func scanSubmission(row pgx.Row) (models.Submission, error) {
	var m models.Submission
	err := row.Scan(
		&m.SubmissionID,
		&m.OrganizationID,
		&m.SubmitterID,
		&m.Status,
		&m.FormData,
		&m.Signatories,
		&m.AttachedForms,
		&m.CompletedForms,
		&m.SubmittedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSubmission inserts a new submission row.
func (r *PgxSubmissionRepository) SaveSubmission(ctx context.Context, submission domain.Submission) error {
	m, err := mapping.ToModelSubmission(submission)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.SubmissionID,
		m.OrganizationID,
		m.SubmitterID,
		m.Status,
		m.FormData,
		m.Signatories,
		m.AttachedForms,
		m.CompletedForms,
		m.SubmittedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// UpdateSubmission replaces the form contents of an existing submission.
func (r *PgxSubmissionRepository) UpdateSubmission(ctx context.Context, submission domain.Submission) error {
	m, err := mapping.ToModelSubmission(submission)
	if err != nil {
		return err
	}

	query := `
		UPDATE submissions SET
			form_data = $2,
			signatories = $3,
			attached_forms = $4,
			completed_forms = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE submission_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SubmissionID,
		m.FormData,
		m.Signatories,
		m.AttachedForms,
		m.CompletedForms,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission %s: %w", m.SubmissionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateSubmissionStatus moves a submission to a new status and records the
// review comment (if any) in the same database transaction.
func (r *PgxSubmissionRepository) UpdateSubmissionStatus(ctx context.Context, submissionID string, status domain.SubmissionStatus, submittedAt *time.Time, comment *domain.ReviewComment, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE submissions SET
			status = $2,
			submitted_at = $3,
			last_updated_at = $4,
			last_updated_by = $5
		WHERE submission_id = $1;
	`
	tag, err := tx.Exec(ctx, statusQuery, submissionID, string(status), submittedAt, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if comment != nil {
		commentQuery := `
			INSERT INTO review_comments (comment_id, submission_id, reviewer_id, action, comments, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		_, err = tx.Exec(ctx, commentQuery,
			comment.CommentID,
			submissionID,
			comment.ReviewerID,
			string(comment.Action),
			comment.Comments,
			comment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert review comment: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindSubmissionByID retrieves a submission with its documents and comments.
func (r *PgxSubmissionRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE submission_id = $1;
	`
	m, err := scanSubmission(r.Pool.QueryRow(ctx, query, submissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find submission %s: %w", submissionID, err)
	}

	d, err := mapping.ToDomainSubmission(m)
	if err != nil {
		return nil, err
	}

	if d.Documents, err = r.findDocuments(ctx, submissionID); err != nil {
		return nil, err
	}
	if d.ReviewComments, err = r.findComments(ctx, submissionID); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindDraftByOrganization retrieves the editable draft for an organization
// and academic year, if one exists.
func (r *PgxSubmissionRepository) FindDraftByOrganization(ctx context.Context, organizationID string, academicYear string) (*domain.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE organization_id = $1
		  AND form_data->>'academicYear' = $2
		  AND status IN ('draft', 'returned')
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanSubmission(r.Pool.QueryRow(ctx, query, organizationID, academicYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find draft for organization %s: %w", organizationID, err)
	}

	d, err := mapping.ToDomainSubmission(m)
	if err != nil {
		return nil, err
	}
	if d.Documents, err = r.findDocuments(ctx, d.SubmissionID); err != nil {
		return nil, err
	}
	if d.ReviewComments, err = r.findComments(ctx, d.SubmissionID); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListForReview retrieves a page of submissions ordered by (created_at,
// submission_id) using token-based pagination. The default view covers forms
// in the review pipeline; a status filter narrows it to one status.
func (r *PgxSubmissionRepository) ListForReview(ctx context.Context, status *domain.SubmissionStatus, limit int, nextToken *string) ([]domain.Submission, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
	`
	args := []any{}
	argIdx := 1

	if status != nil {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, string(*status))
		argIdx++
	} else {
		query += " WHERE status <> 'draft'"
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += fmt.Sprintf(" AND (created_at, submission_id) > ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, lastCreatedAt, lastID)
		argIdx += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY created_at, submission_id LIMIT $%d", argIdx)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list submissions for review: %w", err)
	}
	defer rows.Close()

	var modelRows []models.Submission
	for rows.Next() {
		m, scanErr := scanSubmission(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan submission row: %w", scanErr)
		}
		modelRows = append(modelRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading submission rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelRows) > limit {
		modelRows = modelRows[:limit]
		last := modelRows[len(modelRows)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SubmissionID)
		nextTokenVal = &token
	}

	submissions := make([]domain.Submission, 0, len(modelRows))
	for _, m := range modelRows {
		d, mapErr := mapping.ToDomainSubmission(m)
		if mapErr != nil {
			return nil, nil, mapErr
		}
		if d.Documents, err = r.findDocuments(ctx, d.SubmissionID); err != nil {
			return nil, nil, err
		}
		if d.ReviewComments, err = r.findComments(ctx, d.SubmissionID); err != nil {
			return nil, nil, err
		}
		submissions = append(submissions, d)
	}

	return submissions, nextTokenVal, nil
}

// AddSupportingDocuments attaches document metadata rows to a submission.
func (r *PgxSubmissionRepository) AddSupportingDocuments(ctx context.Context, submissionID string, documents []domain.SupportingDocument) error {
	if len(documents) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO supporting_documents (document_id, submission_id, file_name, mime_type, size_bytes, storage_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, doc := range documents {
		if _, err := tx.Exec(ctx, query,
			doc.DocumentID,
			submissionID,
			doc.FileName,
			doc.MimeType,
			doc.SizeBytes,
			doc.StorageKey,
			doc.UploadedAt,
		); err != nil {
			return fmt.Errorf("failed to insert supporting document %s: %w", doc.DocumentID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSubmissionRepository) findDocuments(ctx context.Context, submissionID string) ([]domain.SupportingDocument, error) {
	query := `
		SELECT document_id, submission_id, file_name, mime_type, size_bytes, storage_key, uploaded_at
		FROM supporting_documents
		WHERE submission_id = $1
		ORDER BY uploaded_at;
	`
	rows, err := r.Pool.Query(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supporting documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.SupportingDocument
	for rows.Next() {
		var m models.SupportingDocument
		if err := rows.Scan(&m.DocumentID, &m.SubmissionID, &m.FileName, &m.MimeType, &m.SizeBytes, &m.StorageKey, &m.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supporting document row: %w", err)
		}
		docs = append(docs, mapping.ToDomainSupportingDocument(m))
	}
	return docs, rows.Err()
}

func (r *PgxSubmissionRepository) findComments(ctx context.Context, submissionID string) ([]domain.ReviewComment, error) {
	query := `
		SELECT comment_id, submission_id, reviewer_id, action, comments, created_at
		FROM review_comments
		WHERE submission_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query review comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.ReviewComment
	for rows.Next() {
		var m models.ReviewComment
		if err := rows.Scan(&m.CommentID, &m.SubmissionID, &m.ReviewerID, &m.Action, &m.Comments, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review comment row: %w", err)
		}
		comments = append(comments, mapping.ToDomainReviewComment(m))
	}
	return comments, rows.Err()
}
