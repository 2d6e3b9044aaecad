package models

import "time"

// Submission is the database row shape of a cash flow submission. The nested
// form state, signatories, attached forms and completed sub-forms are stored
// as jsonb blobs; only workflow fields get their own columns.
type Submission struct {
	SubmissionID   string     `db:"submission_id"`
	OrganizationID string     `db:"organization_id"`
	SubmitterID    string     `db:"submitter_id"`
	Status         string     `db:"status"`
	FormData       []byte     `db:"form_data"`
	Signatories    []byte     `db:"signatories"`
	AttachedForms  []byte     `db:"attached_forms"`
	CompletedForms []byte     `db:"completed_forms"`
	SubmittedAt    *time.Time `db:"submitted_at"`
	AuditFields
}

// SupportingDocument is the row shape of one uploaded file's metadata.
type SupportingDocument struct {
	DocumentID   string    `db:"document_id"`
	SubmissionID string    `db:"submission_id"`
	FileName     string    `db:"file_name"`
	MimeType     string    `db:"mime_type"`
	SizeBytes    int64     `db:"size_bytes"`
	StorageKey   string    `db:"storage_key"`
	UploadedAt   time.Time `db:"uploaded_at"`
}

// ReviewComment is the row shape of one reviewer action.
type ReviewComment struct {
	CommentID    string    `db:"comment_id"`
	SubmissionID string    `db:"submission_id"`
	ReviewerID   string    `db:"reviewer_id"`
	Action       string    `db:"action"`
	Comments     string    `db:"comments"`
	CreatedAt    time.Time `db:"created_at"`
}
