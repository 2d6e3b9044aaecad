package domain

import (
	"encoding/json"
	"time"
)

// SubmissionStatus tracks a cash flow statement through the liquidation
// workflow.
type SubmissionStatus string

const (
	StatusDraft        SubmissionStatus = "draft"
	StatusSubmitted    SubmissionStatus = "submitted"
	StatusApproved     SubmissionStatus = "approved"
	StatusFlagged      SubmissionStatus = "flagged"
	StatusUnliquidated SubmissionStatus = "unliquidated"
	StatusReturned     SubmissionStatus = "returned"
)

// validTransitions encodes draft -> submitted -> {approved, flagged,
// unliquidated, returned}; a returned submission re-enters the editable set
// and may be submitted again.
var validTransitions = map[SubmissionStatus][]SubmissionStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusFlagged, StatusUnliquidated, StatusReturned},
	StatusReturned:  {StatusSubmitted},
}

// CanTransitionTo reports whether the workflow permits moving to next.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsEditable reports whether the form fields may still be changed. Only
// drafts and returned submissions are editable; every other state is
// read-only.
func (s SubmissionStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusReturned
}

// IsValidStatus reports whether s is a known workflow status.
func IsValidStatus(s string) bool {
	switch SubmissionStatus(s) {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusFlagged, StatusUnliquidated, StatusReturned:
		return true
	}
	return false
}

// Signatory is one of the officers signing off on the statement.
type Signatory struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// AttachedForm references a required liquidation form that was cited but not
// uploaded with the submission.
type AttachedForm struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SupportingDocument records an uploaded file backing the submission. The
// bytes live in the document store; only metadata is kept here.
type SupportingDocument struct {
	DocumentID string    `json:"documentID"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"-"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ReviewComment records one reviewer action on a submission.
type ReviewComment struct {
	CommentID  string           `json:"commentID"`
	ReviewerID string           `json:"reviewerID"`
	Action     SubmissionStatus `json:"action"`
	Comments   string           `json:"comments"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Submission is one cash flow statement moving through the liquidation
// workflow, from draft through review.
type Submission struct {
	SubmissionID   string                     `json:"submissionID"`
	OrganizationID string                     `json:"organizationID"`
	SubmitterID    string                     `json:"submitterID"`
	Status         SubmissionStatus           `json:"status"`
	Form           CashFlowForm               `json:"formData"`
	Signatories    []Signatory                `json:"signatories"`
	AttachedForms  []AttachedForm             `json:"attachedForms"`
	CompletedForms map[string]json.RawMessage `json:"completedForms"`
	Documents      []SupportingDocument       `json:"supportingDocuments"`
	ReviewComments []ReviewComment            `json:"reviewComments"`
	SubmittedAt    *time.Time                 `json:"submittedAt,omitempty"`
	AuditFields
}
