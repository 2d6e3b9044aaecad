package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	"github.com/darwincarillo2003/liquidation-backend/internal/models"
)

// ToModelSubmission converts a domain Submission into its row shape,
// marshalling the nested state into jsonb blobs.
func ToModelSubmission(d domain.Submission) (models.Submission, error) {
	formData, err := json.Marshal(d.Form)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to marshal form data: %w", err)
	}
	signatories, err := json.Marshal(d.Signatories)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to marshal signatories: %w", err)
	}
	attachedForms, err := json.Marshal(d.AttachedForms)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to marshal attached forms: %w", err)
	}
	completedForms, err := json.Marshal(d.CompletedForms)
	if err != nil {
		return models.Submission{}, fmt.Errorf("failed to marshal completed forms: %w", err)
	}

	return models.Submission{
		SubmissionID:   d.SubmissionID,
		OrganizationID: d.OrganizationID,
		SubmitterID:    d.SubmitterID,
		Status:         string(d.Status),
		FormData:       formData,
		Signatories:    signatories,
		AttachedForms:  attachedForms,
		CompletedForms: completedForms,
		SubmittedAt:    d.SubmittedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainSubmission converts a row back into the domain shape. Blob columns
// written by older schema versions unmarshal through the form's own
// compatibility logic, so legacy drafts load without a migration pass here.
func ToDomainSubmission(m models.Submission) (domain.Submission, error) {
	d := domain.Submission{
		SubmissionID:   m.SubmissionID,
		OrganizationID: m.OrganizationID,
		SubmitterID:    m.SubmitterID,
		Status:         domain.SubmissionStatus(m.Status),
		SubmittedAt:    m.SubmittedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}

	if len(m.FormData) > 0 {
		if err := json.Unmarshal(m.FormData, &d.Form); err != nil {
			return domain.Submission{}, fmt.Errorf("failed to unmarshal form data for submission %s: %w", m.SubmissionID, err)
		}
	}
	if len(m.Signatories) > 0 {
		if err := json.Unmarshal(m.Signatories, &d.Signatories); err != nil {
			return domain.Submission{}, fmt.Errorf("failed to unmarshal signatories for submission %s: %w", m.SubmissionID, err)
		}
	}
	if len(m.AttachedForms) > 0 {
		if err := json.Unmarshal(m.AttachedForms, &d.AttachedForms); err != nil {
			return domain.Submission{}, fmt.Errorf("failed to unmarshal attached forms for submission %s: %w", m.SubmissionID, err)
		}
	}
	if len(m.CompletedForms) > 0 {
		if err := json.Unmarshal(m.CompletedForms, &d.CompletedForms); err != nil {
			return domain.Submission{}, fmt.Errorf("failed to unmarshal completed forms for submission %s: %w", m.SubmissionID, err)
		}
	}

	return d, nil
}

// ToDomainSupportingDocument converts a document metadata row.
func ToDomainSupportingDocument(m models.SupportingDocument) domain.SupportingDocument {
	return domain.SupportingDocument{
		DocumentID: m.DocumentID,
		FileName:   m.FileName,
		MimeType:   m.MimeType,
		SizeBytes:  m.SizeBytes,
		StorageKey: m.StorageKey,
		UploadedAt: m.UploadedAt,
	}
}

// ToDomainReviewComment converts a review comment row.
func ToDomainReviewComment(m models.ReviewComment) domain.ReviewComment {
	return domain.ReviewComment{
		CommentID:  m.CommentID,
		ReviewerID: m.ReviewerID,
		Action:     domain.SubmissionStatus(m.Action),
		Comments:   m.Comments,
		CreatedAt:  m.CreatedAt,
	}
}
