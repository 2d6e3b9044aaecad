package dto

import (
	"encoding/json"
	"time"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	"github.com/darwincarillo2003/liquidation-backend/internal/utils/accounting"
)

// SaveCashFlowRequest is the outer payload for creating or updating a draft.
// It is accepted either as a JSON body or as multipart form fields; in both
// cases the nested statement state travels as JSON-encoded strings that the
// server re-parses itself (the outer request is typed, the inner blobs are
// opaque to transport).
type SaveCashFlowRequest struct {
	SubmissionID      string `json:"submission_id,omitempty" form:"submission_id"`
	OrganizationName  string `json:"organization_name" form:"organization_name"`
	AcademicYear      string `json:"academic_year" form:"academic_year" binding:"omitempty,academicyear"`
	Month             string `json:"month" form:"month"`
	CashInflows       string `json:"cash_inflows" form:"cash_inflows"`
	CashOutflows      string `json:"cash_outflows" form:"cash_outflows"`
	EndingCashBalance string `json:"ending_cash_balance" form:"ending_cash_balance"`
	Notes             string `json:"notes" form:"notes"`
	Signatories       string `json:"signatories" form:"signatories"`
	AttachedForms     string `json:"attached_forms" form:"attached_forms"`
	CompletedForms    string `json:"completed_forms" form:"completed_forms"`
}

// ParsedSubmissionInput is the decoded form state of a save request.
type ParsedSubmissionInput struct {
	SubmissionID   string
	Form           domain.CashFlowForm
	Signatories    []domain.Signatory
	AttachedForms  []domain.AttachedForm
	CompletedForms map[string]json.RawMessage
}

// Parse decodes the inner JSON blobs. Blobs that are not valid JSON are
// reported per-field; the header fields themselves are validated later by
// the domain form.
func (r SaveCashFlowRequest) Parse() (ParsedSubmissionInput, map[string][]string) {
	fieldErrs := make(map[string][]string)

	input := ParsedSubmissionInput{
		SubmissionID: r.SubmissionID,
		Form: domain.CashFlowForm{
			OrganizationName: r.OrganizationName,
			AcademicYear:     r.AcademicYear,
			Month:            r.Month,
		},
	}

	unmarshalBlob(r.CashInflows, "cash_inflows", &input.Form.CashInflows, fieldErrs)
	unmarshalBlob(r.CashOutflows, "cash_outflows", &input.Form.CashOutflows, fieldErrs)
	unmarshalBlob(r.EndingCashBalance, "ending_cash_balance", &input.Form.EndingCashBalance, fieldErrs)
	unmarshalBlob(r.Notes, "notes", &input.Form.Notes, fieldErrs)
	unmarshalBlob(r.Signatories, "signatories", &input.Signatories, fieldErrs)
	unmarshalBlob(r.AttachedForms, "attached_forms", &input.AttachedForms, fieldErrs)
	unmarshalBlob(r.CompletedForms, "completed_forms", &input.CompletedForms, fieldErrs)

	if len(fieldErrs) == 0 {
		fieldErrs = nil
	}
	return input, fieldErrs
}

func unmarshalBlob(blob, field string, dst any, fieldErrs map[string][]string) {
	if blob == "" {
		return
	}
	if err := json.Unmarshal([]byte(blob), dst); err != nil {
		fieldErrs[field] = append(fieldErrs[field], "must be a valid JSON document")
	}
}

// ReviewActionRequest is the body of the reviewer transition endpoints.
type ReviewActionRequest struct {
	Comments string `json:"comments"`
}

// ListReviewParams are the query parameters of the review queue listing.
type ListReviewParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"next_token"`
	Status    string  `form:"status"`
}

// UserSummary identifies the submitter on review responses.
type UserSummary struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// DocumentResponse is the metadata of one supporting document.
type DocumentResponse struct {
	DocumentID string    `json:"document_id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ReviewCommentResponse is one reviewer action on a submission.
type ReviewCommentResponse struct {
	CommentID  string    `json:"comment_id"`
	ReviewerID string    `json:"reviewer_id"`
	Action     string    `json:"action"`
	Comments   string    `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmissionResponse is the wire shape of one submission. Totals are always
// recomputed from the line items; they are numbers, not display strings.
type SubmissionResponse struct {
	SubmissionID        string                  `json:"submission_id"`
	OrganizationID      string                  `json:"organization_id,omitempty"`
	OrganizationName    string                  `json:"organization_name"`
	AcademicYear        string                  `json:"academic_year"`
	Month               string                  `json:"month"`
	Status              string                  `json:"status"`
	FormData            domain.CashFlowForm     `json:"form_data"`
	Totals              accounting.Totals       `json:"totals"`
	Submitter           *UserSummary            `json:"submitter,omitempty"`
	Signatories         []domain.Signatory      `json:"signatories,omitempty"`
	AttachedForms       []domain.AttachedForm   `json:"attached_forms,omitempty"`
	SupportingDocuments []DocumentResponse      `json:"supporting_documents,omitempty"`
	ReviewComments      []ReviewCommentResponse `json:"review_comments,omitempty"`
	SubmittedAt         *time.Time              `json:"submitted_at,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
	LastUpdatedAt       time.Time               `json:"last_updated_at"`
}

// ListReviewResponse is a page of the review queue.
type ListReviewResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	NextToken   *string              `json:"next_token,omitempty"`
}

// SuccessResponse is the success envelope of the cashflow endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// SubmissionEnvelope wraps a single submission for the success envelope.
type SubmissionEnvelope struct {
	Submission SubmissionResponse `json:"submission"`
}

// ToSubmissionResponse converts a domain submission, deriving totals.
func ToSubmissionResponse(s *domain.Submission, submitter *domain.User) SubmissionResponse {
	resp := SubmissionResponse{
		SubmissionID:     s.SubmissionID,
		OrganizationID:   s.OrganizationID,
		OrganizationName: s.Form.OrganizationName,
		AcademicYear:     s.Form.AcademicYear,
		Month:            s.Form.Month,
		Status:           string(s.Status),
		FormData:         s.Form,
		Totals:           accounting.CalculateTotals(s.Form),
		Signatories:      s.Signatories,
		AttachedForms:    s.AttachedForms,
		SubmittedAt:      s.SubmittedAt,
		CreatedAt:        s.CreatedAt,
		LastUpdatedAt:    s.LastUpdatedAt,
	}

	if submitter != nil {
		resp.Submitter = &UserSummary{
			UserID:   submitter.UserID,
			Username: submitter.Username,
			Name:     submitter.Name,
		}
	}

	for _, doc := range s.Documents {
		resp.SupportingDocuments = append(resp.SupportingDocuments, DocumentResponse{
			DocumentID: doc.DocumentID,
			FileName:   doc.FileName,
			MimeType:   doc.MimeType,
			SizeBytes:  doc.SizeBytes,
			UploadedAt: doc.UploadedAt,
		})
	}
	for _, rc := range s.ReviewComments {
		resp.ReviewComments = append(resp.ReviewComments, ReviewCommentResponse{
			CommentID:  rc.CommentID,
			ReviewerID: rc.ReviewerID,
			Action:     string(rc.Action),
			Comments:   rc.Comments,
			CreatedAt:  rc.CreatedAt,
		})
	}

	return resp
}
