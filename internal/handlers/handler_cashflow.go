package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/darwincarillo2003/liquidation-backend/internal/apperrors"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	portssvc "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/services"
	"github.com/darwincarillo2003/liquidation-backend/internal/dto"
	"github.com/darwincarillo2003/liquidation-backend/internal/middleware"
)

// cashflowHandler handles HTTP requests for cash flow statement submissions.
type cashflowHandler struct {
	cashflowService portssvc.CashflowSvcFacade
}

// newCashflowHandler creates a new cashflowHandler.
func newCashflowHandler(cashflowService portssvc.CashflowSvcFacade) *cashflowHandler {
	return &cashflowHandler{cashflowService: cashflowService}
}

// ValidationErrorResponse is the 422 body: per-field error message lists.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// saveDraft godoc
// @Summary Save a cash flow statement draft
// @Description Creates or updates the caller's draft. Accepts JSON, or multipart form data when supporting documents are uploaded; nested form state travels as JSON-encoded strings either way.
// @Tags cashflow
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body dto.SaveCashFlowRequest true "Draft contents"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cashflow [post]
func (h *cashflowHandler) saveDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requester, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SaveCashFlowRequest
	var fileHeaders []*multipart.FileHeader

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			h.respondBindError(c, err)
			return
		}
		form, err := c.MultipartForm()
		if err != nil {
			logger.Error("Failed to read multipart form", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form"})
			return
		}
		fileHeaders = form.File["supporting_documents[]"]
		if len(fileHeaders) == 0 {
			fileHeaders = form.File["supporting_documents"]
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondBindError(c, err)
			return
		}
	}

	input, fieldErrs := req.Parse()
	if fieldErrs != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: fieldErrs})
		return
	}

	files := make([]portssvc.UploadedFile, 0, len(fileHeaders))
	openedFiles := make([]multipart.File, 0, len(fileHeaders))
	defer func() {
		for _, f := range openedFiles {
			f.Close()
		}
	}()
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", slog.String("file", fh.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read uploaded file"})
			return
		}
		openedFiles = append(openedFiles, f)
		files = append(files, portssvc.UploadedFile{
			FileName: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Contents: f,
		})
	}

	submission, err := h.cashflowService.SaveDraft(c.Request.Context(), input, files, requester)
	if err != nil {
		h.respondServiceError(c, err, "Failed to save draft")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    dto.SubmissionEnvelope{Submission: dto.ToSubmissionResponse(submission, nil)},
	})
}

// submit godoc
// @Summary Submit a draft for COA review
// @Tags cashflow
// @Produce json
// @Param submissionID path string true "Submission ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /cashflow/{submissionID}/submit [post]
func (h *cashflowHandler) submit(c *gin.Context) {
	requester, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	submission, err := h.cashflowService.Submit(c.Request.Context(), c.Param("submissionID"), requester)
	if err != nil {
		h.respondServiceError(c, err, "Failed to submit")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    dto.SubmissionEnvelope{Submission: dto.ToSubmissionResponse(submission, nil)},
	})
}

// review handles the reviewer transition endpoints; decision is fixed per route.
func (h *cashflowHandler) review(decision domain.SubmissionStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.GetActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req dto.ReviewActionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				h.respondBindError(c, err)
				return
			}
		}

		submission, err := h.cashflowService.Review(c.Request.Context(), c.Param("submissionID"), decision, req.Comments, requester)
		if err != nil {
			h.respondServiceError(c, err, "Failed to record review decision")
			return
		}

		c.JSON(http.StatusOK, dto.SuccessResponse{
			Success: true,
			Data:    dto.SubmissionEnvelope{Submission: dto.ToSubmissionResponse(submission, nil)},
		})
	}
}

// listReviewQueue godoc
// @Summary List submissions for COA review
// @Tags cashflow
// @Produce json
// @Param limit query int false "Page size"
// @Param next_token query string false "Pagination cursor"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /cashflow/coa-review [get]
func (h *cashflowHandler) listReviewQueue(c *gin.Context) {
	requester, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListReviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.respondBindError(c, err)
		return
	}

	page, err := h.cashflowService.ListReviewQueue(c.Request.Context(), requester, params)
	if err != nil {
		h.respondServiceError(c, err, "Failed to list review queue")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Data: page})
}

// getSubmission godoc
// @Summary Fetch one submission
// @Tags cashflow
// @Produce json
// @Param submissionID path string true "Submission ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cashflow/{submissionID} [get]
func (h *cashflowHandler) getSubmission(c *gin.Context) {
	requester, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	submission, submitter, err := h.cashflowService.GetSubmissionByID(c.Request.Context(), c.Param("submissionID"), requester)
	if err != nil {
		h.respondServiceError(c, err, "Failed to fetch submission")
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    dto.SubmissionEnvelope{Submission: dto.ToSubmissionResponse(submission, submitter)},
	})
}

// respondBindError turns gin binding failures into responses: validator tag
// failures become the 422 per-field shape, everything else is a plain 400.
func (h *cashflowHandler) respondBindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fieldErrs := make(map[string][]string, len(vErrs))
		for _, fe := range vErrs {
			field := strings.ToLower(fe.Field())
			fieldErrs[field] = append(fieldErrs[field], bindErrorMessage(fe))
		}
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: fieldErrs})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
}

func bindErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "academicyear":
		return "must look like 2024-2025"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short"
	default:
		return "is invalid"
	}
}

// respondServiceError maps service errors to HTTP statuses.
func (h *cashflowHandler) respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var fieldErr *apperrors.FieldValidationError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: fieldErr.Fields})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Submission not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// RegisterCashflowRoutes registers the cash flow statement routes.
func RegisterCashflowRoutes(group *gin.RouterGroup, cashflowService portssvc.CashflowSvcFacade) {
	h := newCashflowHandler(cashflowService)

	cashflow := group.Group("/cashflow")
	{
		cashflow.POST("", h.saveDraft)
		cashflow.GET("/coa-review", h.listReviewQueue)
		cashflow.GET("/:submissionID", h.getSubmission)
		cashflow.POST("/:submissionID/submit", h.submit)

		review := cashflow.Group("", middleware.RequireRoles(domain.RoleCOA, domain.RoleAdmin))
		{
			review.POST("/:submissionID/approve", h.review(domain.StatusApproved))
			review.POST("/:submissionID/reject", h.review(domain.StatusFlagged))
			review.POST("/:submissionID/return", h.review(domain.StatusReturned))
			review.POST("/:submissionID/unliquidated", h.review(domain.StatusUnliquidated))
		}
	}
}
