package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/darwincarillo2003/liquidation-backend/internal/apperrors"
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	portssvc "github.com/darwincarillo2003/liquidation-backend/internal/core/ports/services"
	"github.com/darwincarillo2003/liquidation-backend/internal/dto"
	"github.com/darwincarillo2003/liquidation-backend/internal/middleware"
)

// organizationHandler handles HTTP requests for the organization registry.
type organizationHandler struct {
	orgService portssvc.OrganizationSvcFacade
}

// newOrganizationHandler creates a new organizationHandler.
func newOrganizationHandler(orgService portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{orgService: orgService}
}

// createOrganization godoc
// @Summary Register a student organization
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "New organization"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requester, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	org, err := h.orgService.CreateOrganization(c.Request.Context(), req, requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create organization", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create organization"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// getOrganization godoc
// @Summary Fetch one organization
// @Tags organizations
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ErrorResponse
// @Router /organizations/{organizationID} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	org, err := h.orgService.GetOrganizationByID(c.Request.Context(), c.Param("organizationID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch organization"})
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// listOrganizations godoc
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListOrganizationsResponse
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orgs, err := h.orgService.ListOrganizations(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list organizations"})
		return
	}
	c.JSON(http.StatusOK, dto.ListOrganizationsResponse{Organizations: dto.ToOrganizationResponses(orgs)})
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Tags organizations
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /organizations/{organizationID} [delete]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	requester, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.orgService.DeactivateOrganization(c.Request.Context(), c.Param("organizationID"), requester)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Organization not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate organization"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// registerOrganizationRoutes registers organization registry routes.
func registerOrganizationRoutes(group *gin.RouterGroup, orgService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(orgService)

	orgs := group.Group("/organizations")
	{
		orgs.GET("", h.listOrganizations)
		orgs.GET("/:organizationID", h.getOrganization)

		admin := orgs.Group("", middleware.RequireRoles(domain.RoleAdmin))
		{
			admin.POST("", h.createOrganization)
			admin.DELETE("/:organizationID", h.deactivateOrganization)
		}
	}
}
