package reports

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/pkg/common"
	"github.com/investguard/investguard/pkg/middleware"
)

// ReportServiceInterface defines the service operations the handler depends on
type ReportServiceInterface interface {
	Submit(ctx context.Context, req *SubmitReportRequest) (*Report, error)
	GetReport(ctx context.Context, reportID uuid.UUID) (*Report, error)
	ListRecentReports(ctx context.Context, limit, offset int) ([]*Report, int64, error)
	UpdateStatus(ctx context.Context, reportID uuid.UUID, req *UpdateStatusRequest) (*Report, error)
}

// Handler handles report HTTP requests
type Handler struct {
	service ReportServiceInterface
}

// NewHandler creates a new reports handler
func NewHandler(service ReportServiceInterface) *Handler {
	return &Handler{service: service}
}

// Submit accepts a community fraud report
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitReportRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	report, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to submit report")
		return
	}

	common.CreatedResponse(c, report)
}

// GetReport retrieves a single report
func (h *Handler) GetReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid report ID")
		return
	}

	report, err := h.service.GetReport(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "report not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get report")
		return
	}

	common.SuccessResponse(c, report)
}

// ListReports retrieves recent reports
func (h *Handler) ListReports(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	reports, total, err := h.service.ListRecentReports(c.Request.Context(), limit, offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list reports")
		return
	}

	common.SuccessResponseWithMeta(c, reports, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// UpdateStatus transitions a report's triage status
func (h *Handler) UpdateStatus(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid report ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.UpdateStatus(c.Request.Context(), reportID, &req)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "report not found")
		case errors.Is(err, engine.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to update report")
		}
		return
	}

	common.SuccessResponse(c, report)
}

// RegisterRoutes registers report routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	api := r.Group("/api/v1/reports")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		api.POST("", h.Submit)
		api.GET("", h.ListReports)
		api.GET("/:id", h.GetReport)
		api.PATCH("/:id/status", h.UpdateStatus)
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if value, err := strconv.Atoi(c.Query(key)); err == nil && value >= 0 {
		return value
	}
	return fallback
}
