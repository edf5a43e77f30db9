package alerts

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

// AlertServiceInterface defines the service operations the handler depends on
type AlertServiceInterface interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error)
	GetAlert(ctx context.Context, alertID uuid.UUID) (*Alert, error)
	ListRecentAlerts(ctx context.Context, limit, offset int) ([]*Alert, int64, error)
	ResolveAlert(ctx context.Context, alertID uuid.UUID, falsePositive bool) error
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetRiskDistribution(ctx context.Context) (*RiskDistribution, error)
}

// Handler handles alert and analysis HTTP requests
type Handler struct {
	service AlertServiceInterface
}

// NewHandler creates a new alerts handler
func NewHandler(service AlertServiceInterface) *Handler {
	return &Handler{service: service}
}

// Analyze runs content analysis
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "analysis failed")
		return
	}

	common.SuccessResponse(c, result)
}

// GetAlert retrieves a single alert
func (h *Handler) GetAlert(c *gin.Context) {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid alert ID")
		return
	}

	alert, err := h.service.GetAlert(c.Request.Context(), alertID)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "alert not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get alert")
		return
	}

	common.SuccessResponse(c, alert)
}

// ListAlerts retrieves recent alerts
func (h *Handler) ListAlerts(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	alerts, total, err := h.service.ListRecentAlerts(c.Request.Context(), limit, offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list alerts")
		return
	}

	common.SuccessResponseWithMeta(c, alerts, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// ResolveAlert closes an alert
func (h *Handler) ResolveAlert(c *gin.Context) {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid alert ID")
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ResolveAlert(c.Request.Context(), alertID, req.FalsePositive); err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "alert not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve alert")
		return
	}

	common.SuccessResponse(c, gin.H{"message": "alert resolved"})
}

// GetStats returns dashboard statistics
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get stats")
		return
	}

	common.SuccessResponse(c, stats)
}

// GetRiskDistribution returns alert counts per severity tier
func (h *Handler) GetRiskDistribution(c *gin.Context) {
	dist, err := h.service.GetRiskDistribution(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get risk distribution")
		return
	}

	common.SuccessResponse(c, dist)
}

// RegisterRoutes registers alert routes. The public feed and stats endpoints
// stay outside the authenticated group.
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	public := r.Group("/api/v1")
	{
		public.GET("/alerts/feed", h.ListAlerts)
		public.GET("/stats", h.GetStats)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		api.POST("/analysis", h.Analyze)
		api.GET("/alerts", h.ListAlerts)
		api.GET("/alerts/:id", h.GetAlert)
		api.PATCH("/alerts/:id/resolve", h.ResolveAlert)
		api.GET("/stats/risk-distribution", h.GetRiskDistribution)
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if value, err := strconv.Atoi(c.Query(key)); err == nil && value >= 0 {
		return value
	}
	return fallback
}
