package advisors

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/pkg/common"
	"github.com/investguard/investguard/pkg/middleware"
)

// AdvisorServiceInterface defines the service operations the handler depends on
type AdvisorServiceInterface interface {
	Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error)
	GetAdvisor(ctx context.Context, licenseNumber string) (*Advisor, error)
	ListAdvisors(ctx context.Context, limit, offset int) ([]*Advisor, int64, error)
	GetDirectoryStats(ctx context.Context) (*DirectoryStats, error)
}

// Handler handles advisor HTTP requests
type Handler struct {
	service AdvisorServiceInterface
}

// NewHandler creates a new advisors handler
func NewHandler(service AdvisorServiceInterface) *Handler {
	return &Handler{service: service}
}

// Verify verifies an advisor identity
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Verify(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "verification failed")
		return
	}

	common.SuccessResponse(c, result)
}

// GetAdvisor retrieves a directory entry by license number
func (h *Handler) GetAdvisor(c *gin.Context) {
	advisor, err := h.service.GetAdvisor(c.Request.Context(), c.Param("license"))
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "advisor not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get advisor")
		return
	}

	common.SuccessResponse(c, advisor)
}

// ListAdvisors retrieves directory entries
func (h *Handler) ListAdvisors(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	advisors, total, err := h.service.ListAdvisors(c.Request.Context(), limit, offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list advisors")
		return
	}

	common.SuccessResponseWithMeta(c, advisors, &common.Meta{Limit: limit, Offset: offset, Total: total})
}

// GetStats returns directory totals by status
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetDirectoryStats(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get advisor stats")
		return
	}

	common.SuccessResponse(c, stats)
}

// RegisterRoutes registers advisor routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	api := r.Group("/api/v1/advisors")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		api.POST("/verify", h.Verify)
		api.GET("", h.ListAdvisors)
		api.GET("/stats", h.GetStats)
		api.GET("/:license", h.GetAdvisor)
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if value, err := strconv.Atoi(c.Query(key)); err == nil && value >= 0 {
		return value
	}
	return fallback
}
