package network

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/investguard/investguard/pkg/common"
	"github.com/investguard/investguard/pkg/middleware"
)

// NetworkServiceInterface defines the service operations the handler depends on
type NetworkServiceInterface interface {
	RecordConnection(ctx context.Context, req *CreateConnectionRequest) (*ConnectionRecord, error)
	ListConnections(ctx context.Context) ([]*ConnectionRecord, error)
	Analyze(ctx context.Context, req *AnalyzeRequest) (*Visualization, error)
}

// Handler handles network HTTP requests
type Handler struct {
	service NetworkServiceInterface
}

// NewHandler creates a new network handler
func NewHandler(service NetworkServiceInterface) *Handler {
	return &Handler{service: service}
}

// RecordConnection stores an observed connection
func (h *Handler) RecordConnection(c *gin.Context) {
	var req CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.RecordConnection(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to record connection")
		return
	}

	common.CreatedResponse(c, record)
}

// ListConnections retrieves stored connections
func (h *Handler) ListConnections(c *gin.Context) {
	records, err := h.service.ListConnections(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list connections")
		return
	}

	common.SuccessResponse(c, records)
}

// Analyze runs network analysis and returns the visualization payload
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "network analysis failed")
		return
	}

	common.SuccessResponse(c, result)
}

// RegisterRoutes registers network routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	api := r.Group("/api/v1/network")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		api.POST("/connections", h.RecordConnection)
		api.GET("/connections", h.ListConnections)
		api.POST("/analyze", h.Analyze)
	}
}
