package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/investguard/investguard/internal/engine"
	"github.com/investguard/investguard/pkg/common"
	"github.com/investguard/investguard/pkg/middleware"
)

// AuthServiceInterface defines the service operations the handler depends on
type AuthServiceInterface interface {
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*User, error)
}

// Handler handles auth HTTP requests
type Handler struct {
	service AuthServiceInterface
}

// NewHandler creates a new auth handler
func NewHandler(service AuthServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register creates an account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			common.AppErrorResponse(c, common.NewConflictError(err.Error()))
		case errors.Is(err, engine.ErrInvalidInput):
			common.AppErrorResponse(c, common.NewBadRequestError(err.Error()))
		default:
			common.AppErrorResponse(c, common.NewInternalError("failed to register", err))
		}
		return
	}

	common.CreatedResponse(c, user)
}

// Login verifies credentials and returns a token
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			common.AppErrorResponse(c, common.NewUnauthorizedError(err.Error()))
			return
		}
		common.AppErrorResponse(c, common.NewInternalError("failed to log in", err))
		return
	}

	common.SuccessResponse(c, resp)
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "invalid user ID")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get profile")
		return
	}

	common.SuccessResponse(c, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "invalid user ID")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	common.SuccessResponse(c, user)
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	public := r.Group("/api/v1/auth")
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
	}

	protected := r.Group("/api/v1/auth")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
	}
}
