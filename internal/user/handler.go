package user

import (
	"errors"
	"net/http"

	"blaemart-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type handler struct {
	svc Service
}

func NewHandler(svc Service) *handler {
	return &handler{svc: svc}
}

func (h *handler) Register(r *gin.Engine) {
	r.POST("/auth/users/", h.register)
	r.GET("/auth/users/me/", middleware.RequireAuth(), h.me)
	r.POST("/auth/jwt/create/", h.createToken)
	r.POST("/auth/jwt/refresh/", h.refreshToken)
}

func (h *handler) register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists), errors.Is(err, ErrConflictingRoles):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, u.Response())
}

func (h *handler) me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	u, err := h.svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrUserNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, u.Response())
}

type tokenCreateInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *handler) createToken(c *gin.Context) {
	var input tokenCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, _, err := h.svc.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		// Same response for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pair)
}

type tokenRefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (h *handler) refreshToken(c *gin.Context) {
	var input tokenRefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, err := h.svc.Refresh(c.Request.Context(), input.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}
