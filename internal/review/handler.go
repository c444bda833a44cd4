package review

import (
	"errors"
	"net/http"

	"blaemart-be/internal/middleware"
	"blaemart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type handler struct {
	svc Service
}

func NewHandler(svc Service) *handler {
	return &handler{svc: svc}
}

func (h *handler) Register(r *gin.Engine) {
	reviews := r.Group("/product-reviews", middleware.RequireAuth())
	reviews.GET("", h.list)
	reviews.GET("/:id", h.retrieve)
	reviews.POST("", h.create)
	reviews.PUT("/:id", h.update)
	reviews.PATCH("/:id", h.update)
	reviews.DELETE("/:id", h.delete)
}

func (h *handler) list(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var productID *uint
	if raw := c.Query("product_id"); raw != "" {
		id, err := utils.ToUint(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id filter"})
			return
		}
		productID = &id
	}

	reviews, err := h.svc.GetReviews(c.Request.Context(), userID, middleware.IsStaff(c), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// resolve loads the review and enforces author-or-staff, serving foreign
// reviews as 404.
func (h *handler) resolve(c *gin.Context) (Review, bool) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return Review{}, false
	}

	rv, err := h.svc.GetReview(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return Review{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get review"})
		return Review{}, false
	}

	userID, _ := middleware.CurrentUserID(c)
	if !middleware.IsStaff(c) && rv.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrReviewNotFound.Error()})
		return Review{}, false
	}

	return rv, true
}

func (h *handler) retrieve(c *gin.Context) {
	rv, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *handler) create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rv, err := h.svc.AddReview(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrRatingRange), errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, rv)
}

func (h *handler) update(c *gin.Context) {
	rv, ok := h.resolve(c)
	if !ok {
		return
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.UpdateReview(c.Request.Context(), rv.ID, input, middleware.IsStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrRatingRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *handler) delete(c *gin.Context) {
	rv, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteReview(c.Request.Context(), rv.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		return
	}

	c.Status(http.StatusNoContent)
}
