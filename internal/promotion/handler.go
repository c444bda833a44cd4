package promotion

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
	r.GET("/promotions", h.list)
	r.GET("/promotions/:id", h.retrieve)

	staff := r.Group("/promotions", middleware.RequireAuth(), middleware.RequireStaff())
	staff.POST("", h.create)
	staff.PUT("/:id", h.update)
	staff.PATCH("/:id", h.update)
	staff.DELETE("/:id", h.delete)
}

func (h *handler) list(c *gin.Context) {
	promotions, err := h.svc.GetPromotions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list promotions"})
		return
	}
	c.JSON(http.StatusOK, promotions)
}

func (h *handler) retrieve(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promotion id"})
		return
	}

	p, err := h.svc.GetPromotion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get promotion"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *handler) create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.AddPromotion(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrDiscountRange), errors.Is(err, ErrDateOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create promotion"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *handler) update(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promotion id"})
		return
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.UpdatePromotion(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrPromotionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrDiscountRange), errors.Is(err, ErrDateOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update promotion"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *handler) delete(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promotion id"})
		return
	}

	if err := h.svc.DeletePromotion(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete promotion"})
		return
	}

	c.Status(http.StatusNoContent)
}
