package collection

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
	r.GET("/collections", middleware.OptionalAuth(), h.list)
	r.GET("/collections/:id", h.retrieve)

	staff := r.Group("/collections", middleware.RequireAuth(), middleware.RequireStaff())
	staff.POST("", h.create)
	staff.PUT("/:id", h.update)
	staff.PATCH("/:id", h.update)
	staff.DELETE("/:id", h.delete)
}

func (h *handler) list(c *gin.Context) {
	collections, err := h.svc.GetCollections(c.Request.Context(), middleware.IsStaff(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list collections"})
		return
	}
	c.JSON(http.StatusOK, collections)
}

func (h *handler) retrieve(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}

	col, err := h.svc.GetCollection(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCollectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get collection"})
		return
	}

	c.JSON(http.StatusOK, col)
}

func (h *handler) create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	col, err := h.svc.AddCollection(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create collection"})
		return
	}

	c.JSON(http.StatusCreated, col)
}

func (h *handler) update(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	col, err := h.svc.UpdateCollection(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrCollectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update collection"})
		return
	}

	c.JSON(http.StatusOK, col)
}

func (h *handler) delete(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}

	if err := h.svc.DeleteCollection(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCollectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete collection"})
		return
	}

	c.Status(http.StatusNoContent)
}
