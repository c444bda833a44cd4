package product

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
	r.GET("/products", h.list)
	r.GET("/products/:id", middleware.OptionalAuth(), h.retrieve)
	r.GET("/products/:id/images", h.listImages)
	r.GET("/product-images/:id", h.retrieveImage)

	staff := r.Group("/products", middleware.RequireAuth(), middleware.RequireStaff())
	staff.POST("", h.create)
	staff.PUT("/:id", h.update)
	staff.PATCH("/:id", h.update)
	staff.DELETE("/:id", h.delete)
	staff.POST("/:id/images", h.createImage)

	images := r.Group("/product-images", middleware.RequireAuth(), middleware.RequireStaff())
	images.PUT("/:id", h.updateImage)
	images.PATCH("/:id", h.updateImage)
	images.DELETE("/:id", h.deleteImage)
}

func (h *handler) list(c *gin.Context) {
	items, err := h.svc.SearchProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// retrieve serves labels to the public and write-oriented ids to staff.
func (h *handler) retrieve(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	detail, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		return
	}

	if middleware.IsStaff(c) {
		c.JSON(http.StatusOK, detail.Staff())
		return
	}
	c.JSON(http.StatusOK, detail.Public())
}

func (h *handler) create(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.AddProduct(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *handler) update(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		h.writeError(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *handler) delete(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrProductInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) listImages(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	images, err := h.svc.GetImages(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}

	c.JSON(http.StatusOK, images)
}

func (h *handler) retrieveImage(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	img, err := h.svc.GetImage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get image"})
		return
	}

	c.JSON(http.StatusOK, img)
}

func (h *handler) createImage(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var input ImageCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err := h.svc.AddImage(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add image"})
		return
	}

	c.JSON(http.StatusCreated, img)
}

func (h *handler) updateImage(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	var input ImageUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err := h.svc.UpdateImage(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update image"})
		return
	}

	c.JSON(http.StatusOK, img)
}

func (h *handler) deleteImage(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	if err := h.svc.DeleteImage(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrPriceInvalid),
		errors.Is(err, ErrInventoryInvalid),
		errors.Is(err, ErrSKUExists),
		errors.Is(err, ErrBadReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
