package cart

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
	carts := r.Group("/carts", middleware.RequireAuth())
	carts.GET("", h.list)
	carts.GET("/:id", h.retrieve)

	items := r.Group("/cart-items", middleware.RequireAuth())
	items.GET("", h.listItems)
	items.POST("", h.addItem)
	items.PUT("/:id", h.updateItem)
	items.PATCH("/:id", h.updateItem)
	items.DELETE("/:id", h.deleteItem)
}

// list gives staff every cart; everyone else gets a single-element list with
// their own (lazily created) cart.
func (h *handler) list(c *gin.Context) {
	if middleware.IsStaff(c) {
		carts, err := h.svc.GetCarts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list carts"})
			return
		}
		c.JSON(http.StatusOK, carts)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	own, err := h.svc.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, []Cart{own})
}

// retrieve scope-filters: a foreign cart is a 404, not a 403, so ids are not
// probeable.
func (h *handler) retrieve(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart id"})
		return
	}

	cart, err := h.svc.GetCartByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if !middleware.IsStaff(c) && cart.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrCartNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *handler) listItems(c *gin.Context) {
	ctx := c.Request.Context()

	if middleware.IsStaff(c) {
		items, err := h.svc.GetAllItems(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cart items"})
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.svc.GetOwnItems(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cart items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *handler) addItem(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := h.svc.AddItem(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrQuantityInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add cart item"})
		}
		return
	}

	c.JSON(http.StatusCreated, it)
}

// resolveItem loads the item and enforces ownership, serving foreign items
// as 404.
func (h *handler) resolveItem(c *gin.Context) (CartItem, bool) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return CartItem{}, false
	}

	it, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return CartItem{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart item"})
		return CartItem{}, false
	}

	userID, _ := middleware.CurrentUserID(c)
	if !middleware.IsStaff(c) && it.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrItemNotFound.Error()})
		return CartItem{}, false
	}

	return it, true
}

func (h *handler) updateItem(c *gin.Context) {
	it, ok := h.resolveItem(c)
	if !ok {
		return
	}

	var input UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, removed, err := h.svc.UpdateQuantity(c.Request.Context(), it.ID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart item"})
		return
	}
	if removed {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *handler) deleteItem(c *gin.Context) {
	it, ok := h.resolveItem(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveItem(c.Request.Context(), it.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cart item"})
		return
	}

	c.Status(http.StatusNoContent)
}
