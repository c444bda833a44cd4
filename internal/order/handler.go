package order

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
	orders := r.Group("/orders", middleware.RequireAuth())
	orders.GET("", h.list)
	orders.GET("/:id", h.retrieve)
	orders.POST("", h.place)

	staff := r.Group("/orders", middleware.RequireAuth(), middleware.RequireStaff())
	staff.PUT("/:id/status", h.updateStatus)
	staff.PUT("/:id/payment", h.updatePayment)

	items := r.Group("/order-items", middleware.RequireAuth())
	items.GET("", h.listItems)
	items.GET("/:id", h.retrieveItem)
}

func (h *handler) list(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.svc.GetOrders(c.Request.Context(), userID, middleware.IsStaff(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// retrieve serves foreign orders as 404 so ids cannot be probed.
func (h *handler) retrieve(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get order"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if !middleware.IsStaff(c) && o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrOrderNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *handler) place(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input PlaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.svc.PlaceOrder(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoItems), errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *handler) updateStatus(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.svc.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrBadStatus), errors.Is(err, ErrBadTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *handler) updatePayment(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	o, err := h.svc.UpdatePayment(c.Request.Context(), id, input.PaymentStatus)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *handler) listItems(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.svc.GetItems(c.Request.Context(), userID, middleware.IsStaff(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list order items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *handler) retrieveItem(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order item id"})
		return
	}

	it, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get order item"})
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if !middleware.IsStaff(c) && it.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrItemNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, it)
}
