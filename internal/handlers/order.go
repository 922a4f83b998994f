package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/storefront/internal/events"
	authmw "github.com/avolkov/storefront/internal/middleware/auth"
	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/storage"
)

type OrderHandler struct {
	Store    *storage.FileStore
	Producer *events.Producer
}

type checkoutItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"min=0"`
}

// paymentDetails is accepted into the request shape but never charged or
// stored; there is no payment gateway behind this API.
type paymentDetails struct {
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

type checkoutRequest struct {
	Items           []checkoutItem  `json:"items" validate:"required,min=1,dive"`
	Total           float64         `json:"total" validate:"min=0"`
	ShippingAddress models.Address  `json:"shippingAddress" validate:"required"`
	Payment         *paymentDetails `json:"payment,omitempty"`
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	userID := authmw.UserID(c)

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if len(h.Store.Cart(userID)) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}

	order, err := h.Store.CreateOrder(models.Order{
		UserID:          userID,
		Items:           items,
		Total:           req.Total,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.Store.ClearCart(userID)

	publish(c, h.Producer, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  userID,
		"total":   order.Total,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.Store.OrdersByUser(authmw.UserID(c))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder is scoped to the session user: another user's order id answers
// 404, indistinguishable from a missing order.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.Store.GetOrder(c.Param("id"))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	if err != nil || order.UserID != authmw.UserID(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	return c.JSON(http.StatusOK, order)
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !req.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order status")
	}

	order, err := h.Store.UpdateOrderStatus(c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, order)
}
