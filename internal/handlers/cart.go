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

type CartHandler struct {
	Store    *storage.FileStore
	Producer *events.Producer
}

// cartLine is a cart item joined with current product data. Product is null
// when the product was deleted after it entered the cart.
type cartLine struct {
	models.CartItem
	Product *models.Product `json:"product"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID := authmw.UserID(c)

	items := h.Store.Cart(userID)
	lines := make([]cartLine, 0, len(items))
	for _, item := range items {
		line := cartLine{CartItem: item}
		product, err := h.Store.GetProduct(item.ProductID)
		switch {
		case err == nil:
			line.Product = &product
		case errors.Is(err, storage.ErrNotFound):
			// keep the line, product stays null
		default:
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		lines = append(lines, line)
	}

	return c.JSON(http.StatusOK, lines)
}

type addCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID := authmw.UserID(c)

	var req addCartRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.Store.AddToCart(userID, models.CartItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})

	publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  req.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Item added to cart"})
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	userID := authmw.UserID(c)
	productID := c.Param("productId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	h.Store.UpdateCartItem(userID, productID, req.Quantity)

	publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
		"type":      "cart_item_updated",
		"userID":    userID,
		"productID": productID,
		"quantity":  req.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Cart updated"})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID := authmw.UserID(c)
	productID := c.Param("productId")

	h.Store.RemoveFromCart(userID, productID)

	publish(c, h.Producer, events.TopicCartEvents, userID, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from cart"})
}
