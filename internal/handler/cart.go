package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// CartHandler handles order creation.
type CartHandler struct {
	*BaseHandler
	cartUseCase domain.CartUseCase
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartUseCase domain.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: NewBaseHandler(logger),
		cartUseCase: cartUseCase,
	}
}

// PostCart opens a pending cart for the authenticated user.
func (h *CartHandler) PostCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	var req struct {
		Items []struct {
			ItemID   string `json:"itemId"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	lines := make([]*domain.CartItem, len(req.Items))
	for i, line := range req.Items {
		lines[i] = &domain.CartItem{ItemID: line.ItemID, Quantity: line.Quantity}
	}

	logEntry := h.logRequest(c, "create_cart").WithFields(logrus.Fields{
		"user_id": user.ID,
		"lines":   len(lines),
	})
	logEntry.Info("Creating cart")

	cart, err := h.cartUseCase.CreateCart(c.Request().Context(), user.ID, lines)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to create cart")
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toAPICart(cart))
}

// GetCarts returns the authenticated user's carts.
func (h *CartHandler) GetCarts(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	carts, err := h.cartUseCase.GetCarts(c.Request().Context(), user.ID)
	if err != nil {
		h.logRequest(c, "list_carts").WithError(err).Error("Failed to list carts")
		return respondError(c, err)
	}

	result := make([]apiCart, len(carts))
	for i, cart := range carts {
		result[i] = toAPICart(cart)
	}
	return c.JSON(http.StatusOK, result)
}
