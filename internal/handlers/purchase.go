package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/service"
	"github.com/mbalagam/marketplace/internal/transport"
)

type PurchaseHandler struct {
	Purchases *service.PurchaseService
}

func (h *PurchaseHandler) Purchase(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username query parameter is required")
	}

	var req transport.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	purchase, err := h.Purchases.Purchase(requestContext(c), username, req.ItemID, req.Quantity, req.Buyer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) ListPurchases(c echo.Context) error {
	purchases, err := h.Purchases.ListPurchases(requestContext(c), c.QueryParam("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, purchases)
}
