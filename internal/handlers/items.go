package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/service"
	"github.com/mbalagam/marketplace/internal/transport"
)

type ItemHandler struct {
	Catalog *service.CatalogService
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	items, err := h.Catalog.ListItems(requestContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username query parameter is required")
	}

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Catalog.CreateItem(requestContext(c), username, req.Name, req.Quantity, req.Price, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}
