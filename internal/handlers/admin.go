package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/service"
)

type AdminHandler struct {
	Admin *service.AdminService
}

func (h *AdminHandler) Reset(c echo.Context) error {
	if err := h.Admin.Reset(requestContext(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
