package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/service"
)

type ActivityHandler struct {
	Activity *service.ActivityService
}

func (h *ActivityHandler) UserActivity(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username query parameter is required")
	}

	summary, err := h.Activity.UserActivity(requestContext(c), username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
