package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/service"
)

// requestContext tags the request context with the caller's IP so activity
// entries logged by the services carry it.
func requestContext(c echo.Context) context.Context {
	return activity.WithClientIP(c.Request().Context(), c.RealIP())
}

// httpError maps service errors onto HTTP responses. Storage and unknown
// errors stay generic.
func httpError(err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, ve.Detail)
	}
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		return echo.NewHTTPError(http.StatusNotFound, nf.Detail)
	}
	var cf *service.ConflictError
	if errors.As(err, &cf) {
		return echo.NewHTTPError(http.StatusBadRequest, cf.Detail)
	}
	var ae *service.AuthError
	if errors.As(err, &ae) {
		return echo.NewHTTPError(http.StatusUnauthorized, ae.Detail)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
