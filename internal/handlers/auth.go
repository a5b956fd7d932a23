package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/service"
	"github.com/mbalagam/marketplace/internal/transport"
)

type AuthHandler struct {
	Users *service.UserService
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Users.Signup(requestContext(c), req.Username, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile, accessToken, err := h.Users.Login(requestContext(c), req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Success:     true,
		Message:     "Login successful",
		User:        profile,
		AccessToken: accessToken,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username query parameter is required")
	}

	profile, err := h.Users.GetUser(requestContext(c), username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
