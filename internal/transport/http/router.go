package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mbalagam/marketplace/internal/handlers"
)

type Deps struct {
	ItemHandler     *handlers.ItemHandler
	PurchaseHandler *handlers.PurchaseHandler
	AuthHandler     *handlers.AuthHandler
	ActivityHandler *handlers.ActivityHandler
	AdminHandler    *handlers.AdminHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/signup", d.AuthHandler.Signup)
	api.POST("/login", d.AuthHandler.Login)
	api.GET("/me", d.AuthHandler.Me)

	api.GET("/items", d.ItemHandler.ListItems)
	api.POST("/items", d.ItemHandler.CreateItem)

	api.POST("/purchase", d.PurchaseHandler.Purchase)
	api.GET("/purchases", d.PurchaseHandler.ListPurchases)

	api.GET("/user/activity", d.ActivityHandler.UserActivity)

	api.POST("/reset", d.AdminHandler.Reset)
}

// errorHandler renders every error as {"detail": ...}, the shape existing API
// clients already parse.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := "internal error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			detail = msg
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"detail": detail})
}
