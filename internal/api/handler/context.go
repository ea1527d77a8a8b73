package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's id placed in the context by
// the Auth middleware.
func currentUserID(c echo.Context) (int64, error) {
	id, _ := c.Get("user_id").(int64)
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
