package handler

import (
	"github.com/labstack/echo/v4"
)

// fail writes the standard error envelope.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Success: false, Message: message})
}
