package middleware

import (
	"net/http"
	"strings"

	"github.com/Eursukkul/helper-marketplace/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"error": code, "message": msg}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := dto.ErrorResponse{Error: "server_error", Message: "internal server error"}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case dto.ErrorResponse:
			body = m
		case string:
			body = dto.ErrorResponse{Error: statusCode(code), Message: m}
		default:
			body = dto.ErrorResponse{Error: statusCode(code), Message: http.StatusText(code)}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}

// statusCode turns "Not Found" into "not_found".
func statusCode(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}
