package handler

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/helper-marketplace/internal/dto"
	"github.com/Eursukkul/helper-marketplace/internal/middleware"
	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/service"
	"github.com/labstack/echo/v4"
)

var kindStatus = map[service.Kind]int{
	service.KindNotFound:           http.StatusNotFound,
	service.KindForbidden:          http.StatusForbidden,
	service.KindInvalidState:       http.StatusConflict,
	service.KindValidation:         http.StatusBadRequest,
	service.KindScheduleConflict:   http.StatusConflict,
	service.KindPreconditionFailed: http.StatusPreconditionFailed,
}

// httpError maps a service error onto its HTTP status and wire code. Storage
// failures keep their cause out of the response.
func httpError(err error) error {
	var se *service.Error
	if !errors.As(err, &se) || se.Kind == service.KindStorage {
		return echo.NewHTTPError(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "server_error",
			Message: "internal server error",
		}).SetInternal(err)
	}
	status, ok := kindStatus[se.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return echo.NewHTTPError(status, dto.ErrorResponse{Error: se.Code, Message: se.Message})
}

func actorOf(c echo.Context) (models.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "missing_token",
			Message: "authentication required",
		})
	}
	return actor, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "invalid request body"})
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}
