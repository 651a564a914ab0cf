package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Eursukkul/helper-marketplace/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator plugs go-playground/validator into echo's c.Validate.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{Error: "validation_failed", Message: err.Error()})
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "validation_failed",
		Message: strings.Join(msgs, "; "),
	})
}
