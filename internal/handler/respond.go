package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sshperkin/travel-agency/internal/service"
)

// respondError maps a service error to an HTTP response. Storage errors are
// logged in full but surfaced without internal detail.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	}

	var referentialErr *service.ReferentialError
	if errors.As(err, &referentialErr) {
		return c.JSON(http.StatusConflict, echo.Map{"error": referentialErr.Message})
	}

	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	if errors.Is(err, service.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	log.Error("Request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// idParam parses the :id path parameter
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, service.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}
