package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

// httpError maps service sentinel errors onto HTTP statuses. Storage
// failures are never echoed back to the client.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
