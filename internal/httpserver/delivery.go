package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

const pincodeCookie = "delivery_pincode"

type DeliveryHandler struct {
	Svc *service.DeliveryService
}

func (h *DeliveryHandler) CheckPincode(c echo.Context) error {
	result, err := h.Svc.Check(c.Request().Context(), c.QueryParam("pincode"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// SetPincode stores the checked pincode in the caller's session cookie for
// reuse at checkout. No database write happens here.
func (h *DeliveryHandler) SetPincode(c echo.Context) error {
	var req struct {
		Pincode string `json:"pincode" form:"pincode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Check(c.Request().Context(), req.Pincode)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     pincodeCookie,
		Value:    result.Pincode,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, result)
}
