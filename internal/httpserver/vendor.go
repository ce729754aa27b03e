package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/logging"
	"github.com/mkrishnan-dev/quickbasket/internal/mykafka"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

type VendorHandler struct {
	Svc      *service.VendorService
	Producer *mykafka.Producer
}

func (h *VendorHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "vendor_events", fmt.Sprint(event["vendorID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *VendorHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor_signup")

	var req service.VendorSignup
	if err := c.Bind(&req); err != nil {
		l.Warn("vendor_signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	vendor, err := h.Svc.Register(ctx, req)
	if err != nil {
		l.Warn("vendor_signup_rejected", "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "vendor_registered",
		"vendorID": vendor.ID,
		"shop":     vendor.ShopName,
		"status":   vendor.Status,
	})

	l.Info("vendor_signup_success", "vendor_id", vendor.ID)
	return c.JSON(http.StatusCreated, vendor)
}

// PendingApproval is the status notice for vendors that cannot reach the
// dashboard yet (or ever, when rejected).
func (h *VendorHandler) PendingApproval(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	vendor, err := h.Svc.Profile(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":   vendor.Status,
		"shop":     vendor.ShopName,
		"approved": vendor.IsApproved(),
	})
}

func (h *VendorHandler) GetProfile(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	vendor, err := h.Svc.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) UpdateProfile(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	var req service.VendorProfileUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	vendor, err := h.Svc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Dashboard(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	vendor, err := h.Svc.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	stats, err := h.Svc.Dashboard(c.Request().Context(), vendor.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"vendor": vendor,
		"stats":  stats,
	})
}
