package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/logging"
	"github.com/mkrishnan-dev/quickbasket/internal/mykafka"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

type AdminHandler struct {
	Svc      *service.VendorService
	Producer *mykafka.Producer
}

func (h *AdminHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "vendor_events", fmt.Sprint(event["vendorID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AdminHandler) PendingVendors(c echo.Context) error {
	vendors, err := h.Svc.Pending(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendors)
}

func (h *AdminHandler) review(c echo.Context, approve bool) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor_review")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	vendor, err := h.Svc.Review(ctx, uint(id), approve)
	if err != nil {
		l.Warn("vendor_review_rejected", "vendor_id", id, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "vendor_reviewed",
		"vendorID": vendor.ID,
		"status":   vendor.Status,
	})

	l.Info("vendor_review_success", "vendor_id", vendor.ID, "status", vendor.Status)
	return c.JSON(http.StatusOK, vendor)
}

func (h *AdminHandler) Approve(c echo.Context) error { return h.review(c, true) }
func (h *AdminHandler) Reject(c echo.Context) error  { return h.review(c, false) }
