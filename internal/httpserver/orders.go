package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/logging"
	"github.com/mkrishnan-dev/quickbasket/internal/metrics"
	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/mykafka"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

type VendorOrderHandler struct {
	Svc      *service.FulfillmentService
	Vendors  *service.VendorService
	Producer *mykafka.Producer
	Metrics  *metrics.Metrics
}

// publish sends the customer-facing status notification. Delivery of the
// notification itself is someone else's job; failure only gets logged.
func (h *VendorOrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "notification_events", fmt.Sprint(event["orderItemID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *VendorOrderHandler) List(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	filter := service.ItemFilter{
		Status:   c.QueryParam("status"),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
	}
	items, err := h.Svc.List(c.Request().Context(), vendor.ID, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *VendorOrderHandler) Detail(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := h.Svc.Get(c.Request().Context(), vendor.ID, uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *VendorOrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_order_status")

	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(ctx, userID)
	if err != nil {
		return httpError(err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateStatus(ctx, vendor.ID, uint(id), models.OrderItemStatus(req.Status))
	if err != nil {
		l.Warn("status_update_rejected", "order_item_id", id, "error", err)
		return httpError(err)
	}

	if h.Metrics != nil {
		h.Metrics.StatusTransitions.WithLabelValues(string(item.Status)).Inc()
	}
	h.publish(c, map[string]any{
		"type":        "order_status_changed",
		"orderItemID": item.ID,
		"orderID":     item.OrderID,
		"status":      item.Status,
	})

	l.Info("status_update_success", "order_item_id", item.ID, "status", item.Status)
	return c.JSON(http.StatusOK, item)
}
