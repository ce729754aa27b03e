package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/logging"
	"github.com/mkrishnan-dev/quickbasket/internal/metrics"
	"github.com/mkrishnan-dev/quickbasket/internal/mykafka"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

type CheckoutHandler struct {
	Svc      *service.CheckoutService
	Producer *mykafka.Producer
	Metrics  *metrics.Metrics
}

func (h *CheckoutHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CheckoutHandler) checkoutFailure(reason string) {
	if h.Metrics != nil {
		h.Metrics.CheckoutFailures.WithLabelValues(reason).Inc()
	}
}

func (h *CheckoutHandler) ProcessCheckout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "process_checkout")

	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	var req service.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	placed, err := h.Svc.PlaceOrder(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			h.checkoutFailure("validation")
			l.Warn("checkout_rejected", "status", 400, "error", err)
		case errors.Is(err, service.ErrEmptyCart):
			h.checkoutFailure("empty_cart")
			l.Warn("checkout_rejected", "status", 400, "error", err)
		default:
			h.checkoutFailure("persistence")
			l.Error("checkout_failed", "status", 500, "error", err)
		}
		return httpError(err)
	}

	if h.Metrics != nil {
		h.Metrics.OrdersPlaced.Inc()
		h.Metrics.OrderItemsCreated.Add(float64(len(placed.Items)))
	}

	h.publish(c, map[string]any{
		"type":    "order_placed",
		"userID":  userID,
		"orderID": placed.Order.ID,
		"number":  placed.Order.Number,
		"total":   placed.Order.TotalAmount,
		"items":   len(placed.Items),
	})

	l.Info("checkout_success", "order_id", placed.Order.ID, "items", len(placed.Items))
	return c.JSON(http.StatusCreated, placed)
}

func (h *CheckoutHandler) TrackOrders(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.OrdersForUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}
