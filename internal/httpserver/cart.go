package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/mykafka"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.View(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	item, err := h.Svc.Add(c.Request().Context(), userID, c.Param("slug"))
	if err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) UpdateCart(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := h.Svc.Update(c.Request().Context(), userID, uint(id), c.Param("action"))
	if err != nil {
		return httpError(err)
	}

	if item == nil {
		// Decremented to zero: the row is gone.
		h.publish(c, map[string]any{
			"type":   "cart_item_removed",
			"userID": userID,
			"itemID": id,
		})
		return c.JSON(http.StatusOK, echo.Map{"deleted_item": id})
	}

	h.publish(c, map[string]any{
		"type":     "cart_item_updated",
		"userID":   userID,
		"itemID":   item.ID,
		"quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.Remove(c.Request().Context(), userID, uint(id)); err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"itemID": id,
	})
	return c.JSON(http.StatusOK, echo.Map{"deleted_item": id})
}
