package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/util"
)

type CheckoutService struct {
	DB *gorm.DB
}

type CheckoutRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

type PlacedOrder struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

// Validate collects every violated field so the caller can surface all of
// them at once. No write happens while validation can still fail.
func (req *CheckoutRequest) Validate() error {
	var fields []string
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields = append(fields, "phone")
	}
	if strings.TrimSpace(req.Address) == "" {
		fields = append(fields, "address")
	} else if util.ExtractPincode(req.Address) == "" {
		fields = append(fields, "address: no 6-digit pincode")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		fields = append(fields, "payment_method")
	}

	if len(fields) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
	}
	return nil
}

// PlaceOrder converts the user's cart into an immutable order header plus
// per-vendor order items, all inside one transaction: either every row
// exists afterwards and the cart is empty, or nothing changed at all.
//
// Stock is deliberately neither validated nor decremented here; product
// quantity stays informational.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, req CheckoutRequest) (*PlacedOrder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var placed PlacedOrder

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// Snapshot price and vendor per line at this instant. Later product
		// edits must never alter the historical order.
		var total int64
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, it.ProductID)
				}
				return err
			}
			unit := p.DisplayPrice()
			total += int64(it.Quantity) * unit
			orderItems = append(orderItems, models.OrderItem{
				ProductID: p.ID,
				VendorID:  p.VendorID,
				Quantity:  it.Quantity,
				UnitPrice: unit,
				Status:    models.StatusPlaced,
			})
		}

		order := models.Order{
			Number:          uuid.NewString(),
			UserID:          userID,
			TotalAmount:     total,
			PaymentMethod:   req.PaymentMethod,
			CustomerName:    strings.TrimSpace(req.Name),
			CustomerPhone:   strings.TrimSpace(req.Phone),
			DeliveryAddress: strings.TrimSpace(req.Address),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
			if err := tx.Create(&orderItems[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		placed = PlacedOrder{Order: order, Items: orderItems}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &placed, nil
}

// OrdersForUser returns the caller's order history, items included.
func (s *CheckoutService) OrdersForUser(ctx context.Context, userID uint) ([]PlacedOrder, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	out := make([]PlacedOrder, 0, len(orders))
	for _, o := range orders {
		var items []models.OrderItem
		if err := s.DB.WithContext(ctx).Where("order_id = ?", o.ID).Order("id ASC").Find(&items).Error; err != nil {
			return nil, err
		}
		out = append(out, PlacedOrder{Order: o, Items: items})
	}
	return out, nil
}
