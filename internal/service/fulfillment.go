package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/repo"
)

type FulfillmentService struct {
	Orders *repo.OrderRepo
}

type ItemFilter struct {
	Status   string
	DateFrom string // YYYY-MM-DD
	DateTo   string
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrValidation, s)
	}
	return t, nil
}

func (f ItemFilter) toRepo() (repo.VendorItemFilter, error) {
	var out repo.VendorItemFilter
	if f.Status != "" {
		st := models.OrderItemStatus(f.Status)
		if !st.Valid() {
			return out, fmt.Errorf("%w: status %q", ErrValidation, f.Status)
		}
		out.Status = st
	}
	var err error
	if out.DateFrom, err = parseDay(f.DateFrom); err != nil {
		return out, err
	}
	if out.DateTo, err = parseDay(f.DateTo); err != nil {
		return out, err
	}
	return out, nil
}

// List is a vendor-scoped projection: rows of other vendors are never
// visible, whatever the filter says.
func (s *FulfillmentService) List(ctx context.Context, vendorID uint, f ItemFilter) ([]models.OrderItem, error) {
	rf, err := f.toRepo()
	if err != nil {
		return nil, err
	}
	return s.Orders.VendorItems(ctx, vendorID, rf)
}

func (s *FulfillmentService) Get(ctx context.Context, vendorID, itemID uint) (*models.OrderItem, error) {
	item, err := s.Orders.ItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order item %d", ErrNotFound, itemID)
		}
		return nil, err
	}
	if item.VendorID != vendorID {
		return nil, fmt.Errorf("%w: order item %d", ErrForbidden, itemID)
	}
	return item, nil
}

// UpdateStatus advances one order item through the fulfillment state machine.
// The transition table is checked on every update; caller input is never
// trusted to encode a legal move.
func (s *FulfillmentService) UpdateStatus(ctx context.Context, vendorID, itemID uint, next models.OrderItemStatus) (*models.OrderItem, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrValidation, next)
	}

	item, err := s.Get(ctx, vendorID, itemID)
	if err != nil {
		return nil, err
	}

	if !item.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, next)
	}

	item.Status = next
	if err := s.Orders.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
