package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/repo"
)

type CartService struct {
	Carts   *repo.CartRepo
	Catalog *repo.CatalogRepo
	Vendors *repo.VendorRepo
}

// CartLine is one cart row joined with its product, priced live: the cart is
// a view over current display prices until checkout snapshots them.
type CartLine struct {
	Item      models.CartItem `json:"item"`
	Product   models.Product  `json:"product"`
	UnitPrice int64           `json:"unit_price"`
	LineTotal int64           `json:"line_total"`
}

type CartView struct {
	Lines []CartLine `json:"lines"`
	Total int64      `json:"total"`
}

// Add finds-or-creates the line for (user, product) and increments it by one.
// Unknown slugs, inactive or unavailable products, and products of
// unapproved vendors are all reported as not found.
func (s *CartService) Add(ctx context.Context, userID uint, productSlug string) (*models.CartItem, error) {
	product, err := s.Catalog.ProductBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
		}
		return nil, err
	}
	if !product.IsActive || !product.IsAvailable {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
	}
	vendor, err := s.Vendors.ByID(ctx, product.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsApproved() {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
	}

	item, err := s.Carts.ItemByProduct(ctx, userID, product.ID)
	if err == nil {
		item.Quantity++
		if err := s.Carts.Save(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newItem := &models.CartItem{UserID: userID, ProductID: product.ID, Quantity: 1}
	if err := s.Carts.Create(ctx, newItem); err != nil {
		return nil, err
	}
	return newItem, nil
}

// Update applies an increment or decrement action to a line the user owns.
// Decrementing a quantity-1 line deletes it; zero-quantity rows never persist.
func (s *CartService) Update(ctx context.Context, userID, itemID uint, action string) (*models.CartItem, error) {
	if action != "increment" && action != "decrement" {
		return nil, fmt.Errorf("%w: action %q", ErrValidation, action)
	}

	item, err := s.Carts.ItemForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, err
	}

	if action == "increment" {
		item.Quantity++
		if err := s.Carts.Save(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if item.Quantity <= 1 {
		if err := s.Carts.Delete(ctx, item); err != nil {
			return nil, err
		}
		return nil, nil
	}
	item.Quantity--
	if err := s.Carts.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID uint) error {
	item, err := s.Carts.ItemForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return err
	}
	return s.Carts.Delete(ctx, item)
}

func (s *CartService) View(ctx context.Context, userID uint) (*CartView, error) {
	items, err := s.Carts.ItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Lines: make([]CartLine, 0, len(items))}
	for _, it := range items {
		product, err := s.Catalog.ProductByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		unit := product.DisplayPrice()
		line := CartLine{
			Item:      it,
			Product:   *product,
			UnitPrice: unit,
			LineTotal: int64(it.Quantity) * unit,
		}
		view.Lines = append(view.Lines, line)
		view.Total += line.LineTotal
	}
	return view, nil
}
