package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/repo"
	"github.com/mkrishnan-dev/quickbasket/internal/util"
)

type CatalogService struct {
	Catalog *repo.CatalogRepo
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

func (s *CatalogService) Storefront(ctx context.Context, page, size int) (*ProductPage, error) {
	offset, limit := util.Calculate(page, size)
	products, total, err := s.Catalog.StorefrontProducts(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total}, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Catalog.ActiveCategories(ctx)
}

func (s *CatalogService) CategoryProducts(ctx context.Context, slug string, page, size int) (*models.Category, *ProductPage, error) {
	cat, err := s.Catalog.CategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: category %q", ErrNotFound, slug)
		}
		return nil, nil, err
	}
	if !cat.IsActive {
		return nil, nil, fmt.Errorf("%w: category %q", ErrNotFound, slug)
	}

	offset, limit := util.Calculate(page, size)
	products, total, err := s.Catalog.ProductsByCategory(ctx, cat.ID, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return cat, &ProductPage{Products: products, Total: total}, nil
}

type ProductInput struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	CategoryID        uint   `json:"category_id"`
	Price             int64  `json:"price"`
	DiscountPrice     int64  `json:"discount_price"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	Unit              string `json:"unit"`
	Image             string `json:"image"`
}

func (in *ProductInput) validate() error {
	var fields []string
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name")
	}
	if in.CategoryID == 0 {
		fields = append(fields, "category_id")
	}
	if in.Price <= 0 {
		fields = append(fields, "price")
	}
	if in.DiscountPrice < 0 || (in.DiscountPrice > 0 && in.DiscountPrice >= in.Price) {
		fields = append(fields, "discount_price: must be below price")
	}
	if in.Quantity < 0 {
		fields = append(fields, "quantity")
	}
	if len(fields) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
	}
	return nil
}

// AddProduct creates a product under the vendor. The slug is derived from
// the name and must stay unique; on collision a numeric suffix is appended
// so existing slugs are never reassigned.
func (s *CatalogService) AddProduct(ctx context.Context, vendorID uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.Catalog.CategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, in.CategoryID)
		}
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, util.Slugify(in.Name))
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		VendorID:          vendorID,
		CategoryID:        in.CategoryID,
		Name:              strings.TrimSpace(in.Name),
		Slug:              slug,
		Description:       in.Description,
		Price:             in.Price,
		DiscountPrice:     in.DiscountPrice,
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		Unit:              in.Unit,
		Image:             in.Image,
		IsAvailable:       true,
		IsActive:          true,
	}
	if p.Unit == "" {
		p.Unit = "piece"
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = 10
	}
	if err := s.Catalog.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("%w: name produces an empty slug", ErrValidation)
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := s.Catalog.SlugTaken(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// ownProduct loads a product by slug and enforces vendor row ownership.
func (s *CatalogService) ownProduct(ctx context.Context, vendorID uint, slug string) (*models.Product, error) {
	p, err := s.Catalog.ProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %q", ErrNotFound, slug)
		}
		return nil, err
	}
	if p.VendorID != vendorID {
		return nil, fmt.Errorf("%w: product %q", ErrForbidden, slug)
	}
	return p, nil
}

// EditProduct updates the product in place. The slug never changes once the
// product is publicly referenced, even when the name does.
func (s *CatalogService) EditProduct(ctx context.Context, vendorID uint, slug string, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.ownProduct(ctx, vendorID, slug)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.DiscountPrice = in.DiscountPrice
	p.Quantity = in.Quantity
	if in.LowStockThreshold > 0 {
		p.LowStockThreshold = in.LowStockThreshold
	}
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	if in.Image != "" {
		p.Image = in.Image
	}

	if err := s.Catalog.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, vendorID uint, slug string) error {
	p, err := s.ownProduct(ctx, vendorID, slug)
	if err != nil {
		return err
	}
	return s.Catalog.DeleteProduct(ctx, p)
}

func (s *CatalogService) ToggleAvailability(ctx context.Context, vendorID uint, slug string) (*models.Product, error) {
	p, err := s.ownProduct(ctx, vendorID, slug)
	if err != nil {
		return nil, err
	}
	p.IsAvailable = !p.IsAvailable
	if err := s.Catalog.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) VendorProducts(ctx context.Context, vendorID uint, f repo.VendorProductFilter) ([]models.Product, error) {
	return s.Catalog.VendorProducts(ctx, vendorID, f)
}
