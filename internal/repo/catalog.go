package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
)

type CatalogRepo struct {
	DB *gorm.DB
}

func (r *CatalogRepo) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// StorefrontProducts lists active, available products of approved vendors,
// newest first.
func (r *CatalogRepo) StorefrontProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	base := r.DB.WithContext(ctx).Model(&models.Product{}).
		Joins("JOIN vendors ON vendors.id = products.vendor_id").
		Where("products.is_active = ? AND products.is_available = ? AND vendors.status = ?",
			true, true, models.VendorApproved)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Product
	if err := base.Order("products.created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *CatalogRepo) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *CatalogRepo) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CatalogRepo) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CatalogRepo) ProductsByCategory(ctx context.Context, categoryID uint, offset, limit int) ([]models.Product, int64, error) {
	base := r.DB.WithContext(ctx).Model(&models.Product{}).
		Joins("JOIN vendors ON vendors.id = products.vendor_id").
		Where("products.category_id = ? AND products.is_active = ? AND products.is_available = ? AND vendors.status = ?",
			categoryID, true, true, models.VendorApproved)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Product
	if err := base.Order("products.created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// VendorProductFilter narrows a vendor's own inventory listing.
type VendorProductFilter struct {
	CategoryID   uint
	Availability string // "available" | "unavailable" | ""
}

func (r *CatalogRepo) VendorProducts(ctx context.Context, vendorID uint, f VendorProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("created_at DESC")
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	switch f.Availability {
	case "available":
		q = q.Where("is_available = ?", true)
	case "unavailable":
		q = q.Where("is_available = ?", false)
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepo) LowStockProducts(ctx context.Context, vendorID uint, limit int) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("vendor_id = ? AND quantity > 0 AND quantity <= low_stock_threshold", vendorID).
		Order("quantity ASC").Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *CatalogRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *CatalogRepo) DeleteProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Delete(p).Error
}

func (r *CatalogRepo) CountProducts(ctx context.Context, vendorID uint, onlyAvailable bool) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Where("vendor_id = ?", vendorID)
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
