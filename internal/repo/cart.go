package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
)

type CartRepo struct {
	DB *gorm.DB
}

func (r *CartRepo) ItemsByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ItemForUser loads a cart line only when it belongs to the given user.
func (r *CartRepo) ItemForUser(ctx context.Context, itemID, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepo) ItemByProduct(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepo) Create(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *CartRepo) Save(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *CartRepo) Delete(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Delete(item).Error
}
