package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
)

type VendorRepo struct {
	DB *gorm.DB
}

func (r *VendorRepo) ByUserID(ctx context.Context, userID uint) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepo) ByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepo) Save(ctx context.Context, v *models.Vendor) error {
	return r.DB.WithContext(ctx).Save(v).Error
}

func (r *VendorRepo) Pending(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.DB.WithContext(ctx).Where("status = ?", models.VendorPending).Order("created_at ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *VendorRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Vendor{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// PincodeServed reports whether any approved vendor lists the pincode in its
// serviceable area.
func (r *VendorRepo) PincodeServed(ctx context.Context, pincode string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Vendor{}).
		Where("status = ? AND pincodes LIKE ?", models.VendorApproved, "%"+pincode+"%").
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
