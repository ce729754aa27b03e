package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/hash"
	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/repo"
	"github.com/mkrishnan-dev/quickbasket/internal/util"
)

type VendorService struct {
	DB      *gorm.DB
	Vendors *repo.VendorRepo
	Orders  *repo.OrderRepo
	Catalog *repo.CatalogRepo
}

type VendorSignup struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	ShopName  string `json:"shop_name"`
	OwnerName string `json:"owner_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincodes  string `json:"pincodes"`
}

func (req *VendorSignup) validate() error {
	var fields []string
	if strings.TrimSpace(req.Username) == "" {
		fields = append(fields, "username")
	}
	if len(req.Password) < 6 {
		fields = append(fields, "password: at least 6 characters")
	}
	if strings.TrimSpace(req.ShopName) == "" {
		fields = append(fields, "shop_name")
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		fields = append(fields, "owner_name")
	}
	if len(util.SplitPincodes(req.Pincodes)) == 0 {
		fields = append(fields, "pincodes: at least one 6-digit pincode")
	}
	if len(fields) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
	}
	return nil
}

// Register creates the user account and the pending vendor profile as one
// unit. Dashboard access stays gated until an admin approves the profile.
func (s *VendorService) Register(ctx context.Context, req VendorSignup) (*models.Vendor, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	slug := util.Slugify(req.ShopName)
	taken, err := s.Vendors.SlugTaken(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: shop name %q", ErrConflict, req.ShopName)
	}

	var vendor models.Vendor
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", req.Username).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: username %q", ErrConflict, req.Username)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user := models.User{
			Username:     strings.TrimSpace(req.Username),
			Email:        strings.TrimSpace(req.Email),
			PasswordHash: pwHash,
			Role:         "vendor",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		vendor = models.Vendor{
			UserID:    user.ID,
			ShopName:  strings.TrimSpace(req.ShopName),
			Slug:      slug,
			OwnerName: strings.TrimSpace(req.OwnerName),
			Email:     strings.TrimSpace(req.Email),
			Phone:     strings.TrimSpace(req.Phone),
			Address:   req.Address,
			City:      req.City,
			State:     req.State,
			Pincodes:  strings.Join(util.SplitPincodes(req.Pincodes), ","),
			Status:    models.VendorPending,
		}
		return tx.Create(&vendor).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &vendor, nil
}

// RequireApproved is the guard preceding every vendor-scoped operation: it
// resolves the caller's vendor profile and rejects pending/rejected accounts.
func (s *VendorService) RequireApproved(ctx context.Context, userID uint) (*models.Vendor, error) {
	vendor, err := s.Vendors.ByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no vendor profile", ErrNotFound)
		}
		return nil, err
	}
	if !vendor.IsApproved() {
		return nil, fmt.Errorf("%w: vendor account is %s", ErrForbidden, vendor.Status)
	}
	return vendor, nil
}

func (s *VendorService) Profile(ctx context.Context, userID uint) (*models.Vendor, error) {
	vendor, err := s.Vendors.ByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no vendor profile", ErrNotFound)
		}
		return nil, err
	}
	return vendor, nil
}

type VendorProfileUpdate struct {
	OwnerName string `json:"owner_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincodes  string `json:"pincodes"`
}

func (s *VendorService) UpdateProfile(ctx context.Context, userID uint, req VendorProfileUpdate) (*models.Vendor, error) {
	vendor, err := s.RequireApproved(ctx, userID)
	if err != nil {
		return nil, err
	}

	pins := util.SplitPincodes(req.Pincodes)
	if len(pins) == 0 {
		return nil, fmt.Errorf("%w: pincodes: at least one 6-digit pincode", ErrValidation)
	}

	vendor.OwnerName = strings.TrimSpace(req.OwnerName)
	vendor.Email = strings.TrimSpace(req.Email)
	vendor.Phone = strings.TrimSpace(req.Phone)
	vendor.Address = req.Address
	vendor.City = req.City
	vendor.State = req.State
	vendor.Pincodes = strings.Join(pins, ",")

	if err := s.Vendors.Save(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Pending lists vendor applications awaiting review. Admin only surface.
func (s *VendorService) Pending(ctx context.Context) ([]models.Vendor, error) {
	return s.Vendors.Pending(ctx)
}

// Review resolves a pending application. pending -> approved and
// pending -> rejected are the only legal moves; both are terminal.
func (s *VendorService) Review(ctx context.Context, vendorID uint, approve bool) (*models.Vendor, error) {
	vendor, err := s.Vendors.ByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vendor %d", ErrNotFound, vendorID)
		}
		return nil, err
	}
	if vendor.Status != models.VendorPending {
		return nil, fmt.Errorf("%w: vendor is already %s", ErrInvalidTransition, vendor.Status)
	}

	if approve {
		vendor.Status = models.VendorApproved
	} else {
		vendor.Status = models.VendorRejected
	}
	if err := s.Vendors.Save(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

type DashboardStats struct {
	TotalProducts    int64 `json:"total_products"`
	ActiveProducts   int64 `json:"active_products"`
	LowStockProducts int   `json:"low_stock_products"`
	TotalOrders      int64 `json:"total_orders"`
	PendingOrders    int64 `json:"pending_orders"`
	DeliveredOrders  int64 `json:"delivered_orders"`
	TotalRevenue     int64 `json:"total_revenue"`
	TodayRevenue     int64 `json:"today_revenue"`
	WeekRevenue      int64 `json:"week_revenue"`
	MonthRevenue     int64 `json:"month_revenue"`
}

func (s *VendorService) Dashboard(ctx context.Context, vendorID uint) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalProducts, err = s.Catalog.CountProducts(ctx, vendorID, false); err != nil {
		return nil, err
	}
	if stats.ActiveProducts, err = s.Catalog.CountProducts(ctx, vendorID, true); err != nil {
		return nil, err
	}
	lowStock, err := s.Catalog.LowStockProducts(ctx, vendorID, 5)
	if err != nil {
		return nil, err
	}
	stats.LowStockProducts = len(lowStock)

	if stats.TotalOrders, err = s.Orders.CountVendorItems(ctx, vendorID, ""); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.Orders.CountVendorItems(ctx, vendorID, models.StatusPlaced); err != nil {
		return nil, err
	}
	if stats.DeliveredOrders, err = s.Orders.CountVendorItems(ctx, vendorID, models.StatusDelivered); err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.TotalRevenue, err = s.Orders.DeliveredRevenueSince(ctx, vendorID, time.Time{}); err != nil {
		return nil, err
	}
	if stats.TodayRevenue, err = s.Orders.DeliveredRevenueSince(ctx, vendorID, today); err != nil {
		return nil, err
	}
	if stats.WeekRevenue, err = s.Orders.DeliveredRevenueSince(ctx, vendorID, today.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if stats.MonthRevenue, err = s.Orders.DeliveredRevenueSince(ctx, vendorID, today.AddDate(0, 0, -30)); err != nil {
		return nil, err
	}
	return &stats, nil
}
