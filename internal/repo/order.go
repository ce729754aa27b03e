package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
)

type OrderRepo struct {
	DB *gorm.DB
}

func (r *OrderRepo) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) ItemsByOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// VendorItemFilter narrows a vendor's fulfillment queue. Dates bound
// created_at, the "to" day inclusively.
type VendorItemFilter struct {
	Status   models.OrderItemStatus
	DateFrom time.Time
	DateTo   time.Time
}

func (r *OrderRepo) VendorItems(ctx context.Context, vendorID uint, f VendorItemFilter) ([]models.OrderItem, error) {
	q := r.DB.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("created_at >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("created_at < ?", f.DateTo.AddDate(0, 0, 1))
	}

	var items []models.OrderItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OrderRepo) ItemByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderRepo) SaveItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *OrderRepo) CountVendorItems(ctx context.Context, vendorID uint, status models.OrderItemStatus) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.OrderItem{}).Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// EarningsFilter restricts the delivered rows an earnings report covers.
// Dates bound updated_at, i.e. when the item reached its current status.
type EarningsFilter struct {
	DateFrom   time.Time
	DateTo     time.Time
	ProductID  uint
	CategoryID uint
}

type EarningsRow struct {
	OrderID      uint      `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CategoryName string    `json:"category_name"`
	Quantity     uint      `json:"quantity"`
	UnitPrice    int64     `json:"unit_price"`
	LineTotal    int64     `json:"line_total"`
	DeliveredAt  time.Time `json:"delivered_at"`
}

type RevenueBucket struct {
	Name    string `json:"name"`
	Revenue int64  `json:"revenue"`
	Orders  int64  `json:"orders"`
}

func (r *OrderRepo) earningsBase(ctx context.Context, vendorID uint, f EarningsFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("order_items.vendor_id = ? AND order_items.status = ?", vendorID, models.StatusDelivered)

	if !f.DateFrom.IsZero() {
		q = q.Where("order_items.updated_at >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("order_items.updated_at < ?", f.DateTo.AddDate(0, 0, 1))
	}
	if f.ProductID != 0 {
		q = q.Where("order_items.product_id = ?", f.ProductID)
	}
	if f.CategoryID != 0 {
		q = q.Where("products.category_id = ?", f.CategoryID)
	}
	return q
}

func (r *OrderRepo) EarningsRows(ctx context.Context, vendorID uint, f EarningsFilter) ([]EarningsRow, error) {
	var rows []EarningsRow
	err := r.earningsBase(ctx, vendorID, f).
		Select(`order_items.order_id AS order_id,
			orders.number AS order_number,
			order_items.product_id AS product_id,
			products.name AS product_name,
			categories.name AS category_name,
			order_items.quantity AS quantity,
			order_items.unit_price AS unit_price,
			order_items.quantity * order_items.unit_price AS line_total,
			order_items.updated_at AS delivered_at`).
		Order("order_items.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrderRepo) RevenueByProduct(ctx context.Context, vendorID uint, f EarningsFilter) ([]RevenueBucket, error) {
	var buckets []RevenueBucket
	err := r.earningsBase(ctx, vendorID, f).
		Select(`products.name AS name,
			SUM(order_items.quantity * order_items.unit_price) AS revenue,
			COUNT(order_items.id) AS orders`).
		Group("products.name").
		Order("revenue DESC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

func (r *OrderRepo) RevenueByCategory(ctx context.Context, vendorID uint, f EarningsFilter) ([]RevenueBucket, error) {
	var buckets []RevenueBucket
	err := r.earningsBase(ctx, vendorID, f).
		Select(`categories.name AS name,
			SUM(order_items.quantity * order_items.unit_price) AS revenue,
			COUNT(order_items.id) AS orders`).
		Group("categories.name").
		Order("revenue DESC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// DeliveredRevenueSince sums delivered revenue with updated_at >= since;
// a zero since means all time.
func (r *OrderRepo) DeliveredRevenueSince(ctx context.Context, vendorID uint, since time.Time) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("vendor_id = ? AND status = ?", vendorID, models.StatusDelivered)
	if !since.IsZero() {
		q = q.Where("updated_at >= ?", since)
	}

	var total *int64
	if err := q.Select("SUM(quantity * unit_price)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
