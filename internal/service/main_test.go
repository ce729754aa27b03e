package service_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/config"
	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/repo"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

type testEnv struct {
	DB          *gorm.DB
	Carts       *repo.CartRepo
	Catalog     *repo.CatalogRepo
	Vendors     *repo.VendorRepo
	Orders      *repo.OrderRepo
	Cart        *service.CartService
	CatalogSvc  *service.CatalogService
	Checkout    *service.CheckoutService
	Delivery    *service.DeliveryService
	Fulfillment *service.FulfillmentService
	Earnings    *service.EarningsService
	Vendor      *service.VendorService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	carts := &repo.CartRepo{DB: db}
	catalog := &repo.CatalogRepo{DB: db}
	vendors := &repo.VendorRepo{DB: db}
	orders := &repo.OrderRepo{DB: db}

	return &testEnv{
		DB:          db,
		Carts:       carts,
		Catalog:     catalog,
		Vendors:     vendors,
		Orders:      orders,
		Cart:        &service.CartService{Carts: carts, Catalog: catalog, Vendors: vendors},
		CatalogSvc:  &service.CatalogService{Catalog: catalog},
		Checkout:    &service.CheckoutService{DB: db},
		Delivery:    &service.DeliveryService{Vendors: vendors},
		Fulfillment: &service.FulfillmentService{Orders: orders},
		Earnings:    &service.EarningsService{Orders: orders},
		Vendor:      &service.VendorService{DB: db, Vendors: vendors, Orders: orders, Catalog: catalog},
	}
}

func (env *testEnv) seedUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, env.DB.Create(u).Error)
	return u
}

func (env *testEnv) seedVendor(t *testing.T, shopName string, status models.VendorStatus, pincodes string) *models.Vendor {
	t.Helper()
	user := env.seedUser(t, shopName+"_owner", "vendor")
	v := &models.Vendor{
		UserID:    user.ID,
		ShopName:  shopName,
		Slug:      fmt.Sprintf("%s-%d", shopName, user.ID),
		OwnerName: "Owner",
		Pincodes:  pincodes,
		Status:    status,
	}
	require.NoError(t, env.DB.Create(v).Error)
	return v
}

func (env *testEnv) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: name, IsActive: true}
	require.NoError(t, env.DB.Create(c).Error)
	return c
}

func (env *testEnv) seedProduct(t *testing.T, vendorID, categoryID uint, name string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{
		VendorID:    vendorID,
		CategoryID:  categoryID,
		Name:        name,
		Slug:        name,
		Price:       price,
		Quantity:    100,
		IsAvailable: true,
		IsActive:    true,
	}
	require.NoError(t, env.DB.Create(p).Error)
	return p
}

func (env *testEnv) seedOrderItem(t *testing.T, userID, vendorID, productID uint, qty uint, unitPrice int64, status models.OrderItemStatus) *models.OrderItem {
	t.Helper()
	order := &models.Order{
		Number:          uuid.NewString(),
		UserID:          userID,
		TotalAmount:     int64(qty) * unitPrice,
		PaymentMethod:   "cod",
		CustomerName:    "Test Customer",
		CustomerPhone:   "9999999999",
		DeliveryAddress: "12 Test Street, 560001",
	}
	require.NoError(t, env.DB.Create(order).Error)

	item := &models.OrderItem{
		OrderID:   order.ID,
		ProductID: productID,
		VendorID:  vendorID,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Status:    status,
	}
	require.NoError(t, env.DB.Create(item).Error)
	return item
}
