package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

func validCheckout() service.CheckoutRequest {
	return service.CheckoutRequest{
		Name:          "Asha Rao",
		Phone:         "9876543210",
		Address:       "14 MG Road, Bengaluru 560001",
		PaymentMethod: "cod",
	}
}

func TestCheckoutValidationWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "user")
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	cat := env.seedCategory(t, "dairy")
	p := env.seedProduct(t, vendor.ID, cat.ID, "milk", 5000)
	_, err := env.Cart.Add(context.Background(), user.ID, p.Slug)
	require.NoError(t, err)

	cases := map[string]service.CheckoutRequest{
		"missing name":       {Phone: "9876543210", Address: "14 MG Road, 560001", PaymentMethod: "cod"},
		"missing phone":      {Name: "Asha", Address: "14 MG Road, 560001", PaymentMethod: "cod"},
		"address no pincode": {Name: "Asha", Phone: "9876543210", Address: "14 MG Road", PaymentMethod: "cod"},
		"bad payment method": {Name: "Asha", Phone: "9876543210", Address: "14 MG Road, 560001", PaymentMethod: "cheque"},
	}
	for name, req := range cases {
		_, err := env.Checkout.PlaceOrder(context.Background(), user.ID, req)
		require.ErrorIs(t, err, service.ErrValidation, name)
	}

	var orders, items int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, env.DB.Model(&models.OrderItem{}).Count(&items).Error)
	require.Zero(t, orders)
	require.Zero(t, items)

	// The cart is untouched by the failed attempts.
	var cartCount int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&cartCount).Error)
	require.Equal(t, int64(1), cartCount)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "user")

	_, err := env.Checkout.PlaceOrder(context.Background(), user.ID, validCheckout())
	require.ErrorIs(t, err, service.ErrEmptyCart)

	var orders int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}

func TestCheckoutSnapshotsPriceAndVendor(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "user")
	vendorA := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	vendorB := env.seedVendor(t, "greengrocer", models.VendorApproved, "560002")
	cat := env.seedCategory(t, "dairy")

	milk := env.seedProduct(t, vendorA.ID, cat.ID, "milk", 5000)
	bread := env.seedProduct(t, vendorB.ID, cat.ID, "bread", 3000)
	require.NoError(t, env.DB.Model(bread).Update("discount_price", 2500).Error)

	_, err := env.Cart.Add(context.Background(), user.ID, milk.Slug)
	require.NoError(t, err)
	_, err = env.Cart.Add(context.Background(), user.ID, milk.Slug)
	require.NoError(t, err)
	_, err = env.Cart.Add(context.Background(), user.ID, bread.Slug)
	require.NoError(t, err)

	placed, err := env.Checkout.PlaceOrder(context.Background(), user.ID, validCheckout())
	require.NoError(t, err)

	// One item per distinct cart line, priced at the display price.
	require.Len(t, placed.Items, 2)
	require.NotEmpty(t, placed.Order.Number)
	require.Equal(t, int64(2*5000+2500), placed.Order.TotalAmount)

	byProduct := map[uint]models.OrderItem{}
	for _, it := range placed.Items {
		byProduct[it.ProductID] = it
		require.Equal(t, models.StatusPlaced, it.Status)
	}
	require.Equal(t, vendorA.ID, byProduct[milk.ID].VendorID)
	require.Equal(t, uint(2), byProduct[milk.ID].Quantity)
	require.Equal(t, int64(5000), byProduct[milk.ID].UnitPrice)
	require.Equal(t, vendorB.ID, byProduct[bread.ID].VendorID)
	require.Equal(t, int64(2500), byProduct[bread.ID].UnitPrice)

	// Cart is emptied in the same transaction.
	var cartCount int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&cartCount).Error)
	require.Zero(t, cartCount)

	// Later product edits never leak into the stored order.
	require.NoError(t, env.DB.Model(milk).Update("price", 9900).Error)
	var stored models.OrderItem
	require.NoError(t, env.DB.First(&stored, byProduct[milk.ID].ID).Error)
	require.Equal(t, int64(5000), stored.UnitPrice)
}

func TestOrdersForUserHistory(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "user")
	other := env.seedUser(t, "bob", "user")
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	cat := env.seedCategory(t, "dairy")
	p := env.seedProduct(t, vendor.ID, cat.ID, "milk", 5000)

	for _, u := range []uint{user.ID, other.ID} {
		_, err := env.Cart.Add(context.Background(), u, p.Slug)
		require.NoError(t, err)
		_, err = env.Checkout.PlaceOrder(context.Background(), u, validCheckout())
		require.NoError(t, err)
	}

	orders, err := env.Checkout.OrdersForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, user.ID, orders[0].Order.UserID)
	require.Len(t, orders[0].Items, 1)
}
