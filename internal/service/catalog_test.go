package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/repo"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

func TestStorefrontHidesUnsellableProducts(t *testing.T) {
	env := newTestEnv(t)
	approved := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	pending := env.seedVendor(t, "newshop", models.VendorPending, "560002")
	cat := env.seedCategory(t, "dairy")

	env.seedProduct(t, approved.ID, cat.ID, "milk", 5000)
	hidden := env.seedProduct(t, approved.ID, cat.ID, "curd", 4000)
	require.NoError(t, env.DB.Model(hidden).Update("is_available", false).Error)
	env.seedProduct(t, pending.ID, cat.ID, "paneer", 9000)

	page, err := env.CatalogSvc.Storefront(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	require.Len(t, page.Products, 1)
	require.Equal(t, "milk", page.Products[0].Name)
}

func TestCategoryProducts(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	dairy := env.seedCategory(t, "dairy")
	inactive := env.seedCategory(t, "seasonal")
	require.NoError(t, env.DB.Model(inactive).Update("is_active", false).Error)

	env.seedProduct(t, vendor.ID, dairy.ID, "milk", 5000)

	cat, page, err := env.CatalogSvc.CategoryProducts(context.Background(), "dairy", 1, 20)
	require.NoError(t, err)
	require.Equal(t, dairy.ID, cat.ID)
	require.Equal(t, int64(1), page.Total)

	_, _, err = env.CatalogSvc.CategoryProducts(context.Background(), "seasonal", 1, 20)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, _, err = env.CatalogSvc.CategoryProducts(context.Background(), "nope", 1, 20)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestAddProductSlugCollision(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	cat := env.seedCategory(t, "dairy")

	in := service.ProductInput{Name: "Fresh Milk", CategoryID: cat.ID, Price: 5000}

	first, err := env.CatalogSvc.AddProduct(context.Background(), vendor.ID, in)
	require.NoError(t, err)
	require.Equal(t, "fresh-milk", first.Slug)
	require.Equal(t, "piece", first.Unit)
	require.Equal(t, 10, first.LowStockThreshold)

	second, err := env.CatalogSvc.AddProduct(context.Background(), vendor.ID, in)
	require.NoError(t, err)
	require.Equal(t, "fresh-milk-2", second.Slug)

	third, err := env.CatalogSvc.AddProduct(context.Background(), vendor.ID, in)
	require.NoError(t, err)
	require.Equal(t, "fresh-milk-3", third.Slug)
}

func TestAddProductValidation(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	cat := env.seedCategory(t, "dairy")

	cases := map[string]service.ProductInput{
		"missing name":        {CategoryID: cat.ID, Price: 5000},
		"zero price":          {Name: "Milk", CategoryID: cat.ID},
		"discount over price": {Name: "Milk", CategoryID: cat.ID, Price: 5000, DiscountPrice: 6000},
		"negative quantity":   {Name: "Milk", CategoryID: cat.ID, Price: 5000, Quantity: -1},
	}
	for name, in := range cases {
		_, err := env.CatalogSvc.AddProduct(context.Background(), vendor.ID, in)
		require.ErrorIs(t, err, service.ErrValidation, name)
	}

	_, err := env.CatalogSvc.AddProduct(context.Background(), vendor.ID, service.ProductInput{
		Name: "Milk", CategoryID: 999, Price: 5000,
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestEditProductKeepsSlug(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	other := env.seedVendor(t, "greengrocer", models.VendorApproved, "560002")
	cat := env.seedCategory(t, "dairy")

	p, err := env.CatalogSvc.AddProduct(context.Background(), vendor.ID, service.ProductInput{
		Name: "Fresh Milk", CategoryID: cat.ID, Price: 5000,
	})
	require.NoError(t, err)

	updated, err := env.CatalogSvc.EditProduct(context.Background(), vendor.ID, p.Slug, service.ProductInput{
		Name: "Organic Milk", CategoryID: cat.ID, Price: 6000, Quantity: 50,
	})
	require.NoError(t, err)
	require.Equal(t, "Organic Milk", updated.Name)
	require.Equal(t, "fresh-milk", updated.Slug)
	require.Equal(t, int64(6000), updated.Price)

	// Only the owning vendor may edit or delete.
	_, err = env.CatalogSvc.EditProduct(context.Background(), other.ID, p.Slug, service.ProductInput{
		Name: "Hijacked", CategoryID: cat.ID, Price: 100,
	})
	require.ErrorIs(t, err, service.ErrForbidden)

	err = env.CatalogSvc.DeleteProduct(context.Background(), other.ID, p.Slug)
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestToggleAvailability(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	cat := env.seedCategory(t, "dairy")
	p := env.seedProduct(t, vendor.ID, cat.ID, "milk", 5000)

	toggled, err := env.CatalogSvc.ToggleAvailability(context.Background(), vendor.ID, p.Slug)
	require.NoError(t, err)
	require.False(t, toggled.IsAvailable)

	toggled, err = env.CatalogSvc.ToggleAvailability(context.Background(), vendor.ID, p.Slug)
	require.NoError(t, err)
	require.True(t, toggled.IsAvailable)
}

func TestVendorProductsFilter(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	dairy := env.seedCategory(t, "dairy")
	bakery := env.seedCategory(t, "bakery")

	env.seedProduct(t, vendor.ID, dairy.ID, "milk", 5000)
	off := env.seedProduct(t, vendor.ID, bakery.ID, "bread", 3000)
	require.NoError(t, env.DB.Model(off).Update("is_available", false).Error)

	all, err := env.CatalogSvc.VendorProducts(context.Background(), vendor.ID, repo.VendorProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	byCategory, err := env.CatalogSvc.VendorProducts(context.Background(), vendor.ID, repo.VendorProductFilter{CategoryID: dairy.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, "milk", byCategory[0].Name)

	unavailable, err := env.CatalogSvc.VendorProducts(context.Background(), vendor.ID, repo.VendorProductFilter{Availability: "unavailable"})
	require.NoError(t, err)
	require.Len(t, unavailable, 1)
	require.Equal(t, "bread", unavailable[0].Name)
}
