package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkrishnan-dev/quickbasket/internal/models"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

func TestEarningsCountDeliveredOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "user")
	vendorA := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	vendorB := env.seedVendor(t, "greengrocer", models.VendorApproved, "560002")
	cat := env.seedCategory(t, "dairy")
	milk := env.seedProduct(t, vendorA.ID, cat.ID, "milk", 5000)
	bread := env.seedProduct(t, vendorB.ID, cat.ID, "bread", 3000)

	env.seedOrderItem(t, user.ID, vendorA.ID, milk.ID, 2, 5000, models.StatusDelivered)
	env.seedOrderItem(t, user.ID, vendorA.ID, milk.ID, 1, 4500, models.StatusDelivered)
	// Not yet delivered: must not count.
	env.seedOrderItem(t, user.ID, vendorA.ID, milk.ID, 5, 5000, models.StatusPlaced)
	env.seedOrderItem(t, user.ID, vendorA.ID, milk.ID, 5, 5000, models.StatusCancelled)
	// Another vendor's delivered row: must not count either.
	env.seedOrderItem(t, user.ID, vendorB.ID, bread.ID, 10, 3000, models.StatusDelivered)

	report, err := env.Earnings.Report(context.Background(), vendorA.ID, service.EarningsFilter{})
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	require.Equal(t, int64(2*5000+4500), report.TotalRevenue)
	require.Equal(t, 2, report.TotalOrders)
	require.Equal(t, int64(3), report.TotalItemsSold)

	require.Len(t, report.RevenueByProduct, 1)
	require.Equal(t, "milk", report.RevenueByProduct[0].Name)
	require.Equal(t, int64(14500), report.RevenueByProduct[0].Revenue)

	require.Len(t, report.RevenueByCategory, 1)
	require.Equal(t, "dairy", report.RevenueByCategory[0].Name)
}

func TestEarningsFilters(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "user")
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	dairy := env.seedCategory(t, "dairy")
	bakery := env.seedCategory(t, "bakery")
	milk := env.seedProduct(t, vendor.ID, dairy.ID, "milk", 5000)
	bread := env.seedProduct(t, vendor.ID, bakery.ID, "bread", 3000)

	env.seedOrderItem(t, user.ID, vendor.ID, milk.ID, 2, 5000, models.StatusDelivered)
	env.seedOrderItem(t, user.ID, vendor.ID, bread.ID, 1, 3000, models.StatusDelivered)

	byProduct, err := env.Earnings.Report(context.Background(), vendor.ID, service.EarningsFilter{ProductID: milk.ID})
	require.NoError(t, err)
	require.Len(t, byProduct.Rows, 1)
	require.Equal(t, int64(10000), byProduct.TotalRevenue)

	byCategory, err := env.Earnings.Report(context.Background(), vendor.ID, service.EarningsFilter{CategoryID: bakery.ID})
	require.NoError(t, err)
	require.Len(t, byCategory.Rows, 1)
	require.Equal(t, int64(3000), byCategory.TotalRevenue)

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	inWindow, err := env.Earnings.Report(context.Background(), vendor.ID, service.EarningsFilter{DateFrom: today, DateTo: today})
	require.NoError(t, err)
	require.Len(t, inWindow.Rows, 2)

	outOfWindow, err := env.Earnings.Report(context.Background(), vendor.ID, service.EarningsFilter{DateFrom: tomorrow})
	require.NoError(t, err)
	require.Empty(t, outOfWindow.Rows)
	require.Zero(t, outOfWindow.TotalRevenue)

	_, err = env.Earnings.Report(context.Background(), vendor.ID, service.EarningsFilter{DateFrom: "not-a-date"})
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestEarningsExportMatchesReport(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "user")
	vendor := env.seedVendor(t, "freshmart", models.VendorApproved, "560001")
	cat := env.seedCategory(t, "dairy")
	milk := env.seedProduct(t, vendor.ID, cat.ID, "milk", 5000)

	env.seedOrderItem(t, user.ID, vendor.ID, milk.ID, 2, 5000, models.StatusDelivered)
	env.seedOrderItem(t, user.ID, vendor.ID, milk.ID, 1, 5000, models.StatusPlaced)

	rows, err := env.Earnings.ExportRows(context.Background(), vendor.ID, service.EarningsFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "milk", rows[0].ProductName)
	require.Equal(t, int64(10000), rows[0].LineTotal)
	require.NotEmpty(t, rows[0].OrderNumber)
}
