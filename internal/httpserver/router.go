package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkrishnan-dev/quickbasket/internal/metrics"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

type Deps struct {
	DB             *gorm.DB
	Tokens         *service.TokenService
	Metrics        *metrics.Metrics
	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	Delivery       *DeliveryHandler
	Cart           *CartHandler
	Checkout       *CheckoutHandler
	Vendor         *VendorHandler
	VendorProducts *VendorProductHandler
	VendorOrders   *VendorOrderHandler
	Earnings       *EarningsHandler
	Admin          *AdminHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	// Public storefront
	e.GET("/", d.CatalogHandler.Home)
	e.GET("/categories", d.CatalogHandler.Categories)
	e.GET("/category/:slug", d.CatalogHandler.CategoryProducts)
	e.GET("/check-pincode", d.Delivery.CheckPincode)
	e.POST("/set-delivery-pincode", d.Delivery.SetPincode)

	// Accounts
	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout)
	e.POST("/vendor/signup", d.Vendor.Signup)

	// Customer surface
	customer := e.Group("", d.Tokens.AutoRefreshMiddleware)
	customer.GET("/cart", d.Cart.GetCart)
	customer.POST("/add-to-cart/:slug", d.Cart.AddToCart)
	customer.POST("/update-cart/:id/:action", d.Cart.UpdateCart)
	customer.DELETE("/remove-from-cart/:id", d.Cart.RemoveFromCart)
	customer.POST("/process-checkout", d.Checkout.ProcessCheckout)
	customer.GET("/track-orders", d.Checkout.TrackOrders)

	// Vendor surface; the approval gate itself runs inside each handler so
	// pending vendors still reach their status notice.
	vendor := e.Group("/vendor", d.Tokens.AutoRefreshMiddleware)
	vendor.GET("/pending-approval", d.Vendor.PendingApproval)
	vendor.GET("/dashboard", d.Vendor.Dashboard)
	vendor.GET("/profile", d.Vendor.GetProfile)
	vendor.PUT("/profile", d.Vendor.UpdateProfile)

	vendor.GET("/products", d.VendorProducts.List)
	vendor.POST("/products", d.VendorProducts.Create)
	vendor.GET("/products/export-xlsx", d.VendorProducts.ExportXLSX)
	vendor.PUT("/products/:slug", d.VendorProducts.Update)
	vendor.DELETE("/products/:slug", d.VendorProducts.Delete)
	vendor.POST("/products/:slug/toggle", d.VendorProducts.Toggle)

	vendor.GET("/orders", d.VendorOrders.List)
	vendor.GET("/orders/:id", d.VendorOrders.Detail)
	vendor.POST("/orders/:id/update-status", d.VendorOrders.UpdateStatus)

	vendor.GET("/earnings", d.Earnings.Report)
	vendor.GET("/earnings/export-csv", d.Earnings.ExportCSV)
	vendor.GET("/earnings/export-xlsx", d.Earnings.ExportXLSX)

	// Admin backoffice
	admin := e.Group("/admin", d.Tokens.AutoRefreshMiddleware, service.RequireRole("admin"))
	admin.GET("/vendors/pending", d.Admin.PendingVendors)
	admin.POST("/vendors/:id/approve", d.Admin.Approve)
	admin.POST("/vendors/:id/reject", d.Admin.Reject)
}
