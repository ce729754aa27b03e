package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mkrishnan-dev/quickbasket/internal/config"
	"github.com/mkrishnan-dev/quickbasket/internal/httpserver"
	"github.com/mkrishnan-dev/quickbasket/internal/logging"
	"github.com/mkrishnan-dev/quickbasket/internal/metrics"
	"github.com/mkrishnan-dev/quickbasket/internal/middleware/csrf"
	"github.com/mkrishnan-dev/quickbasket/internal/mykafka"
	"github.com/mkrishnan-dev/quickbasket/internal/repo"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events will not be published")
	}

	m := metrics.New()

	carts := &repo.CartRepo{DB: db}
	catalog := &repo.CatalogRepo{DB: db}
	vendors := &repo.VendorRepo{DB: db}
	orders := &repo.OrderRepo{DB: db}

	tokens := &service.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}
	catalogSvc := &service.CatalogService{Catalog: catalog}
	deliverySvc := &service.DeliveryService{Vendors: vendors}
	cartSvc := &service.CartService{Carts: carts, Catalog: catalog, Vendors: vendors}
	checkoutSvc := &service.CheckoutService{DB: db}
	fulfillmentSvc := &service.FulfillmentService{Orders: orders}
	earningsSvc := &service.EarningsService{Orders: orders}
	vendorSvc := &service.VendorService{DB: db, Vendors: vendors, Orders: orders, Catalog: catalog}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Use(csrf.Middleware(csrf.Config{
		Secure:    false, // enable in production
		SkipPaths: []string{"/health/live", "/health/ready", "/metrics"},
	}))

	deps := httpserver.Deps{
		DB:             db,
		Tokens:         tokens,
		Metrics:        m,
		AuthHandler:    &httpserver.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		CatalogHandler: &httpserver.CatalogHandler{Svc: catalogSvc},
		Delivery:       &httpserver.DeliveryHandler{Svc: deliverySvc},
		Cart:           &httpserver.CartHandler{Svc: cartSvc, Producer: prod},
		Checkout:       &httpserver.CheckoutHandler{Svc: checkoutSvc, Producer: prod, Metrics: m},
		Vendor:         &httpserver.VendorHandler{Svc: vendorSvc, Producer: prod},
		VendorProducts: &httpserver.VendorProductHandler{Svc: catalogSvc, Vendors: vendorSvc},
		VendorOrders:   &httpserver.VendorOrderHandler{Svc: fulfillmentSvc, Vendors: vendorSvc, Producer: prod, Metrics: m},
		Earnings:       &httpserver.EarningsHandler{Svc: earningsSvc, Vendors: vendorSvc},
		Admin:          &httpserver.AdminHandler{Svc: vendorSvc, Producer: prod},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", configuration.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db handle error", "error", err)
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
