package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry-be/internal/config"
	"laundry-be/internal/customer"
	"laundry-be/internal/dashboard"
	"laundry-be/internal/db"
	"laundry-be/internal/handler"
	"laundry-be/internal/item"
	"laundry-be/internal/logger"
	"laundry-be/internal/metrics"
	"laundry-be/internal/middleware"
	"laundry-be/internal/order"
	"laundry-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

const shutdownTimeout = 10 * time.Second

type handlers struct {
	auth      *handler.AuthHandler
	cashiers  *handler.CashierHandler
	customers *handler.CustomerHandler
	items     *handler.ItemHandler
	orders    *handler.OrderHandler
	dashboard *handler.DashboardHandler
	metrics   *metrics.Metrics
	limiter   *middleware.RateLimiter
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	addr := ":" + cfg.AppPort
	logger.L().Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.AppEnv),
		zap.String("ironing_rate", cfg.IroningRate.String()),
	)
	return startServerFunc(addr, newServer(cfg, database))
}

// newServer wires repositories, services and handlers. Every write to
// customers, items or orders drops the cached dashboard.
func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	m := metrics.New()

	dashSvc := dashboard.NewService(dashboard.NewRepository(database), cfg.IroningRate, cfg.DashboardCacheTTL)
	invalidate := dashSvc.Invalidate

	customerSvc := customer.NewService(customer.NewRepository(database), customer.WithChangeHook(invalidate))
	itemSvc := item.NewService(item.NewRepository(database), item.WithChangeHook(invalidate))
	orderSvc := order.NewService(
		order.NewRepository(database),
		customerSvc,
		order.NewPricer(itemSvc, cfg.IroningRate),
		order.WithChangeHook(invalidate),
		order.WithRecorder(m),
	)
	userSvc := user.NewService(user.NewRepository(database), cfg.AdminSecretKey)

	return setupRouter(cfg, handlers{
		auth:      handler.NewAuthHandler(userSvc, cfg.CookieSecure),
		cashiers:  handler.NewCashierHandler(userSvc),
		customers: handler.NewCustomerHandler(customerSvc),
		items:     handler.NewItemHandler(itemSvc),
		orders:    handler.NewOrderHandler(orderSvc),
		dashboard: handler.NewDashboardHandler(dashSvc),
		metrics:   m,
		limiter:   middleware.NewRateLimiter(cfg.ServiceKey),
	})
}

func setupRouter(cfg *config.Config, h handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(
		logger.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		chimw.Recoverer,
		middleware.Metrics(h.metrics),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", h.metrics.Handler())

	protected := chi.Chain(middleware.AuthMiddleware, middleware.RequireAuth, h.limiter.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// No session middleware here, so a stale cookie cannot block login.
			r.Group(func(r chi.Router) {
				r.Use(h.limiter.Middleware)
				h.auth.RegisterPublicRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(protected...)
				h.auth.RegisterRoutes(r)
				r.With(middleware.AdminOnly).Route("/cashiers", h.cashiers.RegisterRoutes)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(protected...)

			r.With(middleware.AdminOnly).Route("/cashiers", h.cashiers.RegisterRoutes)
			r.Route("/customers", h.customers.RegisterRoutes)
			r.Route("/items", h.items.RegisterRoutes)
			r.With(middleware.AdminOnly).Get("/dashboard", h.dashboard.Stats)

			r.Route("/orders/{kind}", h.orders.RegisterRoutes)
			r.Route("/laundry", h.orders.KindRoutes(order.KindLaundry))
			r.Route("/ironing", h.orders.KindRoutes(order.KindIroning))
		})
	})

	return r
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight
// requests.
func startServer(addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
