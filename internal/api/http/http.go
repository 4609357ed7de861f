// Package http exposes the service over a chi REST surface mirroring
// the reporting and management operations of the store.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/apisrv/auth"
	"github.com/invtrack/inventory-manager/internal/dependency"
)

// Config contains the configuration for the http server.
type Config struct {
	Address        string        `mapstructure:"address"`
	Port           string        `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Server wires the repository and auth service into an http listener.
type Server struct {
	c    *Config
	repo dependency.Repository
	auth *auth.Server
	srv  *http.Server
}

func New(c *Config, repo dependency.Repository, authSrv *auth.Server) *Server {
	return &Server{
		c:    c,
		repo: repo,
		auth: authSrv,
	}
}

// Start begins serving and returns immediately. Errors from the
// listener surface on the returned channel.
func (s *Server) Start(ctx context.Context) <-chan error {
	timeout := s.c.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.c.Address, s.c.Port),
		Handler:           s.router(timeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) router(timeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/health", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.login)

		// read surface
		r.Group(func(r chi.Router) {
			r.Get("/products", s.listProducts)
			r.Get("/products/search", s.searchProducts)
			r.Get("/products/{id}", s.getProduct)

			r.Get("/inventory", s.listInventory)
			r.Get("/inventory/low-stock", s.listLowStock)
			r.Get("/inventory/{productId}", s.getInventoryByProduct)

			r.Get("/customers", s.listCustomers)
			r.Get("/customers/vip", s.listVIPCustomers)
			r.Get("/customers/search", s.searchCustomers)
			r.Get("/customers/{id}", s.getCustomer)
			r.Get("/customers/{id}/orders", s.getCustomerOrders)

			r.Get("/suppliers", s.listSuppliers)
			r.Get("/suppliers/performance", s.supplierPerformance)
			r.Get("/suppliers/search", s.searchSuppliers)
			r.Get("/suppliers/{id}", s.getSupplier)

			r.Get("/orders", s.listOrders)
			r.Get("/orders/summary", s.orderSummary)
			r.Get("/orders/status", s.orderStatusList)
			r.Get("/orders/{id}", s.getOrder)
			r.Get("/orders/{id}/items", s.getOrderItems)

			r.Get("/shipments", s.listShipments)
			r.Get("/shipments/late", s.listLateShipments)
			r.Get("/shipments/{id}", s.getShipment)

			r.Get("/payments", s.listPayments)
			r.Get("/payments/analysis", s.paymentAnalysis)
			r.Get("/payments/{id}", s.getPayment)

			r.Get("/analytics/sales", s.salesByPeriod)
			r.Get("/analytics/products", s.productRollup)
			r.Get("/analytics/customers", s.customerRollup)
			r.Get("/analytics/suppliers", s.supplierRollup)
			r.Get("/analytics/trends", s.monthlyTrend)

			r.Get("/dashboard", s.dashboardSummary)
			r.Get("/dashboard/overview", s.dashboardOverview)
			r.Get("/dashboard/monthly", s.dashboardMonthly)
			r.Get("/dashboard/top-products", s.dashboardTopProducts)
			r.Get("/dashboard/top-customers", s.dashboardTopCustomers)
		})

		// mutating surface, token required
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.auth.JwtAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/products", s.addProduct)
			r.Put("/products/{id}", s.updateProduct)
			r.Delete("/products/{id}", s.deleteProduct)

			r.Put("/inventory/{productId}", s.setInventoryQuantity)

			r.Post("/customers", s.addCustomer)
			r.Put("/customers/{id}", s.updateCustomer)
			r.Delete("/customers/{id}", s.deleteCustomer)

			r.Post("/suppliers", s.addSupplier)
			r.Put("/suppliers/{id}", s.updateSupplier)
			r.Delete("/suppliers/{id}", s.deleteSupplier)

			r.Post("/orders", s.createOrder)
			r.Put("/orders/{id}", s.updateOrder)
			r.Delete("/orders/{id}", s.deleteOrder)

			r.Post("/shipments", s.createShipment)
			r.Put("/shipments/{id}", s.updateShipment)
			r.Delete("/shipments/{id}", s.deleteShipment)

			r.Post("/payments", s.addPayment)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		renderError(w, r, fmt.Errorf("store unreachable: %w", err))
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}
