// Package server sets up the HTTP server, router, and all route
// definitions. This is the composition root: the full dependency chain
// (DB → repositories → services → handlers) is wired in one place, and
// main.go stays minimal.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jmeier/smartfridge/internal/auth"
	"github.com/jmeier/smartfridge/internal/handler"
	"github.com/jmeier/smartfridge/internal/middleware"
	sqliteRepo "github.com/jmeier/smartfridge/internal/repository/sqlite"
	"github.com/jmeier/smartfridge/internal/service"
)

// Config holds server configuration. A struct (instead of parameters)
// means new options don't ripple through function signatures.
type Config struct {
	Port      int
	DBPath    string // path to the SQLite database file
	JWTSecret string // HMAC key for session tokens
	SeedDemo  bool   // insert demo data into an empty database
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown — skipping that can leave the WAL
// unflushed.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and wires the whole dependency graph:
// database → repositories → services → handlers → routes.
// Each layer only receives what it needs — services get repository
// interfaces, handlers get services, nothing reaches past its neighbour.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the dependency chain, and
// registers every route.
//
// Route map:
//
//	POST   /api/users                           register        (public)
//	POST   /api/users/login                     login           (public)
//	POST   /api/users/logout                    clear session
//	GET    /api/me                              current user
//	GET    /api/users/{id}                      user profile
//	PUT    /api/users/{username}                update account
//	DELETE /api/users/{username}                delete account (cascades)
//	POST   /api/fridges                         create fridge
//	GET    /api/users/{id}/fridges              list fridges
//	GET    /api/fridges/{id}                    get fridge
//	PUT    /api/fridges/{id}                    rename fridge
//	DELETE /api/fridges/{id}                    delete fridge (cascades)
//	GET    /api/fridges/{id}/contents           denormalized contents
//	POST   /api/fridges/{id}/stock              store product
//	DELETE /api/fridges/{id}/products/{productID}  remove stock (bulk)
//	PUT    /api/stock/{id}                      update stock entry
//	POST   /api/products                        create product
//	GET    /api/users/{id}/products             list products
//	GET    /api/products/{id}                   get product
//	PUT    /api/products/{id}                   update product
//	DELETE /api/products/{id}                   delete product (cascades)
//	GET    /api/users/{id}/dashboard            counts + previews
//	GET    /healthz                             liveness        (public)
func (s *Server) setupRoutes() error {
	// Global middleware, in order: real IP extraction, panic recovery,
	// then our request logger (which also assigns the request id).
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// Repositories share the one pool.
	userRepo := sqliteRepo.NewUserRepo(s.db)
	fridgeRepo := sqliteRepo.NewFridgeRepo(s.db)
	productRepo := sqliteRepo.NewProductRepo(s.db)
	stockRepo := sqliteRepo.NewStockRepo(s.db)

	userService := service.NewUserService(userRepo, passwords, tokens, s.logger)
	fridgeService := service.NewFridgeService(fridgeRepo, s.logger)
	productService := service.NewProductService(productRepo, s.logger)
	stockService := service.NewStockService(stockRepo, fridgeRepo, productRepo, s.logger)
	dashboardService := service.NewDashboardService(fridgeRepo, productRepo, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	fridgeHandler := handler.NewFridgeHandler(fridgeService, stockService, s.logger)
	productHandler := handler.NewProductHandler(productService, s.logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, s.logger)

	if s.config.SeedDemo {
		hash, err := passwords.Hash("geheim123")
		if err != nil {
			return fmt.Errorf("hashing demo password: %w", err)
		}
		if err := s.db.Seed(context.Background(), hash); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
		s.logger.Info("demo data seeded (if database was empty)")
	}

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public: anyone can register or log in.
		r.Post("/users", userHandler.HandleRegister)
		r.Post("/users/login", userHandler.HandleLogin)

		// Everything else requires a valid session cookie. The gate is
		// authentication only — handlers take explicit owner/container ids,
		// per the API contract.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Post("/users/logout", userHandler.HandleLogout)
			r.Get("/me", userHandler.HandleMe)
			r.Get("/users/{id}", userHandler.HandleGetByID)
			r.Put("/users/{username}", userHandler.HandleUpdate)
			r.Delete("/users/{username}", userHandler.HandleDelete)

			r.Post("/fridges", fridgeHandler.HandleCreate)
			r.Get("/users/{id}/fridges", fridgeHandler.HandleListByUser)
			r.Get("/fridges/{id}", fridgeHandler.HandleGetByID)
			r.Put("/fridges/{id}", fridgeHandler.HandleRename)
			r.Delete("/fridges/{id}", fridgeHandler.HandleDelete)
			r.Get("/fridges/{id}/contents", fridgeHandler.HandleContents)
			r.Post("/fridges/{id}/stock", fridgeHandler.HandleStore)
			r.Delete("/fridges/{id}/products/{productID}", fridgeHandler.HandleRemoveStock)
			r.Put("/stock/{id}", fridgeHandler.HandleUpdateStock)

			r.Post("/products", productHandler.HandleCreate)
			r.Get("/users/{id}/products", productHandler.HandleListByUser)
			r.Get("/products/{id}", productHandler.HandleGetByID)
			r.Put("/products/{id}", productHandler.HandleUpdate)
			r.Delete("/products/{id}", productHandler.HandleDelete)

			r.Get("/users/{id}/dashboard", dashboardHandler.HandleSummary)
		})
	})

	return nil
}

// Start runs the HTTP server and handles graceful shutdown:
//  1. Stop accepting new connections on SIGINT/SIGTERM
//  2. Wait up to 30s for in-flight requests
//  3. Close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Router exposes the configured router for tests that drive the full HTTP
// stack with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}
