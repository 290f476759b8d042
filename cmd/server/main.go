package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"typedrill/internal/access"
	"typedrill/internal/config"
	"typedrill/internal/database"
	"typedrill/internal/handlers"
	"typedrill/internal/models"
	"typedrill/internal/repository"
	"typedrill/internal/security"
	"typedrill/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open the store backend (in-memory by default, SQL when configured)
	stores, closeStores, err := openStores(cfg)
	if err != nil {
		log.Fatalf("Failed to open store backend: %v", err)
	}
	defer closeStores()

	log.Printf("Store backend ready (backend: %s)", cfg.StoreBackend)

	// Initialize access control
	accessCtl := access.NewController(stores.Roles)

	// Initialize email notifications (disabled unless configured)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.NotifyFromEmail, cfg.NotifyToEmail, cfg.EmailDebug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(stores.Users, accessCtl, emailService)
	passageService := service.NewPassageService(stores.Passages)
	resultService := service.NewResultService(stores.Results)
	bootstrapService := service.NewBootstrapService(stores.Users, stores.Passages, accessCtl, cfg.AdminMobile, cfg.AdminPassword)

	// Seed sample passages on startup when configured
	if cfg.SeedOnStart {
		if err := bootstrapService.SeedPassages(context.Background()); err != nil {
			log.Printf("Warning: Failed to seed passages: %v", err)
		}
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	defer limiter.Stop()

	middleware := handlers.NewMiddleware(accessCtl, cfg.PlatformTokenSecret, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	passageHandler := handlers.NewPassageHandler(passageService)
	resultHandler := handlers.NewResultHandler(resultService)
	adminHandler := handlers.NewAdminHandler(bootstrapService, accessCtl)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Account routes
	mux.HandleFunc("POST /api/register", middleware.RateLimit(middleware.WithIdentity(authHandler.Register)))
	mux.HandleFunc("POST /api/login", middleware.RateLimit(middleware.WithIdentity(authHandler.Login)))
	mux.HandleFunc("GET /api/session/check", middleware.WithIdentity(authHandler.CheckSession))
	mux.HandleFunc("POST /api/logout", middleware.WithIdentity(authHandler.Logout))

	// Profile routes
	mux.HandleFunc("GET /api/profile", middleware.RequireCapability(models.RoleUser, authHandler.GetCallerProfile))
	mux.HandleFunc("PUT /api/profile", middleware.RequireCapability(models.RoleUser, authHandler.SaveProfile))
	mux.HandleFunc("GET /api/users/{identity}", middleware.WithIdentity(authHandler.GetUserProfile))

	// Passage routes
	mux.HandleFunc("GET /api/passages", middleware.RequireCapability(models.RoleUser, passageHandler.List))
	mux.HandleFunc("POST /api/passages", middleware.RequireCapability(models.RoleAdmin, passageHandler.Create))
	mux.HandleFunc("PUT /api/passages/{id}", middleware.RequireCapability(models.RoleAdmin, passageHandler.Update))
	mux.HandleFunc("DELETE /api/passages/{id}", middleware.RequireCapability(models.RoleAdmin, passageHandler.Delete))

	// Result routes
	mux.HandleFunc("POST /api/results", middleware.RequireCapability(models.RoleUser, resultHandler.Submit))
	mux.HandleFunc("GET /api/results", middleware.RequireCapability(models.RoleUser, resultHandler.List))

	// Admin routes. Role assignment gates itself through the access
	// controller so the first-admin bootstrap can go through.
	mux.HandleFunc("POST /api/admin/seed", middleware.RequireCapability(models.RoleAdmin, adminHandler.SeedData))
	mux.HandleFunc("POST /api/admin/ensure-admin", middleware.RequireCapability(models.RoleAdmin, adminHandler.EnsureAdmin))
	mux.HandleFunc("POST /api/admin/roles", middleware.WithIdentity(adminHandler.AssignRole))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// openStores builds the configured store bundle and returns a close
// function for the underlying resources.
func openStores(cfg *config.Config) (repository.Stores, func(), error) {
	if cfg.StoreBackend == "memory" {
		return repository.NewMemoryStores(), func() {}, nil
	}

	db, err := database.Open(cfg.StoreBackend, database.DialectConfig{
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		return repository.Stores{}, nil, err
	}

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return repository.Stores{}, nil, err
	}

	log.Println("Migrations completed successfully")

	return repository.NewSQLStores(db), func() { db.Close() }, nil
}
