package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"burger-palace-api/cart"
	"burger-palace-api/catalog"
	"burger-palace-api/config"
	"burger-palace-api/handlers"
	"burger-palace-api/logger"
	"burger-palace-api/orders"
	"burger-palace-api/reservation"
	"burger-palace-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("burger-palace-api", cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("service stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	snapshots, users, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer snapshots.Close()
	log.Info("store ready", slog.String("driver", cfg.StoreDriver))

	publisher, err := config.OpenPublisher(cfg)
	if err != nil {
		return fmt.Errorf("failed to open event publisher: %w", err)
	}
	defer publisher.Close()
	log.Info("event publisher ready", slog.String("driver", cfg.EventsDriver))

	orderManager := orders.NewManager(snapshots, publisher, log)
	if err := orderManager.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore orders: %w", err)
	}
	allocator := reservation.NewAllocator(snapshots, publisher, log,
		reservation.WithTotalTables(cfg.TotalTables))
	if err := allocator.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore reservations: %w", err)
	}

	h := &handlers.Handler{
		Catalog:       catalog.Default(),
		Carts:         cart.NewRegistry(snapshots, log),
		Orders:        orderManager,
		Reservations:  allocator,
		Users:         users,
		JWTSecret:     []byte(cfg.JWTSecret),
		PublicBaseURL: cfg.PublicBaseURL,
		Logger:        log,
	}

	if cfg.AdminEmail != "" {
		if err := h.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		log.Info("admin account ready", slog.String("email", cfg.AdminEmail))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(h, log, cfg.AllowOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
