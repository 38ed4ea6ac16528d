package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"parking-discount/internal/config"
	"parking-discount/internal/discount"
	"parking-discount/internal/handlers"
	"parking-discount/internal/logger"
	"parking-discount/internal/services"
)

// Фабричные функции (подменяемые в тестах).
var (
	loadConfig = config.Load
	newLogger  = logger.New
	loadStores = config.LoadStoresFile
)

// application агрегирует собранные зависимости.
type application struct {
	cfg    *config.Config
	log    *logger.Logger
	server *http.Server
}

func main() {
	app, err := buildApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build app: %v\n", err)
		os.Exit(1)
	}
	app.log.Info("Starting parking discount server...")

	go func() {
		app.log.WithField("address", app.server.Addr).Info("HTTP server starting")
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	app.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(app.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := app.server.Shutdown(ctx); err != nil {
		app.log.WithError(err).Error("Server forced to shutdown")
	}
	app.log.Info("Server exited")
}

// buildApplication загружает каталог магазинов и собирает HTTP сервер.
func buildApplication() (*application, error) {
	cfg := loadConfig()
	log := newLogger(&cfg.Logger)

	loc, err := cfg.Allocation.Location()
	if err != nil {
		return nil, err
	}

	stores, err := loadStores(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	registry, err := discount.BuildRegistry(stores, log)
	if err != nil {
		return nil, fmt.Errorf("build store registry: %w", err)
	}
	log.WithField("stores", registry.StoreIDs()).Info("Store catalog loaded")

	allocationService := services.NewAllocationService(registry, log, loc)

	allocationHandler := handlers.NewAllocationHandler(allocationService, log)
	healthHandler := handlers.NewHealthHandler(allocationService)

	router := handlers.NewRouter(allocationHandler, healthHandler, cfg.Server.AllowedOrigins, log)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return &application{
		cfg:    cfg,
		log:    log,
		server: server,
	}, nil
}
