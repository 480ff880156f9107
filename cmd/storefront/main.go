package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/cart"
	"github.com/orchid-shop/storefront/internal/config"
	"github.com/orchid-shop/storefront/internal/events"
	"github.com/orchid-shop/storefront/internal/httpserver"
	"github.com/orchid-shop/storefront/internal/logging"
	"github.com/orchid-shop/storefront/internal/models"
	"github.com/orchid-shop/storefront/internal/notify"
	"github.com/orchid-shop/storefront/internal/session"
	"github.com/orchid-shop/storefront/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.Open(initCtx, cfg.StateDBPath)
	cancel()
	if err != nil {
		log.Fatalf("state db init error: %v", err)
	}

	sessions := session.NewManager(store, logger)
	apiClient := api.NewClient(cfg.APIBaseURL, sessions)
	sessions.SetAuthenticator(apiClient)

	notices := notify.NewCenter()
	cartManager := cart.NewManager(store, notices)
	producer := events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic, logger)

	// the cart follows every identity transition, including the initial one
	sessions.OnIdentityChange(func(id models.Identity) {
		if err := cartManager.Reconcile(id); err != nil {
			logger.Error("cart reconcile failed", "error", err)
		}
	})
	sessions.Init()

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Sessions: sessions,
		Cart:     cartManager,
		API:      apiClient,
		Notices:  notices,
		Events:   producer,
	})

	go func() {
		logger.Info("starting storefront", "port", cfg.ServerPort, "api", cfg.APIBaseURL)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("producer close", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("state db close", "error", err)
	}

	logger.Info("stopped")
}
