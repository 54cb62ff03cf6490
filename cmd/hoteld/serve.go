package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Ferxas/chris-hotel-web-app/config"
	"github.com/Ferxas/chris-hotel-web-app/internal/api"
	"github.com/Ferxas/chris-hotel-web-app/internal/db"
	"github.com/Ferxas/chris-hotel-web-app/internal/feed"
	"github.com/Ferxas/chris-hotel-web-app/internal/mw"
	"github.com/Ferxas/chris-hotel-web-app/internal/notification"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
)

func migrate(logger *log.Logger, cfg *config.Config) error {
	gormDB, err := db.Open(&cfg.Database)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	logger.Println("migrations applied")
	return nil
}

func serve(logger *log.Logger, cfg *config.Config) error {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	responseCache := mw.NewResponseCache(time.Duration(cfg.Server.CacheTTLSeconds) * time.Second)
	hub := feed.NewHub(nil)
	appStore := store.NewGormStore(gormDB, store.ChangeListeners{responseCache, hub})
	logger.Println("data store initialized")

	// Push delivery: Expo for mobile tokens, Web Push for browser subscriptions.
	gateway := &notification.RoutingGateway{
		Mobile: notification.NewExpoGateway(cfg.Push.GatewayURL, cfg.Push.Timeout),
	}
	vapidPublicKey := ""
	if cfg.Push.WebPushEnabled() {
		gateway.WebPush = notification.NewWebPushGateway(&webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		})
		vapidPublicKey = cfg.Push.PublicKey
	} else {
		logger.Println("VAPID keys are not configured; browser registrations will not receive pushes")
	}
	pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gateway)
	pool.Start(ctx)
	trigger := notification.NewTrigger(pool, cfg.Push.Title, cfg.Push.Sound)

	services := api.NewServices(appStore, trigger)
	for topic, loader := range api.LiveLoaders(services) {
		hub.Handle(topic, loader)
	}
	if cfg.Feed.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Feed.RedisAddr,
			Password: cfg.Feed.RedisPassword,
			DB:       cfg.Feed.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Feed.RedisAddr, err)
		}
		relay := feed.NewRedisRelay(rdb, cfg.Feed.Channel)
		hub.SetRelay(relay)
		go relay.Run(ctx, remoteListeners(responseCache, hub).Changed)
	}
	go hub.Run(ctx)

	// Initialize router
	handler := api.NewHandler(services, hub, vapidPublicKey)
	router := api.NewRouter(handler, cfg.Server, responseCache)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Println("Shutdown signal received, stopping services...")
	case err := <-serverErr:
		return fmt.Errorf("HTTP server ListenAndServe: %w", err)
	}

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}

	logger.Println("Server gracefully stopped")
	return nil
}

// remoteListeners receives changes made by other instances. They refresh the
// local cache and feed but are not published again.
func remoteListeners(responseCache *mw.ResponseCache, hub *feed.Hub) store.ChangeListener {
	return store.ChangeListeners{responseCache, store.ChangeListenerFunc(hub.Notify)}
}
