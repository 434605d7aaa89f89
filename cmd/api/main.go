package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/example/watchhaven/internal/api"
	"github.com/example/watchhaven/internal/auth"
	"github.com/example/watchhaven/internal/command"
	"github.com/example/watchhaven/internal/config"
	"github.com/example/watchhaven/internal/domain/catalog"
	"github.com/example/watchhaven/internal/infrastructure/eventbus"
	"github.com/example/watchhaven/internal/infrastructure/kafka"
	"github.com/example/watchhaven/internal/infrastructure/kv"
	"github.com/example/watchhaven/internal/logging"
	"github.com/example/watchhaven/internal/media"
	"github.com/example/watchhaven/internal/newsletter"
	"github.com/example/watchhaven/internal/query"
	"github.com/example/watchhaven/internal/session"
	"github.com/example/watchhaven/internal/telemetry"
	log "github.com/sirupsen/logrus"
)

const (
	sessionSweepInterval = 10 * time.Minute
	sessionMaxIdle       = 24 * time.Hour
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Failed to load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	log.Info("[API] ========================================")
	log.Info("[API] WatchHaven Storefront")
	log.Info("[API] ========================================")
	log.Infof("[API] Flag store: %s", cfg.Store.Backend)
	log.Infof("[API] Kafka enabled: %v", cfg.Kafka.Enabled)
	log.Infof("[API] Admin auth enabled: %v", cfg.Auth.AuthEnabled())

	shutdownTracing, err := telemetry.Setup(cfg.Telemetry, os.Stdout)
	if err != nil {
		log.Fatalf("[API] Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("[API] Tracing shutdown failed")
		}
	}()

	// Event stream: Kafka when enabled, otherwise events are only logged
	var publisher eventbus.Publisher = eventbus.LogPublisher{}
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
		log.Infof("[API] Kafka: %v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	bus := eventbus.NewBus(publisher)

	seed, err := catalog.LoadSeed()
	if err != nil {
		log.Fatalf("[API] Failed to load seed catalog: %v", err)
	}
	catalogStore := catalog.NewStore(bus, seed)
	log.Infof("[API] Catalog seeded with %d products", catalogStore.Len())

	sessions := session.NewManager(bus)

	flags, err := kv.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("[API] Failed to open flag store: %v", err)
	}
	defer flags.Close()

	resolver := media.NewResolver(cfg.Media)
	defer resolver.Close()

	cmdHandler := command.NewHandler(catalogStore, sessions)
	queryHandler := query.NewHandler(catalogStore, sessions)
	handlers := api.NewHandlers(
		cmdHandler,
		queryHandler,
		newsletter.NewService(flags, cfg.Newsletter.PopupDelay),
		resolver,
		api.Options{
			ShareBaseURL:  cfg.Server.ShareBaseURL,
			MaxImageBytes: cfg.Media.MaxImageBytes,
		},
	)

	var jwtService *auth.JWTService
	var authHandlers *api.AuthHandlers
	if cfg.Auth.AuthEnabled() {
		jwtService = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
		authHandlers = api.NewAuthHandlers(auth.NewAuthenticator(cfg.Auth.PasswordHash, jwtService))
	} else {
		log.Warn("[API] auth.password_hash is not set; admin routes are open")
	}

	router := api.NewRouter(handlers, authHandlers, jwtService)
	if cfg.Telemetry.Enabled {
		router = telemetry.Middleware(cfg.Telemetry.ServiceName, "/health")(router)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions.RunSweeper(ctx, sessionSweepInterval, sessionMaxIdle)
	}()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("[API] Server started on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("[API] Graceful shutdown failed")
	}

	wg.Wait()
}
