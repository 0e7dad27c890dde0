//go:build !integration

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/config"
	"bitbucket.org/dropcars/vendor-gateway/internal/gateway"
	"bitbucket.org/dropcars/vendor-gateway/internal/logger"
	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
	"bitbucket.org/dropcars/vendor-gateway/internal/metrics"
	"bitbucket.org/dropcars/vendor-gateway/internal/session"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/caching"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/redisfactory"
	"bitbucket.org/dropcars/vendor-gateway/internal/web"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// serverApp serves until the server fails or a signal arrives on stop.
func serverApp(httpServer *http.Server, logger *zerolog.Logger, stop chan os.Signal) int {
	var shutdown atomic.Bool
	done := make(chan error, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		<-stop
		shutdown.Store(true)
		logger.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	// Notify stop channel if SIGINT or SIGTERM is received
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	err := <-done
	if err != nil && !shutdown.Load() {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.New("").Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.New(cfg.LogLevel)

	redisFactory, err := redisfactory.New(cfg.SessionsRedisURI, cfg.GroupingRedisURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to configure redis")
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	sessionsCache := caching.NewMemoryCache()
	if client := redisFactory.SessionsClient(); client != nil {
		sessionsCache = caching.NewRedisCache(client)
	} else {
		log.Warn().Msg("Sessions redis is not configured, order forms are kept in memory")
	}

	var groupingCache *caching.Cacher
	if client := redisFactory.GroupingClient(); client != nil {
		groupingCache = caching.NewRedisCache(client)
	}

	deps := gateway.Dependencies{
		Marketplace: marketplace.NewFactory(
			appMetrics,
			marketplace.WithBaseURL(cfg.MarketplaceURL),
			marketplace.WithTimeout(cfg.MarketplaceTimeout),
		),
		// a session stays locked for a quote and a confirm at most
		Sessions:      session.NewStore(sessionsCache, cfg.SessionTTL, 2*cfg.MarketplaceTimeout),
		GroupingCache: groupingCache,
		GroupingTTL:   cfg.DashboardCacheTTL,
		Metrics:       appMetrics,
		VendorID:      cfg.VendorID,
	}

	appRouter := web.SetupRouter(cfg, log, deps, prometheus.DefaultGatherer)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	code := serverApp(httpServer, log, make(chan os.Signal, 1))

	if err := redisFactory.Close(); err != nil {
		log.Error().Err(err).Msg("Unable to close redis connections")
	}

	os.Exit(code)
}
