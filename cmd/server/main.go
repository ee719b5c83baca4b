package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/moodlens/internal/analysis"
	"github.com/pscheid92/moodlens/internal/bot"
	"github.com/pscheid92/moodlens/internal/config"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/feed"
	"github.com/pscheid92/moodlens/internal/history"
	"github.com/pscheid92/moodlens/internal/logging"
	"github.com/pscheid92/moodlens/internal/sentiment"
	"github.com/pscheid92/moodlens/internal/server"
	goredis "github.com/redis/go-redis/v9"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupHistory(ctx context.Context, cfg *config.Config) (domain.HistoryStore, func()) {
	switch cfg.HistoryBackend {
	case config.BackendSQLite:
		store, err := history.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			slog.Error("Failed to open SQLite history", "error", err, "path", cfg.SQLitePath)
			os.Exit(1)
		}
		return store, func() { _ = store.Close() }

	case config.BackendRedis:
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("Failed to parse Redis URL", "error", err)
			os.Exit(1)
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		return history.NewRedisStore(client), func() { _ = client.Close() }

	default:
		return history.NewMemoryStore(), func() {}
	}
}

func runGracefulShutdown(srv *server.Server, hub *feed.Hub, stopEviction func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()
		stopEviction()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "history_backend", cfg.HistoryBackend)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, closeStore := setupHistory(ctx, cfg)
	cancel()
	defer closeStore()

	scorer := sentiment.NewDefaultScorer()
	cached := sentiment.NewCachedScorer(scorer, cfg.CacheTTL, clock)
	stopEviction := cached.StartEvictionTimer(1 * time.Minute)

	aggregator := sentiment.NewAggregator(cached, domain.DefaultThresholds())
	analyzer := analysis.NewAnalyzer(cached)
	responder := bot.NewResponder(rand.New(rand.NewSource(time.Now().UnixNano())))
	hub := feed.NewHub()

	srv := server.NewServer(cfg, cached, aggregator, analyzer, responder, store, hub)

	done := runGracefulShutdown(srv, hub, stopEviction)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
