package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/access"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/auth"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/cache"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/config"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/handlers"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Init DB
	db, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		slog.Error("Failed to initialize store", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Tokens
	tokenOpts := []auth.Option{auth.WithTTL(cfg.TokenTTL)}
	var denylist *auth.Denylist
	if cfg.TokenRevocation {
		denylist = auth.NewDenylist(time.Now)
		tokenOpts = append(tokenOpts, auth.WithDenylist(denylist))
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret, tokenOpts...)
	if err != nil {
		slog.Error("Failed to initialize token service", "error", err)
		os.Exit(1)
	}

	// 4. Statistics cache
	var backend cache.Backend = cache.NewMemory(nil)
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		backend = rdb
		slog.Info("Using redis for statistics cache")
	}
	stats := cache.NewStatsCache(backend, cfg.StatsTTL, db.Statistics)

	// 5. Templates
	templates := handlers.NewTemplateCache()
	if err := templates.LoadEmbedded(); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	rateLimiter := handlers.NewRateLimiter(cfg.LoginRatePerMin, cfg.LoginBurst)

	router := handlers.NewRouter(handlers.Deps{
		Store:            db,
		Tokens:           tokens,
		Stats:            stats,
		Templates:        templates,
		RateLimiter:      rateLimiter,
		Gate:             access.NewGate(tokens, access.Options{AllowUnverifiedDashboard: cfg.AllowUnverifiedDashboard}),
		CookieSecure:     cfg.CookieSecure,
		AllowAdminSignup: cfg.AllowAdminSignup,
	})
	if cfg.AllowUnverifiedDashboard {
		slog.Warn("Role dashboards are served without token verification")
	}

	// 6. Background maintenance
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", func() {
		if n := rateLimiter.Cleanup(10 * time.Minute); n > 0 {
			slog.Debug("Pruned idle rate limiter entries", "count", n)
		}
	}); err != nil {
		slog.Error("Failed to schedule rate limiter cleanup", "error", err)
		os.Exit(1)
	}
	if denylist != nil {
		if _, err := scheduler.AddFunc("@every 15m", func() {
			if n := denylist.Purge(); n > 0 {
				slog.Debug("Purged expired revoked tokens", "count", n, "remaining", denylist.Len())
			}
		}); err != nil {
			slog.Error("Failed to schedule denylist purge", "error", err)
			os.Exit(1)
		}
	}
	scheduler.Start()

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-scheduler.Stop().Done()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
