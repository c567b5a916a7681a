package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ftmlabs/directory-api/internal/auth"
	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/db"
	httpx "github.com/ftmlabs/directory-api/internal/http"
	"github.com/ftmlabs/directory-api/internal/http/validation"
	"github.com/ftmlabs/directory-api/internal/media"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// .env is a local-dev convenience, absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// logger with trace correlation
	log := observability.NewLogger(cfg.Env)
	log = slog.New(observability.NewTraceHandler(log.Handler()))
	slog.SetDefault(log)

	// tracing is optional, only wired when an endpoint is configured
	var shutdownTracer func()

	if cfg.OTLPEndpoint != "" {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		shutdown, err := observability.InitTracer(ctx, "directory-api", cfg.OTLPEndpoint)
		cancel()

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			shutdownTracer = func() {
				sctx, scancel := config.WithTimeout(5 * time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}
		}
	}

	if err := validation.Register(); err != nil {
		log.Error("validator registration failed", "err", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	mctx, mcancel := config.WithTimeout(30 * time.Second)
	err = postgres.Migrate(mctx, cfg.DBURL, log)
	mcancel()

	if err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	sctx, scancel := config.WithTimeout(5 * time.Second)
	err = db.EnsureSuperadmin(sctx, pool, cfg)
	scancel()

	if err != nil {
		log.Error("superadmin bootstrap failed", "err", err)
		os.Exit(1)
	}

	denylist := auth.NewDenylist(auth.DenylistConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	defer denylist.Close()

	pctx, pcancel := config.WithTimeout(2 * time.Second)
	if err := denylist.Ping(pctx); err != nil {
		// revocation degrades to best effort without redis
		log.Warn("redis unreachable, token revocation disabled", "err", err)
	}
	pcancel()

	mediaStore, err := media.NewStore(cfg.MediaDir, cfg.PublicBaseURL)

	if err != nil {
		log.Error("media store init failed", "err", err)
		os.Exit(1)
	}

	jwtManager := auth.NewManager(cfg.PrivateKey, cfg.TokenTTL)
	prom := observability.NewProm(prometheus.DefaultRegisterer)

	router := httpx.NewRouter(cfg, pool, denylist, jwtManager, mediaStore, prom)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		if shutdownTracer != nil {
			shutdownTracer()
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
