package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwrk-planet/activities/config"
	"github.com/cwrk-planet/activities/internal/metrics"
	"github.com/cwrk-planet/activities/internal/service"
	"github.com/cwrk-planet/activities/internal/store"
	httpx "github.com/cwrk-planet/activities/internal/transport/http"
	"github.com/cwrk-planet/activities/internal/transport/ws"
	"github.com/cwrk-planet/activities/pkg/logger"
	"github.com/cwrk-planet/activities/web"
)

func main() {
	// --- config ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	l := logger.Init(cfg.LoggerConfig())
	l.Info("starting activities-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	if err := run(cfg, l); err != nil {
		l.Error("activities-service stopped with error", "err", err)
		os.Exit(1)
	}
	l.Info("stopped")
}

func run(cfg *config.Config, l *slog.Logger) error {
	// --- store ---
	seed := store.DefaultActivities()
	if cfg.Activities.SeedFile != "" {
		var err error
		if seed, err = store.LoadSeedFile(cfg.Activities.SeedFile); err != nil {
			return err
		}
	}
	activities, err := store.NewMemoryStore(seed)
	if err != nil {
		return err
	}
	l.Info("activities seeded", "count", len(seed), "seed_file", cfg.Activities.SeedFile)

	// --- metrics ---
	reg, err := metrics.NewRegistry()
	if err != nil {
		return err
	}

	// --- service & feed ---
	hub := ws.NewHub()
	svc := service.NewActivityService(activities, hub, reg, l)
	if err := svc.Init(context.Background()); err != nil {
		return err
	}
	wsServer := ws.NewServer(hub, svc, cfg.WS.PingInterval)

	// --- HTTP ---
	router := httpx.NewRouter(httpx.Deps{
		Handler:        httpx.NewHandler(svc),
		WS:             wsServer.HandleWS,
		Metrics:        reg.Handler(),
		Static:         web.Static(),
		Logger:         l,
		Origins:        cfg.HTTP.AllowedOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		l.Info("shutdown signal")
	case err := <-errCh:
		return err
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(ctxShutdown)
}

var (
	_ service.RosterNotifier = (*ws.Hub)(nil)
	_ ws.ActivityGetter      = (*service.ActivityService)(nil)
	_ httpx.ActivityService  = (*service.ActivityService)(nil)
)
