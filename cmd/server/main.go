// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"syndik/internal/account"
	"syndik/internal/audit"
	"syndik/internal/condominium"
	"syndik/internal/notify"
	"syndik/internal/person"
	"syndik/internal/platform/config"
	"syndik/internal/platform/httpserver"
	"syndik/internal/platform/logger"
	"syndik/internal/platform/metrics"
	"syndik/internal/platform/redisclient"
	"syndik/internal/platform/token"
	"syndik/internal/storage"
	httptransport "syndik/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}
	store = storage.WithEviction(store, cfg.Storage.EvictCount)

	notifier, closeNotifier, err := buildNotifier(cfg.Notifier, log)
	if err != nil {
		return err
	}
	if closeNotifier != nil {
		defer closeNotifier()
	}

	m := metrics.New()
	recorder := audit.NewRecorder(store, notifier,
		audit.WithLogger(log),
		audit.WithMetrics(m),
	)

	tokens := token.NewManager(cfg.JWTSigningKey, cfg.TokenTTL)
	accounts := account.NewService(store, recorder, tokens, log)
	condos := condominium.NewService(store, recorder, log)
	people := person.NewService(store, recorder, log)

	if seeded, err := account.SeedBootstrap(ctx, store, cfg.BootstrapSecret); err != nil {
		return fmt.Errorf("seed bootstrap account: %w", err)
	} else if seeded != nil {
		log.Info("seeded bootstrap administrator", "email", seeded.Email)
	}

	handler := httptransport.NewHandler(accounts, condos, people, store, tokens, m, log)
	apiSrv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting syndik API", "addr", cfg.Addr, "storage", cfg.Storage.Backend)
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics listener", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildStore(ctx context.Context, cfg config.Storage) (storage.Store, func(), error) {
	switch cfg.Backend {
	case "memory":
		var opts []storage.MemoryOption
		if cfg.QuotaBytes > 0 {
			opts = append(opts, storage.WithQuota(cfg.QuotaBytes))
		}
		return storage.NewMemory(opts...), nil, nil
	case "file":
		s, err := storage.NewFile(cfg.DataDir)
		return s, nil, err
	case "redis":
		client, err := redisclient.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, ""), func() { _ = client.Close() }, nil
	case "postgres":
		s, err := storage.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func buildNotifier(cfg config.Notifier, log *slog.Logger) (audit.Notifier, func(), error) {
	switch cfg.Kind {
	case "log":
		return notify.NewLog(log), nil, nil
	case "kafka":
		k, err := notify.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		return k, k.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown notifier %q", cfg.Kind)
	}
}
