package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"mosaic-hq/configurator/pkg/catalog"
	"mosaic-hq/configurator/pkg/catalog/source"
	"mosaic-hq/configurator/pkg/config"
	"mosaic-hq/configurator/pkg/session"
	"mosaic-hq/configurator/pkg/telemetry/metrics"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the configurator service",
	Long: `Serve loads the configured catalogs, builds a session manager per
catalog and keeps them fresh: catalog files are watched for changes, stale
sessions are swept on schedule and Prometheus metrics are exposed when
enabled. It runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "mosaic.yaml", "path to the service configuration")
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := cfg.Log.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	src, err := source.NewFileSource(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	descs, err := src.Load(ctx)
	if err != nil {
		return err
	}

	managers := make(map[string]*session.Manager, len(descs))
	managerCfg := &session.ManagerConfig{
		TTL:     cfg.Session.TTL.Std(),
		Metrics: m,
		Logger:  logger,
	}
	for _, desc := range descs {
		mgr, err := session.NewManager(desc, store, managerCfg)
		if err != nil {
			return fmt.Errorf("catalog %s: %w", desc.ID, err)
		}
		managers[desc.ID] = mgr
		logger.Info("catalog loaded", "catalog", desc.ID, "components", len(desc.Components), "rules", len(desc.Rules))
	}
	if len(managers) == 0 {
		return fmt.Errorf("no catalogs loaded from %s", cfg.Catalog.Path)
	}

	if cfg.Catalog.Watch {
		watcher, err := source.NewWatcher(src, cfg.Catalog.WatchDebounce.Std(), logger, func(fresh []*catalog.Descriptor) {
			for _, desc := range fresh {
				mgr, ok := managers[desc.ID]
				if !ok {
					logger.Warn("ignoring catalog added at runtime", "catalog", desc.ID)
					continue
				}
				if err := mgr.UpdateCatalog(desc); err != nil {
					logger.Error("catalog update rejected", "catalog", desc.ID, "error", err)
				}
			}
		})
		if err != nil {
			return err
		}
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	// All managers share the store, so one sweeper covers every session.
	var sweepMgr *session.Manager
	for _, mgr := range managers {
		sweepMgr = mgr
		break
	}
	sweeper, err := session.NewSweeper(sweepMgr, cfg.Session.SweepSchedule, logger)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			logger.Info("metrics listening", "addr", cfg.Metrics.Addr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("configurator running", "catalogs", len(managers))
	<-ctx.Done()
	logger.Info("shutting down")

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics shutdown failed", "error", err)
		}
	}
	return nil
}

func openStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return session.OpenSQLite(cfg.Store.Path)
	default:
		return session.NewMemoryStore(), nil
	}
}
