// Command matchcore runs the matching engine as a single process: bind
// UDP, parse, match, publish, all in one binary with no command-line
// flags for the canonical path, exiting 0 on a clean shutdown signal.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lumenex/matchcore/internal/pipeline"
	"github.com/lumenex/matchcore/pkg/config"
	"github.com/lumenex/matchcore/pkg/logging"
	"github.com/lumenex/matchcore/pkg/metrics"
)

func main() {
	v, cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("matchcore: config load failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	metrics.MustRegister()
	config.WatchReload(v, cfg, func(reloaded *config.Config) {
		log.Info("config reloaded", zap.Strings("symbols", reloaded.Symbols), zap.Bool("enforce_whitelist", reloaded.EnforceWhitelist))
	})

	app, err := pipeline.New(*cfg, log)
	if err != nil {
		log.Fatal("failed to build pipeline", zap.Error(err))
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, log)
	}

	app.Start()
	log.Info("matchcore started", zap.Int("port", cfg.Port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutdown signal received, draining pipeline")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(shutdownCtx); err != nil {
		log.Error("pipeline did not drain cleanly", zap.Error(err))
		os.Exit(1)
	}

	log.Info("matchcore stopped cleanly")
}

func serveMetrics(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", zap.Error(err))
	}
}
