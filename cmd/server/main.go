package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"noid/internal/identifier"
	identifierhandler "noid/internal/identifier/handler"
	identifiermetrics "noid/internal/identifier/metrics"
	"noid/internal/platform/config"
	"noid/internal/platform/httpserver"
	"noid/internal/platform/logger"
	"noid/internal/platform/metrics"
	ratelimitmetrics "noid/internal/ratelimit/metrics"
	ratelimitmw "noid/internal/ratelimit/middleware"
	"noid/internal/ratelimit/models"
	"noid/internal/ratelimit/service/requestlimit"
	"noid/internal/ratelimit/store/bucket"
	httptransport "noid/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Runtime collectors and the rate limit metrics live on the default
	// registry; module metrics get their own.
	reg := prometheus.NewRegistry()

	svcOpts := []identifier.Option{
		identifier.WithLogger(log),
		identifier.WithMetrics(identifiermetrics.New(reg)),
		identifier.WithBatchLimits(cfg.Identifier.MaxBatchSize, cfg.Identifier.BatchConcurrency),
		identifier.WithMaxGenerate(cfg.Identifier.MaxGenerate),
	}
	if cfg.Identifier.GeneratorSeed != nil {
		svcOpts = append(svcOpts, identifier.WithGeneratorSeed(*cfg.Identifier.GeneratorSeed))
	}
	svc := identifier.New(svcOpts...)

	buckets := bucket.NewInMemoryBucketStore()
	rlMetrics := ratelimitmetrics.New()
	limits, err := requestlimit.New(buckets,
		requestlimit.WithLogger(log),
		requestlimit.WithMetrics(rlMetrics),
		requestlimit.WithLimit(models.ClassValidate, models.Limit{RequestsPerWindow: cfg.RateLimit.PerMinute, Window: time.Minute}),
		requestlimit.WithLimit(models.ClassGenerate, models.Limit{RequestsPerWindow: max(cfg.RateLimit.PerMinute/10, 1), Window: time.Minute}),
	)
	if err != nil {
		return err
	}
	limiter := ratelimitmw.New(ratelimitmw.NewLimiter(limits), log, ratelimitmw.WithDisabled(cfg.RateLimit.Disabled))

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
		V1:       []httptransport.Registrar{identifierhandler.New(svc, log, limiter)},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting noid", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return buckets.RunSweeper(gctx, cfg.RateLimit.SweepInterval, rlMetrics.AddBucketsSwept)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
