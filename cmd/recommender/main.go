// cmd/recommender/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"plan-recommender/internal/cache"
	"plan-recommender/internal/common/aws"
	"plan-recommender/internal/common/config"
	"plan-recommender/internal/common/database"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/common/observability"
	"plan-recommender/internal/dataset"
	"plan-recommender/internal/engine/recommend"
	"plan-recommender/internal/engine/report"
	"plan-recommender/internal/engine/scoring"
	"plan-recommender/internal/export"
	"plan-recommender/internal/notify"
	"plan-recommender/internal/pipeline"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting plan recommender...")

	obs := observability.New("recommender")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Dataset Source ---
	var source dataset.Source
	switch cfg.Dataset.Source {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		source = dataset.NewPostgresSource(pg.DB, cfg.Dataset.Table, log)
	default:
		source = dataset.NewCSVSource(cfg.Dataset.Path, log)
	}

	// --- Catalog Cache (optional) ---
	var catalogCache *cache.CatalogCache
	if cfg.Recommender.CacheEnabled {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			// Cache is an optimization; the run proceeds without it.
			zapLog.Warn("redis unavailable, running without catalog cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			zapLog.Info("Redis connected successfully")
			catalogCache = cache.NewCatalogCache(redisClient.Client, config.GetDuration(cfg.Recommender.CacheTTL), log)
		}
	}

	// --- Report Indexer (optional) ---
	var indexer pipeline.Indexer
	if cfg.Export.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		indexer = export.NewReportIndexer(esClient.Client, cfg.Export.Elasticsearch.Index, log)
	}

	// --- Batch Notifier (optional) ---
	var notifier *notify.Notifier
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		var sesSvc notify.SESService
		var snsSvc notify.SNSService

		if cfg.Notifications.Email.Enabled {
			sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
			sesSvc = sesClient
		}
		if cfg.Notifications.SMS.Enabled {
			snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("sns client failed", zap.Error(err))
			}
			snsSvc = snsClient
		}
		notifier = notify.New(cfg.Notifications, sesSvc, snsSvc, log)
	}

	// --- Engine ---
	scorer := scoring.NewScorer(scoring.Weights{
		Usage: cfg.Recommender.UsageWeight,
		Cost:  cfg.Recommender.CostWeight,
	})
	recommender := recommend.New(scorer, log)
	reporter := report.New(recommender, log, cfg.Recommender.MaxParallel)

	p := pipeline.New(*cfg, pipeline.Options{
		Source:   source,
		Reporter: reporter,
		Cache:    catalogCache,
		Indexer:  indexer,
		Notifier: notifier,
		Obs:      obs,
	}, log)

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		zapLog.Info("Shutdown signal received, stopping...")
		cancel()
	}()

	if _, err := p.Run(runCtx); err != nil {
		zapLog.Fatal("batch run failed", zap.Error(err))
	}

	// Interval mode keeps re-running the batch until shutdown.
	if cfg.Recommender.Interval > 0 {
		ticker := time.NewTicker(config.GetDuration(cfg.Recommender.Interval))
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				zapLog.Info("Recommender stopped gracefully")
				return
			case <-ticker.C:
				if _, err := p.Run(runCtx); err != nil {
					zapLog.Error("batch run failed", zap.Error(err))
				}
			}
		}
	}

	zapLog.Info("Batch completed, recommender exiting")
}
