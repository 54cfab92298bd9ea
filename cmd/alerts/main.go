// Package main runs one Schengen allowance alert sweep and exits.
// Scheduling it (for example once a day) is left to the platform's scheduler.
//
// Usage:
//
//	alerts [-date YYYY-MM-DD]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/pkordes/stay-planner/internal/alertstore"
	"github.com/pkordes/stay-planner/internal/config"
	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/metrics"
	"github.com/pkordes/stay-planner/internal/notify"
	"github.com/pkordes/stay-planner/internal/platform/logging"
	"github.com/pkordes/stay-planner/internal/platform/redis"
	"github.com/pkordes/stay-planner/internal/repo"
	"github.com/pkordes/stay-planner/internal/service"
)

func main() {
	date := flag.String("date", "", "evaluate as of this date (YYYY-MM-DD); defaults to today (UTC)")
	flag.Parse()

	if err := run(*date); err != nil {
		slog.Error("alert sweep failed", "error", err)
		os.Exit(1)
	}
}

func run(rawDate string) error {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	day := domain.Today()
	if rawDate != "" {
		if day, err = domain.ParseDate(rawDate); err != nil {
			return fmt.Errorf("-date: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	ledger, closeLedger, err := openLedger(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer closeLedger()

	notifier, closeNotifier, err := openNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	reg := prometheus.NewRegistry()
	alerts := service.NewAlertService(
		repo.NewUserRepo(pool),
		repo.NewTripRepo(pool),
		ledger,
		notifier,
		service.AlertConfig{
			Thresholds:  cfg.AlertThresholds,
			Concurrency: cfg.AlertConcurrency,
			LedgerTTL:   cfg.AlertLedgerTTL,
		},
		logger,
		metrics.New(reg),
	)

	report, err := alerts.Run(ctx, day)
	pushMetrics(cfg.PushgatewayURL, reg)
	if err != nil {
		return err
	}
	if report.Errors > 0 {
		return fmt.Errorf("%d of %d users failed", report.Errors, report.UsersProcessed)
	}
	return nil
}

// openLedger returns the Redis ledger when REDIS_URL is set, so repeated
// sweeps on different hosts share one de-duplication record. Without Redis
// the ledger only lives for this process.
func openLedger(ctx context.Context, url string) (service.AlertLedger, func(), error) {
	client, err := redis.New(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		slog.Warn("REDIS_URL not set; alert de-duplication is per run only")
		return alertstore.NewMemory(), func() {}, nil
	}
	return alertstore.NewRedis(client.Client), func() { client.Close() }, nil
}

// openNotifier always logs alerts and also publishes them to RabbitMQ when
// AMQP_URL is set.
func openNotifier(cfg config.Config, logger *slog.Logger) (service.Notifier, func(), error) {
	multi := notify.Multi{notify.NewLog(logger)}
	if cfg.AMQPURL == "" {
		return multi, func() {}, nil
	}
	publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, err
	}
	return append(multi, publisher), publisher.Close, nil
}

// pushMetrics sends the sweep's counters to a Prometheus Pushgateway. A
// one-shot job exits before any scrape could reach it.
func pushMetrics(url string, reg *prometheus.Registry) {
	if url == "" {
		return
	}
	if err := push.New(url, "stay_planner_alerts").Gatherer(reg).Push(); err != nil {
		slog.Warn("failed to push metrics", "error", err)
	}
}
