// Command cleanup removes validation audit records older than the configured
// retention period. It is intended to be invoked by an external cron job,
// not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/serviceregistry-backend/internal/app"
	"github.com/heartmarshall/serviceregistry-backend/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	dryRun := flag.Bool("dry-run", false, "report the threshold without deleting")
	flag.Parse()

	load := config.Load
	if *configFlag != "" {
		load = func() (*config.Config, error) { return config.LoadFile(*configFlag) }
	}
	cfg, err := load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, app.ComponentCleanup)

	threshold := time.Now().AddDate(0, 0, -cfg.Audit.RetentionDays)
	if *dryRun {
		logger.Info("audit cleanup dry run",
			slog.Int("retention_days", cfg.Audit.RetentionDays),
			slog.Time("threshold", threshold),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Batch work may run past the request-sized statement timeout.
	dbCfg := cfg.Database
	dbCfg.ApplicationName += "-cleanup"
	dbCfg.StatementTimeout = 0
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	auditRepo := audit.New(pool)

	deleted, err := auditRepo.DeleteOlderThan(ctx, threshold)
	if err != nil {
		logger.Error("audit cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("audit cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
