// Command seeder loads the reference code lists the validator checks against
// (languages, countries, municipalities, postal and dial codes, areas,
// taxonomies) from CSV exports. It runs offline, before the server is
// expected to report ready.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: all)
//	--dry-run        parse files without writing to DB
//	--data-dir       directory relative code list paths resolve against
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/reference"
	"github.com/heartmarshall/serviceregistry-backend/internal/app"
	"github.com/heartmarshall/serviceregistry-backend/internal/app/seeder"
	"github.com/heartmarshall/serviceregistry-backend/internal/config"
)

var (
	_ seeder.ReferenceBulkRepo = (*reference.Repo)(nil)
	_ seeder.TxRunner          = (*postgres.TxManager)(nil)
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse files without writing to DB")
	dataDirFlag := flag.String("data-dir", "", "directory relative code list paths resolve against")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	if *dataDirFlag != "" {
		// LoadConfig resolves paths, so the override goes in through ENV.
		os.Setenv("SEEDER_DATA_DIR", *dataDirFlag) //nolint:errcheck
	}

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	logger := app.NewLogger(appCfg.Log, app.ComponentSeeder)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	var phases []string
	for _, p := range strings.Split(*phaseFlag, ",") {
		if p = strings.TrimSpace(p); p != "" {
			phases = append(phases, p)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Batch work may run past the request-sized statement timeout.
	dbCfg := appCfg.Database
	dbCfg.ApplicationName += "-seeder"
	dbCfg.StatementTimeout = 0
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	refs := reference.New(pool)
	pipeline := seeder.NewPipeline(logger, refs, *seederCfg).WithTx(postgres.NewTxManager(pool))
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	summarize(logger, pipeline.Results())

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	if !seederCfg.DryRun {
		if loaded, err := refs.Loaded(ctx); err == nil && !loaded {
			logger.Warn("languages list is empty; the server will report not ready")
		}
	}
	logger.Info("pipeline completed successfully")
}

// summarize logs totals across phases; each phase logs its own line as it
// finishes.
func summarize(logger *slog.Logger, results map[string]seeder.PhaseResult) {
	var total seeder.PhaseResult
	failed := 0
	for _, r := range results {
		total.Parsed += r.Parsed
		total.Inserted += r.Inserted
		total.Skipped += r.Skipped
		total.Duration += r.Duration
		if r.Err != nil {
			failed++
		}
	}
	logger.Info("seeding totals",
		slog.Int("phases", len(results)),
		slog.Int("failed", failed),
		slog.Int("parsed", total.Parsed),
		slog.Int("inserted", total.Inserted),
		slog.Int("skipped", total.Skipped),
		slog.Duration("duration", total.Duration),
	)
}
