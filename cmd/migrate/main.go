// Command migrate applies the embedded database migrations.
//
// Usage: migrate [up|down|status]. The default is up.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/serviceregistry-backend/internal/app"
	"github.com/heartmarshall/serviceregistry-backend/internal/config"
	"github.com/heartmarshall/serviceregistry-backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, app.ComponentMigrate)

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, logger, cfg.Database.DSN, command); err != nil {
		logger.Error("migration failed",
			slog.String("command", command),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dsn, command string) error {
	provider, db, err := migrations.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			logger.Info("migration applied",
				slog.Int64("version", r.Source.Version),
				slog.Duration("duration", r.Duration),
			)
		}
	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		logger.Info("migration rolled back", slog.Int64("version", r.Source.Version))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			logger.Info("migration status",
				slog.Int64("version", s.Source.Version),
				slog.String("state", string(s.State)),
				slog.String("path", s.Source.Path),
			)
		}
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}
