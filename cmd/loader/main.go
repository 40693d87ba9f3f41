// Command loader applies database migrations and replaces the names table
// with the contents of a dataset file in WFO backbone layout. It is intended
// to be run offline, before switching the server to index.source=postgres.
//
// Flags:
//
//	--dataset         path to the dataset file (default: index.dataset_path)
//	--migrate-only    apply migrations and exit
//	--dry-run         parse the dataset without writing to DB
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/namematch-backend/internal/adapter/dataset"
	"github.com/heartmarshall/namematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/namematch-backend/internal/adapter/postgres/name"
	"github.com/heartmarshall/namematch-backend/internal/app"
	"github.com/heartmarshall/namematch-backend/internal/config"
	"github.com/heartmarshall/namematch-backend/internal/service/indexing"
)

func main() {
	datasetFlag := flag.String("dataset", "", "path to the dataset file (default: index.dataset_path)")
	migrateOnlyFlag := flag.Bool("migrate-only", false, "apply migrations and exit")
	dryRunFlag := flag.Bool("dry-run", false, "parse the dataset without writing to DB")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	path := *datasetFlag
	if path == "" {
		path = cfg.Index.DatasetPath
	}

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if !*dryRunFlag {
		if cfg.Database.DSN == "" {
			logger.Error("database.dsn is required")
			os.Exit(1)
		}
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			logger.Error("apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if *migrateOnlyFlag {
			logger.Info("migrations applied")
			return
		}
	}

	if path == "" {
		logger.Error("no dataset file given: pass --dataset or set index.dataset_path")
		os.Exit(1)
	}

	start := time.Now()
	entries, err := dataset.NewReader(path).LoadEntries(ctx)
	if err != nil {
		logger.Error("read dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Report how many rows would produce index keys.
	records := indexing.BuildRecords(entries)
	logger.Info("dataset parsed",
		slog.String("path", path),
		slog.Int("rows", len(entries)),
		slog.Int("indexable", indexing.CountIndexable(records)),
		slog.Duration("elapsed", time.Since(start)),
	)

	if *dryRunFlag {
		return
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := name.New(pool)
	written, err := repo.ReplaceAll(ctx, entries, filepath.Base(path))
	if err != nil {
		logger.Error("replace names", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stored, err := repo.Count(ctx)
	if err != nil {
		logger.Error("count stored names", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if int64(stored) != written {
		logger.Error("stored row count mismatch", slog.Int64("written", written), slog.Int("stored", stored))
		os.Exit(1)
	}

	logger.Info("names loaded",
		slog.Int64("rows", written),
		slog.Duration("elapsed", time.Since(start)),
	)
}
