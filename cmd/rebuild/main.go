// Command rebuild repopulates the track-feature cache from a play log. The
// cache is derived data; after a schema change or a lost database this
// restores every track whose descriptors the log already holds.
package main

import (
	"context"
	"flag"

	"spotlog/internal/adapters/playlog"
	"spotlog/internal/adapters/sqlite"
	"spotlog/internal/config"
	"spotlog/internal/core/services"
	"spotlog/internal/logging"
)

func main() {
	logFile := flag.String("log-file", "", "play log to rebuild from (defaults to TRACKSLOG_FILE)")
	dbPath := flag.String("db", "", "history database path (defaults to HISTORY_DB)")
	flag.Parse()

	cfg := config.Load()
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *dbPath != "" {
		cfg.HistoryDB = *dbPath
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	plog, err := playlog.NewStore(cfg.LogFile).Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load play log")
	}

	store, err := sqlite.NewStore(cfg.HistoryDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open history store")
	}
	defer store.Close()

	res, err := services.RebuildHistory(context.Background(), plog, store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("rebuild failed")
	}

	logger.Info().
		Int("inserted", res.Inserted).
		Int("resolved", res.Resolved).
		Int("missing", res.Missing).
		Msg("rebuild complete")
}
