// Command enrich backfills audio descriptors into an existing play log. It
// works in fixed-size batches against the provider's batch features endpoint
// and writes the enriched log to a separate output file, flushing after
// every batch so an interrupted run keeps its progress.
package main

import (
	"context"
	"flag"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"spotlog/internal/adapters/playlog"
	"spotlog/internal/adapters/spotify"
	"spotlog/internal/config"
	"spotlog/internal/core/services"
	"spotlog/internal/logging"
)

func main() {
	in := flag.String("in", "", "play log to enrich (defaults to TRACKSLOG_FILE)")
	out := flag.String("out", "", "output path (defaults to <in>_modified.json)")
	batchSize := flag.Int("batch-size", 0, "tracks per batch call (overrides BATCH_LENGTH)")
	pause := flag.Duration("pause", 0, "pause between fetched batches (overrides BATCH_DELAY)")
	flag.Parse()

	cfg := config.Load()
	if *batchSize > 0 {
		cfg.BatchSize = *batchSize
	}
	if *pause > 0 {
		cfg.BatchPause = *pause
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.RequireSpotify(); err != nil {
		logger.Fatal().Err(err).Msg("configuration incomplete")
	}

	inPath := *in
	if inPath == "" {
		inPath = cfg.LogFile
	}
	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, ".json") + "_modified.json"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	plog, err := playlog.NewStore(inPath).Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load play log")
	}
	logger.Info().
		Str("in", inPath).
		Str("out", outPath).
		Int("tracks", len(plog.Tracks)).
		Int("batch_size", cfg.BatchSize).
		Msg("enrichment started")

	oauthClient := spotify.NewOAuthClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRefreshToken)
	sp := spotify.NewClient(oauthClient, spotify.DefaultBaseURL, logger)
	enricher := services.NewEnricher(sp, cfg.BatchSize, cfg.BatchPause, logger)

	outStore := playlog.NewStore(outPath)
	start := time.Now()
	enriched, err := enricher.Enrich(ctx, plog, outStore.Save)
	if err != nil {
		logger.Fatal().Err(err).Msg("enrichment failed")
	}

	logger.Info().
		Int("tracks", len(enriched.Tracks)).
		Dur("elapsed", time.Since(start)).
		Msg("enrichment complete")
}
