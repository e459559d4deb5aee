// Command logger runs the live listening logger: it polls the account's
// currently-playing track, records qualified plays to the play log, and
// caches resolved audio descriptors in the history store.
package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"spotlog/internal/adapters/playlog"
	"spotlog/internal/adapters/soundstat"
	"spotlog/internal/adapters/spotify"
	"spotlog/internal/adapters/sqlite"
	"spotlog/internal/config"
	"spotlog/internal/core/ports"
	"spotlog/internal/core/services"
	"spotlog/internal/logging"
)

func main() {
	interval := flag.Duration("interval", 0, "poll interval (overrides TIME_DELAY)")
	minPlayTime := flag.Duration("min-play-time", 0, "minimum play time for a play to qualify (overrides MINIMUM_PLAY_TIME)")
	logFile := flag.String("log-file", "", "play log path (overrides TRACKSLOG_FILE)")
	flag.Parse()

	cfg := config.Load()
	if *interval > 0 {
		cfg.PollInterval = *interval
	}
	if *minPlayTime > 0 {
		cfg.MinPlayTime = *minPlayTime
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.RequireSpotify(); err != nil {
		logger.Fatal().Err(err).Msg("configuration incomplete")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.NewStore(cfg.HistoryDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open history store")
	}
	defer store.Close()

	oauthClient := spotify.NewOAuthClient(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRefreshToken)
	sp := spotify.NewClient(oauthClient, spotify.DefaultBaseURL, logger)

	sources := []ports.FeatureSource{services.NewLocalSource(store)}
	if cfg.SoundStatKey != "" {
		analysisClient := &http.Client{Timeout: 30 * time.Second}
		sources = append(sources, soundstat.NewClient(analysisClient, soundstat.DefaultBaseURL, cfg.SoundStatKey))
	} else {
		logger.Warn().Msg("SOUNDSTAT_KEY not set, analysis fallback disabled")
	}
	sources = append(sources, services.NewStreamingSource(sp))

	runLogger := logger.With().Str("run_id", uuid.NewString()).Logger()
	poller := services.NewPoller(
		sp,
		services.NewDetector(cfg.MinPlayTime),
		services.NewResolver(runLogger, sources...),
		playlog.NewStore(cfg.LogFile),
		store,
		services.PollerOptions{
			Account:  cfg.Account,
			Interval: cfg.PollInterval,
			Cooldown: cfg.Cooldown,
		},
		runLogger,
	)

	runLogger.Info().
		Dur("interval", cfg.PollInterval).
		Dur("min_play_time", cfg.MinPlayTime).
		Str("log_file", cfg.LogFile).
		Msg("listening logger started")

	if err := poller.Run(ctx); err != nil {
		runLogger.Fatal().Err(err).Msg("logger stopped")
	}
	runLogger.Info().Msg("shut down")
}
