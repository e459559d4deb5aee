// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRefreshToken string
	SoundStatKey        string // empty disables the analysis fallback

	Account   string
	LogFile   string
	HistoryDB string

	PollInterval time.Duration
	Cooldown     time.Duration
	MinPlayTime  time.Duration
	BatchSize    int
	BatchPause   time.Duration

	LogLevel  string
	LogFormat string // text or json
}

// Load reads settings from the environment. Validation of required
// credentials is deferred to RequireSpotify so commands that never talk to
// the provider can run without them.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRefreshToken: os.Getenv("SPOTIFY_REFRESH_TOKEN"),
		SoundStatKey:        os.Getenv("SOUNDSTAT_KEY"),

		Account:   envOrDefault("SPOTIFY_ACCOUNT", "default"),
		LogFile:   envOrDefault("TRACKSLOG_FILE", "logs/track_log.json"),
		HistoryDB: envOrDefault("HISTORY_DB", "track_info.db"),

		PollInterval: envSeconds("TIME_DELAY", 5),
		Cooldown:     envSeconds("ERROR_COOLDOWN", 60),
		MinPlayTime:  envSeconds("MINIMUM_PLAY_TIME", 20),
		BatchSize:    envInt("BATCH_LENGTH", 100),
		BatchPause:   envSeconds("BATCH_DELAY", 2),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}
}

// RequireSpotify reports an error naming every missing provider credential.
func (c Config) RequireSpotify() error {
	var missing []string
	if c.SpotifyClientID == "" {
		missing = append(missing, "SPOTIFY_CLIENT_ID")
	}
	if c.SpotifyClientSecret == "" {
		missing = append(missing, "SPOTIFY_CLIENT_SECRET")
	}
	if c.SpotifyRefreshToken == "" {
		missing = append(missing, "SPOTIFY_REFRESH_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

// envSeconds reads an integer number of seconds, matching the units the
// predecessor scripts used for their knobs.
func envSeconds(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Second
}
