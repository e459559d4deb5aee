package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SPOTIFY_ACCOUNT", "TRACKSLOG_FILE", "HISTORY_DB",
		"TIME_DELAY", "ERROR_COOLDOWN", "MINIMUM_PLAY_TIME",
		"BATCH_LENGTH", "BATCH_DELAY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Account != "default" {
		t.Errorf("account: got %q", cfg.Account)
	}
	if cfg.LogFile != "logs/track_log.json" {
		t.Errorf("log file: got %q", cfg.LogFile)
	}
	if cfg.HistoryDB != "track_info.db" {
		t.Errorf("history db: got %q", cfg.HistoryDB)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("poll interval: got %v", cfg.PollInterval)
	}
	if cfg.Cooldown != 60*time.Second {
		t.Errorf("cooldown: got %v", cfg.Cooldown)
	}
	if cfg.MinPlayTime != 20*time.Second {
		t.Errorf("minimum play time: got %v", cfg.MinPlayTime)
	}
	if cfg.BatchSize != 100 {
		t.Errorf("batch size: got %d", cfg.BatchSize)
	}
	if cfg.BatchPause != 2*time.Second {
		t.Errorf("batch pause: got %v", cfg.BatchPause)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SPOTIFY_ACCOUNT", "alice")
	t.Setenv("TIME_DELAY", "10")
	t.Setenv("BATCH_LENGTH", "50")
	t.Setenv("SOUNDSTAT_KEY", "secret")

	cfg := Load()

	if cfg.Account != "alice" {
		t.Errorf("account: got %q", cfg.Account)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("poll interval: got %v", cfg.PollInterval)
	}
	if cfg.BatchSize != 50 {
		t.Errorf("batch size: got %d", cfg.BatchSize)
	}
	if cfg.SoundStatKey != "secret" {
		t.Errorf("soundstat key: got %q", cfg.SoundStatKey)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("TIME_DELAY", "not-a-number")
	t.Setenv("BATCH_LENGTH", "0")

	cfg := Load()

	if cfg.PollInterval != 5*time.Second {
		t.Errorf("malformed interval not defaulted: %v", cfg.PollInterval)
	}
	if cfg.BatchSize != 100 {
		t.Errorf("non-positive batch size not defaulted: %d", cfg.BatchSize)
	}
}

func TestRequireSpotify(t *testing.T) {
	cfg := Config{SpotifyClientID: "id"}
	err := cfg.RequireSpotify()
	if err == nil {
		t.Fatal("expected an error with credentials missing")
	}
	msg := err.Error()
	if strings.Contains(msg, "SPOTIFY_CLIENT_ID") {
		t.Errorf("present credential reported missing: %s", msg)
	}
	for _, want := range []string{"SPOTIFY_CLIENT_SECRET", "SPOTIFY_REFRESH_TOKEN"} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing credential %s not reported: %s", want, msg)
		}
	}

	cfg.SpotifyClientSecret = "secret"
	cfg.SpotifyRefreshToken = "token"
	if err := cfg.RequireSpotify(); err != nil {
		t.Errorf("complete credentials rejected: %v", err)
	}
}
