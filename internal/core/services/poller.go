package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// Poller runs the live logging loop: poll the playback snapshot, feed it to
// the detector, and on every emitted play event resolve descriptors, append
// the event to the play log, and cache the track's features. The loop is a
// single thread of control; remote calls block it for their duration, which
// is acceptable at a seconds-scale poll cadence.
type Poller struct {
	streaming ports.StreamingProvider
	detector  *Detector
	resolver  *Resolver
	playlog   ports.PlayLogStore
	history   ports.HistoryStore
	account   string
	interval  time.Duration
	cooldown  time.Duration
	log       zerolog.Logger
}

// PollerOptions carries the loop's timing knobs and the account name used
// when starting a fresh play log.
type PollerOptions struct {
	Account  string
	Interval time.Duration // pause between polls
	Cooldown time.Duration // extra pause after a failed poll
}

// NewPoller constructs a Poller.
func NewPoller(
	streaming ports.StreamingProvider,
	detector *Detector,
	resolver *Resolver,
	playlog ports.PlayLogStore,
	history ports.HistoryStore,
	opts PollerOptions,
	log zerolog.Logger,
) *Poller {
	return &Poller{
		streaming: streaming,
		detector:  detector,
		resolver:  resolver,
		playlog:   playlog,
		history:   history,
		account:   opts.Account,
		interval:  opts.Interval,
		cooldown:  opts.Cooldown,
		log:       log,
	}
}

// Run polls until ctx is canceled. Poll failures are logged and treated as
// "nothing playing" after a cooldown; no descriptor or storage failure stops
// the loop. On shutdown a play still being tracked is dropped: only
// finalized, qualified plays reach the log.
func (p *Poller) Run(ctx context.Context) error {
	plog, err := p.playlog.Load()
	if errors.Is(err, fs.ErrNotExist) {
		plog = domain.PlayLog{Account: p.account}
		p.log.Info().Str("account", p.account).Msg("starting a new play log")
	} else if err != nil {
		return fmt.Errorf("poller: load play log: %w", err)
	} else {
		p.log.Info().
			Str("account", plog.Account).
			Int("tracks", len(plog.Tracks)).
			Msg("play log loaded")
	}

	for {
		snap, err := p.streaming.CurrentlyPlaying(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.log.Warn().Err(err).Msg("playback poll failed")
			snap = nil
			if err := sleepContext(ctx, p.cooldown); err != nil {
				return nil
			}
		}

		if ev := p.detector.Ingest(snap); ev != nil {
			p.record(ctx, ev, &plog)
		}

		if err := sleepContext(ctx, p.interval); err != nil {
			return nil
		}
	}
}

func (p *Poller) record(ctx context.Context, ev *domain.PlayEvent, plog *domain.PlayLog) {
	// live events carry no prior local knowledge, so known is empty
	res, err := p.resolver.Resolve(ctx, ev.TrackID, domain.Descriptors{})
	if err != nil {
		p.log.Warn().Err(err).
			Str("track_id", ev.TrackID).
			Str("title", ev.Title).
			Msg("descriptors unavailable")
	} else {
		ev.Descriptors = res.Descriptors
	}

	plog.Tracks = append(plog.Tracks, *ev)
	if err := p.playlog.Save(*plog); err != nil {
		// keep polling; the event stays in the in-memory log for the next write
		p.log.Error().Err(err).Msg("play log write failed")
	}

	if ev.Descriptors.Complete() {
		rec := domain.TrackRecord{
			TrackID:         ev.TrackID,
			Title:           ev.Title,
			Artist:          ev.Artist,
			Descriptors:     ev.Descriptors,
			StreamingNative: res.StreamingNative,
		}
		if err := p.history.UpsertIfAbsent(ctx, rec); err != nil {
			p.log.Error().Err(err).Str("track_id", ev.TrackID).Msg("history upsert failed")
		}
	}

	p.log.Info().
		Str("track_id", ev.TrackID).
		Str("title", ev.Title).
		Str("artist", ev.Artist).
		Dur("play_time", ev.PlayTime).
		Str("source", res.Source).
		Msg("play recorded")
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
