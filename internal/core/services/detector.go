package services

import (
	"time"

	"spotlog/internal/core/domain"
)

// Detector turns the raw currently-playing snapshot stream into discrete
// play events. It is a two-state machine: idle (nothing tracked) or tracking
// one candidate play. A candidate is finalized when the track changes or
// playback stops, and emitted only if it ran for at least the minimum play
// time; faster skips are discarded without ever reaching the resolver or the
// log.
type Detector struct {
	minPlayTime time.Duration
	now         func() time.Time

	current *tracked
}

type tracked struct {
	snap      domain.Snapshot
	startedAt time.Time
}

// NewDetector constructs a Detector starting in the idle state.
func NewDetector(minPlayTime time.Duration) *Detector {
	return &Detector{minPlayTime: minPlayTime, now: time.Now}
}

// Ingest advances the state machine with the next snapshot (nil = nothing
// playing) and returns a finalized, qualified play event, or nil. At most
// one event is produced per transition.
func (d *Detector) Ingest(snap *domain.Snapshot) *domain.PlayEvent {
	switch {
	case snap == nil && d.current == nil:
		return nil

	case snap == nil:
		// playback stopped: finalize and go idle
		ev := d.finalize()
		d.current = nil
		return ev

	case d.current == nil:
		d.current = &tracked{snap: *snap, startedAt: d.now()}
		return nil

	case snap.TrackID == d.current.snap.TrackID:
		// still playing the same track
		return nil

	default:
		// track changed: finalize the old one, start tracking the new one
		ev := d.finalize()
		d.current = &tracked{snap: *snap, startedAt: d.now()}
		return ev
	}
}

// Tracking reports whether a play is currently in flight.
func (d *Detector) Tracking() bool {
	return d.current != nil
}

func (d *Detector) finalize() *domain.PlayEvent {
	playTime := d.now().Sub(d.current.startedAt)
	if playTime < d.minPlayTime {
		return nil // skip noise
	}
	return &domain.PlayEvent{
		TrackID:  d.current.snap.TrackID,
		Title:    d.current.snap.Title,
		Artist:   d.current.snap.Artist,
		PlayedAt: d.current.startedAt,
		PlayTime: playTime,
	}
}
