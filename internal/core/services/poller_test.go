package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"spotlog/internal/core/domain"
)

func snapshot(id string) *domain.Snapshot {
	return &domain.Snapshot{TrackID: id, Title: "Track " + id, Artist: "Artist"}
}

// newTestPoller wires a poller with zero delays and a zero minimum play time
// so every track change qualifies immediately.
func newTestPoller(streaming *scriptedStreaming, source *stubSource, playlog *memPlayLog, history *memHistory) *Poller {
	return NewPoller(
		streaming,
		NewDetector(0),
		NewResolver(zerolog.Nop(), source),
		playlog,
		history,
		PollerOptions{Account: "acct"},
		zerolog.Nop(),
	)
}

func TestPollerRecordsFinalizedPlays(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streaming := &scriptedStreaming{
		script: []pollStep{
			{snap: snapshot("a")},
			{snap: snapshot("a")},
			{snap: snapshot("b")},
			{snap: nil},
		},
		onDone: cancel,
	}
	source := &stubSource{
		name: "local",
		tf: &domain.TrackFeatures{
			Descriptors: domain.Descriptors{Acousticness: domain.Float(0.3)},
		},
	}
	playlog := &memPlayLog{}
	history := newMemHistory()

	if err := newTestPoller(streaming, source, playlog, history).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	if playlog.saved == nil {
		t.Fatal("no play log written")
	}
	if playlog.saved.Account != "acct" {
		t.Errorf("fresh log account: got %q, want %q", playlog.saved.Account, "acct")
	}
	got := playlog.saved.Tracks
	if len(got) != 2 {
		t.Fatalf("recorded plays: got %d, want 2 (%+v)", len(got), got)
	}
	if got[0].TrackID != "a" || got[1].TrackID != "b" {
		t.Errorf("recorded order: got %q, %q", got[0].TrackID, got[1].TrackID)
	}
	if got[0].Descriptors.Acousticness == nil {
		t.Error("resolved descriptors missing from the logged play")
	}
	if _, err := history.Get(ctx, "a"); err != nil {
		t.Errorf("track a not cached: %v", err)
	}
	if _, err := history.Get(ctx, "b"); err != nil {
		t.Errorf("track b not cached: %v", err)
	}
}

func TestPollerTreatsPollErrorAsNothingPlaying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streaming := &scriptedStreaming{
		script: []pollStep{
			{snap: snapshot("a")},
			{err: errors.New("boom")},
		},
		onDone: cancel,
	}
	source := &stubSource{name: "local", tf: &domain.TrackFeatures{}}
	playlog := &memPlayLog{}

	if err := newTestPoller(streaming, source, playlog, newMemHistory()).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	// the failed poll finalizes the in-flight play, as a stop would
	if playlog.saved == nil || len(playlog.saved.Tracks) != 1 {
		t.Fatalf("play not finalized after poll failure: %+v", playlog.saved)
	}
	if playlog.saved.Tracks[0].TrackID != "a" {
		t.Errorf("finalized track: got %q, want %q", playlog.saved.Tracks[0].TrackID, "a")
	}
}

func TestPollerDropsInFlightPlayOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streaming := &scriptedStreaming{
		script: []pollStep{{snap: snapshot("a")}},
		onDone: cancel,
	}
	playlog := &memPlayLog{}

	source := &stubSource{name: "local", tf: &domain.TrackFeatures{}}
	if err := newTestPoller(streaming, source, playlog, newMemHistory()).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	if playlog.saves != 0 {
		t.Errorf("in-flight play reached the log: %+v", playlog.saved)
	}
}

func TestPollerKeepsEventWhenDescriptorsUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streaming := &scriptedStreaming{
		script: []pollStep{
			{snap: snapshot("a")},
			{snap: nil},
		},
		onDone: cancel,
	}
	source := &stubSource{name: "local", err: domain.ErrNotFound}
	playlog := &memPlayLog{}
	history := newMemHistory()

	if err := newTestPoller(streaming, source, playlog, history).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	if playlog.saved == nil || len(playlog.saved.Tracks) != 1 {
		t.Fatalf("play without descriptors not logged: %+v", playlog.saved)
	}
	if playlog.saved.Tracks[0].Descriptors.Complete() {
		t.Error("descriptors invented for an unresolvable track")
	}
	if _, err := history.Get(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("incomplete bundle reached the history cache: %v", err)
	}
}

func TestPollerAppendsToExistingLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	existing := domain.PlayLog{
		Account: "acct",
		Tracks: []domain.PlayEvent{
			{TrackID: "old", Title: "Old", Artist: "Artist", PlayedAt: time.Now(), PlayTime: time.Minute},
		},
	}
	playlog := &memPlayLog{}
	if err := playlog.Save(existing); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	playlog.saves = 0

	streaming := &scriptedStreaming{
		script: []pollStep{
			{snap: snapshot("a")},
			{snap: nil},
		},
		onDone: cancel,
	}
	source := &stubSource{name: "local", tf: &domain.TrackFeatures{}}

	if err := newTestPoller(streaming, source, playlog, newMemHistory()).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := playlog.saved.Tracks
	if len(got) != 2 {
		t.Fatalf("appended log length: got %d, want 2", len(got))
	}
	if got[0].TrackID != "old" || got[1].TrackID != "a" {
		t.Errorf("append order: got %q, %q", got[0].TrackID, got[1].TrackID)
	}
}
