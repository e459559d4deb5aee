package services

import (
	"context"
	"fmt"
	"io/fs"
	"sync"

	"spotlog/internal/core/domain"
)

// stubSource is a scripted feature source.
type stubSource struct {
	name  string
	tf    *domain.TrackFeatures
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, trackID string) (*domain.TrackFeatures, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tf, nil
}

// pollStep is one scripted poll result.
type pollStep struct {
	snap *domain.Snapshot
	err  error
}

// scriptedStreaming serves a fixed snapshot script and a per-track feature
// map for batch calls. When the script runs out it cancels the poll loop.
type scriptedStreaming struct {
	script   []pollStep
	index    int
	onDone   func()
	features map[string]*domain.TrackFeatures
	batches  [][]string
}

func (s *scriptedStreaming) CurrentlyPlaying(ctx context.Context) (*domain.Snapshot, error) {
	if s.index >= len(s.script) {
		if s.onDone != nil {
			s.onDone()
		}
		return nil, ctx.Err()
	}
	step := s.script[s.index]
	s.index++
	return step.snap, step.err
}

func (s *scriptedStreaming) AudioFeatures(ctx context.Context, trackID string) (*domain.TrackFeatures, error) {
	tf, ok := s.features[trackID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return tf, nil
}

func (s *scriptedStreaming) AudioFeaturesBatch(ctx context.Context, trackIDs []string) ([]*domain.TrackFeatures, error) {
	ids := make([]string, len(trackIDs))
	copy(ids, trackIDs)
	s.batches = append(s.batches, ids)

	out := make([]*domain.TrackFeatures, len(trackIDs))
	for i, id := range trackIDs {
		out[i] = s.features[id]
	}
	return out, nil
}

// memHistory is an in-memory history store with first-write-wins semantics.
type memHistory struct {
	mu      sync.Mutex
	records map[string]domain.TrackRecord
	order   []string
}

func newMemHistory() *memHistory {
	return &memHistory{records: map[string]domain.TrackRecord{}}
}

func (m *memHistory) UpsertIfAbsent(ctx context.Context, rec domain.TrackRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.TrackID]; ok {
		return nil
	}
	m.records[rec.TrackID] = rec
	m.order = append(m.order, rec.TrackID)
	return nil
}

func (m *memHistory) Get(ctx context.Context, trackID string) (domain.TrackRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[trackID]
	if !ok {
		return domain.TrackRecord{}, domain.ErrNotFound
	}
	return rec, nil
}

func (m *memHistory) GetAll(ctx context.Context) ([]domain.TrackRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.TrackRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out, nil
}

// memPlayLog mimics the file store: missing until first save.
type memPlayLog struct {
	saved  *domain.PlayLog
	saves  int
	failed error
}

func (m *memPlayLog) Load() (domain.PlayLog, error) {
	if m.saved == nil {
		return domain.PlayLog{}, fmt.Errorf("memlog: %w", fs.ErrNotExist)
	}
	return *m.saved, nil
}

func (m *memPlayLog) Save(plog domain.PlayLog) error {
	if m.failed != nil {
		return m.failed
	}
	m.saves++
	cp := plog
	cp.Tracks = append([]domain.PlayEvent(nil), plog.Tracks...)
	m.saved = &cp
	return nil
}
