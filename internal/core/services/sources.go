package services

import (
	"context"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// NewLocalSource adapts the history store into the highest-priority feature
// source. Stored descriptors are already unit-normalized and are returned
// verbatim.
func NewLocalSource(store ports.HistoryStore) ports.FeatureSource {
	return localSource{store: store}
}

type localSource struct {
	store ports.HistoryStore
}

func (s localSource) Name() string { return "local" }

func (s localSource) Fetch(ctx context.Context, trackID string) (*domain.TrackFeatures, error) {
	rec, err := s.store.Get(ctx, trackID)
	if err != nil {
		return nil, err
	}
	return &domain.TrackFeatures{
		Descriptors:     rec.Descriptors,
		StreamingNative: rec.StreamingNative,
	}, nil
}

// NewStreamingSource adapts the streaming provider's own features endpoint
// into the last-resort source. Its values are canonical and need no
// conversion.
func NewStreamingSource(p ports.StreamingProvider) ports.FeatureSource {
	return streamingSource{provider: p}
}

type streamingSource struct {
	provider ports.StreamingProvider
}

func (s streamingSource) Name() string { return "streaming" }

func (s streamingSource) Fetch(ctx context.Context, trackID string) (*domain.TrackFeatures, error) {
	return s.provider.AudioFeatures(ctx, trackID)
}
