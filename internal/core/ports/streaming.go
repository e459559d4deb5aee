package ports

import (
	"context"

	"spotlog/internal/core/domain"
)

// StreamingProvider is the streaming service's API surface as the core needs
// it. Implementations own authentication and transport-level retries.
type StreamingProvider interface {
	// CurrentlyPlaying returns the account's playback snapshot, or nil when
	// nothing is playing.
	CurrentlyPlaying(ctx context.Context) (*domain.Snapshot, error)

	// AudioFeatures returns the provider's descriptor bundle for one track.
	// domain.ErrNotFound means the provider has no data for the track.
	AudioFeatures(ctx context.Context, trackID string) (*domain.TrackFeatures, error)

	// AudioFeaturesBatch resolves descriptors for several tracks in one call.
	// The result corresponds positionally to trackIDs; entries the provider
	// could not resolve are nil.
	AudioFeaturesBatch(ctx context.Context, trackIDs []string) ([]*domain.TrackFeatures, error)
}
