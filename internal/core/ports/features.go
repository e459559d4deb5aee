package ports

import (
	"context"

	"spotlog/internal/core/domain"
)

// FeatureSource is one place a descriptor bundle can come from. Sources are
// tried in a fixed priority order; each either answers with a full bundle or
// reports domain.ErrNotFound. Any other error is transient and means the
// next source should be tried.
type FeatureSource interface {
	Name() string
	Fetch(ctx context.Context, trackID string) (*domain.TrackFeatures, error)
}
