package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// Resolver produces one canonical descriptor bundle per track by trying its
// sources in priority order. The first source that answers wins; a bundle is
// never assembled by mixing fields from two sources within one resolution.
// Transient source failures degrade to the next source, and once the last
// source has been tried the result is a definite domain.ErrNoDescriptors.
type Resolver struct {
	sources []ports.FeatureSource
	log     zerolog.Logger
}

// NewResolver constructs a Resolver over the given sources, highest priority
// first.
func NewResolver(log zerolog.Logger, sources ...ports.FeatureSource) *Resolver {
	return &Resolver{sources: sources, log: log}
}

// Resolution is the outcome of a successful resolve: the winning bundle plus
// the name of the source it came from.
type Resolution struct {
	domain.TrackFeatures
	Source string
}

// Resolve fetches a descriptor bundle for trackID. Fields already present on
// known take precedence over the freshly fetched values; fields absent on
// known keep the source's value rather than being defaulted.
func (r *Resolver) Resolve(ctx context.Context, trackID string, known domain.Descriptors) (Resolution, error) {
	for _, src := range r.sources {
		tf, err := src.Fetch(ctx, trackID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			r.log.Warn().Err(err).
				Str("source", src.Name()).
				Str("track_id", trackID).
				Msg("descriptor fetch failed")
			continue
		}
		res := Resolution{TrackFeatures: *tf, Source: src.Name()}
		res.Descriptors = tf.Descriptors.Overlay(known)
		return res, nil
	}
	return Resolution{}, domain.ErrNoDescriptors
}
