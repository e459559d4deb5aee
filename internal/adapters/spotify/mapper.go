package spotify

import (
	"time"

	"spotlog/internal/core/domain"
)

// mapSnapshotToDomain converts a raw currently-playing response to a domain
// snapshot. Returns nil when no track is attached (private sessions and ads
// report a playing state without an item).
func mapSnapshotToDomain(body currentlyPlayingPayload) *domain.Snapshot {
	if body.Item == nil || body.Item.ID == "" {
		return nil
	}
	artist := ""
	if len(body.Item.Artists) > 0 {
		artist = body.Item.Artists[0].Name
	}
	return &domain.Snapshot{
		TrackID: body.Item.ID,
		Title:   body.Item.Name,
		Artist:  artist,
	}
}

func mapFeaturesToDomain(payload audioFeaturesPayload) domain.TrackFeatures {
	return domain.TrackFeatures{
		Descriptors: domain.Descriptors{
			Acousticness:     payload.Acousticness,
			Danceability:     payload.Danceability,
			Energy:           payload.Energy,
			Instrumentalness: payload.Instrumentalness,
			Key:              payload.Key,
			Liveness:         payload.Liveness,
			Loudness:         payload.Loudness,
			Mode:             payload.Mode,
			Speechiness:      payload.Speechiness,
			Tempo:            payload.Tempo,
			TimeSignature:    payload.TimeSignature,
			Valence:          payload.Valence,
		},
		Duration:        time.Duration(payload.DurationMs) * time.Millisecond,
		StreamingNative: true,
	}
}
