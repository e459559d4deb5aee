package ports

import (
	"context"

	"spotlog/internal/core/domain"
)

// HistoryStore is the deduplicated track-feature cache. It is derived data,
// rebuildable from the play log.
type HistoryStore interface {
	// UpsertIfAbsent inserts the record unless a row for its track already
	// exists. First write wins; existing descriptors are never overwritten.
	UpsertIfAbsent(ctx context.Context, rec domain.TrackRecord) error

	// Get returns the cached record for a track, or domain.ErrNotFound.
	Get(ctx context.Context, trackID string) (domain.TrackRecord, error)

	GetAll(ctx context.Context) ([]domain.TrackRecord, error)
}

// PlayLogStore persists the listening history as one document, read wholly
// and rewritten wholly on each update.
type PlayLogStore interface {
	Load() (domain.PlayLog, error)
	Save(log domain.PlayLog) error
}
