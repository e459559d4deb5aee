package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// RebuildResult summarizes a history rebuild run.
type RebuildResult struct {
	Inserted int // records with descriptors written to the store
	Resolved int // records without descriptors that an earlier play already covers
	Missing  int // records with no descriptors anywhere
}

// RebuildHistory repopulates the track-feature cache from a play log. Every
// record with a complete bundle is inserted first-write-wins. Records whose
// loudness is non-negative hold raw analysis-service values that never got
// unit conversion (canonical loudness is always negative) and are converted
// before insert. Records without descriptors are checked against the store,
// since a later play of the same track may have resolved them.
func RebuildHistory(ctx context.Context, plog domain.PlayLog, store ports.HistoryStore, log zerolog.Logger) (RebuildResult, error) {
	var res RebuildResult

	for _, ev := range plog.Tracks {
		if !ev.Descriptors.Complete() {
			_, err := store.Get(ctx, ev.TrackID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				res.Missing++
			case err != nil:
				return RebuildResult{}, fmt.Errorf("rebuild: lookup %s: %w", ev.TrackID, err)
			default:
				res.Resolved++
			}
			continue
		}

		desc := ev.Descriptors
		if desc.Loudness != nil && *desc.Loudness >= 0 {
			desc = domain.ConvertAnalysisUnits(desc)
		}
		rec := domain.TrackRecord{
			TrackID:     ev.TrackID,
			Title:       ev.Title,
			Artist:      ev.Artist,
			Descriptors: desc,
			// the analysis service never reports a time signature
			StreamingNative: desc.TimeSignature != nil,
		}
		if err := store.UpsertIfAbsent(ctx, rec); err != nil {
			return RebuildResult{}, fmt.Errorf("rebuild: upsert %s: %w", ev.TrackID, err)
		}
		res.Inserted++
	}

	log.Info().
		Int("inserted", res.Inserted).
		Int("resolved", res.Resolved).
		Int("missing", res.Missing).
		Msg("history rebuilt")
	return res, nil
}
