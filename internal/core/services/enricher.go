package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// Enricher backfills descriptor bundles into a previously captured play log.
// Records are processed in contiguous fixed-size batches: a batch is copied
// through untouched when every member already has a play time and
// descriptors, and re-fetched with one batch features call otherwise. A
// fixed pause between fetching batches respects provider throttling.
type Enricher struct {
	streaming ports.StreamingProvider
	batchSize int
	pause     time.Duration
	log       zerolog.Logger
}

// NewEnricher constructs an Enricher.
func NewEnricher(streaming ports.StreamingProvider, batchSize int, pause time.Duration, log zerolog.Logger) *Enricher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Enricher{
		streaming: streaming,
		batchSize: batchSize,
		pause:     pause,
		log:       log,
	}
}

// Enrich returns a copy of in with missing play times and descriptors filled
// from the streaming provider. Existing non-null fields are kept; only null
// fields are filled, so re-running Enrich on a fully featured log is a
// no-op copy. When flush is non-nil it is called with the output log after
// every processed batch, so an interrupted run keeps its progress.
func (e *Enricher) Enrich(ctx context.Context, in domain.PlayLog, flush func(domain.PlayLog) error) (domain.PlayLog, error) {
	out := domain.PlayLog{
		Account: in.Account,
		Tracks:  make([]domain.PlayEvent, 0, len(in.Tracks)),
	}

	fetched := 0
	for start := 0; start < len(in.Tracks); start += e.batchSize {
		end := start + e.batchSize
		if end > len(in.Tracks) {
			end = len(in.Tracks)
		}
		batch := in.Tracks[start:end]

		if batchNeedsFetch(batch) {
			if fetched > 0 {
				if err := sleepContext(ctx, e.pause); err != nil {
					return domain.PlayLog{}, err
				}
			}
			enriched, err := e.fetchBatch(ctx, batch)
			if err != nil {
				return domain.PlayLog{}, err
			}
			out.Tracks = append(out.Tracks, enriched...)
			fetched++
		} else {
			out.Tracks = append(out.Tracks, batch...)
		}

		if flush != nil {
			if err := flush(out); err != nil {
				return domain.PlayLog{}, fmt.Errorf("enricher: flush: %w", err)
			}
		}
		e.log.Info().
			Int("from", start).
			Int("to", end).
			Int("total", len(in.Tracks)).
			Msg("batch processed")
	}

	return out, nil
}

// batchNeedsFetch reports whether any member of the batch is missing its
// play time or its descriptors.
func batchNeedsFetch(batch []domain.PlayEvent) bool {
	for _, ev := range batch {
		if !ev.Finalized() || !ev.Descriptors.Complete() {
			return true
		}
	}
	return false
}

func (e *Enricher) fetchBatch(ctx context.Context, batch []domain.PlayEvent) ([]domain.PlayEvent, error) {
	ids := make([]string, len(batch))
	for i, ev := range batch {
		ids[i] = ev.TrackID
	}

	features, err := e.streaming.AudioFeaturesBatch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("enricher: batch features: %w", err)
	}

	out := make([]domain.PlayEvent, len(batch))
	for i, ev := range batch {
		// a nil entry means the provider has nothing for this track; the
		// record degrades to an explicit empty bundle instead of failing
		// the batch
		var tf domain.TrackFeatures
		if i < len(features) && features[i] != nil {
			tf = *features[i]
		}
		ev.Descriptors = tf.Descriptors.Overlay(ev.Descriptors)
		if !ev.Finalized() && tf.Duration > 0 {
			// approximate the play time with the track's full duration
			ev.PlayTime = tf.Duration.Round(time.Second)
		}
		out[i] = ev
	}
	return out, nil
}
