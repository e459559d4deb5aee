package playlog

import (
	"fmt"
	"time"

	"spotlog/internal/core/domain"
)

// playedAtLayout is the timestamp format the predecessor scripts wrote,
// e.g. "2024-March-05 21:17:45".
const playedAtLayout = "2006-January-02 15:04:05"

type logDocument struct {
	Account string        `json:"spotify_account"`
	Tracks  []trackRecord `json:"tracks"`
}

// trackRecord is the wire shape of one play. play_time is an H:MM:SS string,
// empty while the play has not been finalized.
type trackRecord struct {
	PlayedAt         string   `json:"played_at"`
	Name             string   `json:"name"`
	ID               string   `json:"id"`
	Artist           string   `json:"artist"`
	PlayTime         string   `json:"play_time"`
	Acousticness     *float64 `json:"acousticness"`
	Danceability     *float64 `json:"danceability"`
	Energy           *float64 `json:"energy"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Key              *int     `json:"key"`
	Liveness         *float64 `json:"liveness"`
	Loudness         *float64 `json:"loudness"`
	Mode             *int     `json:"mode"`
	Speechiness      *float64 `json:"speechiness"`
	Tempo            *float64 `json:"tempo"`
	TimeSignature    *int     `json:"time_signature"`
	Valence          *float64 `json:"valence"`
}

func mapLogToDomain(doc logDocument) (domain.PlayLog, error) {
	plog := domain.PlayLog{
		Account: doc.Account,
		Tracks:  make([]domain.PlayEvent, 0, len(doc.Tracks)),
	}
	for i, rec := range doc.Tracks {
		ev, err := mapRecordToDomain(rec)
		if err != nil {
			return domain.PlayLog{}, fmt.Errorf("track %d: %w", i, err)
		}
		plog.Tracks = append(plog.Tracks, ev)
	}
	return plog, nil
}

func mapRecordToDomain(rec trackRecord) (domain.PlayEvent, error) {
	playedAt, err := time.ParseInLocation(playedAtLayout, rec.PlayedAt, time.Local)
	if err != nil {
		return domain.PlayEvent{}, fmt.Errorf("played_at %q: %w", rec.PlayedAt, err)
	}
	playTime, err := parsePlayTime(rec.PlayTime)
	if err != nil {
		return domain.PlayEvent{}, err
	}

	return domain.PlayEvent{
		TrackID:  rec.ID,
		Title:    rec.Name,
		Artist:   rec.Artist,
		PlayedAt: playedAt,
		PlayTime: playTime,
		Descriptors: domain.Descriptors{
			Acousticness:     rec.Acousticness,
			Danceability:     rec.Danceability,
			Energy:           rec.Energy,
			Instrumentalness: rec.Instrumentalness,
			Key:              rec.Key,
			Liveness:         rec.Liveness,
			Loudness:         rec.Loudness,
			Mode:             rec.Mode,
			Speechiness:      rec.Speechiness,
			Tempo:            rec.Tempo,
			TimeSignature:    rec.TimeSignature,
			Valence:          rec.Valence,
		},
	}, nil
}

func mapLogToDocument(plog domain.PlayLog) logDocument {
	doc := logDocument{
		Account: plog.Account,
		Tracks:  make([]trackRecord, 0, len(plog.Tracks)),
	}
	for _, ev := range plog.Tracks {
		doc.Tracks = append(doc.Tracks, mapEventToRecord(ev))
	}
	return doc
}

func mapEventToRecord(ev domain.PlayEvent) trackRecord {
	d := ev.Descriptors
	return trackRecord{
		PlayedAt:         ev.PlayedAt.Format(playedAtLayout),
		Name:             ev.Title,
		ID:               ev.TrackID,
		Artist:           ev.Artist,
		PlayTime:         formatPlayTime(ev.PlayTime),
		Acousticness:     d.Acousticness,
		Danceability:     d.Danceability,
		Energy:           d.Energy,
		Instrumentalness: d.Instrumentalness,
		Key:              d.Key,
		Liveness:         d.Liveness,
		Loudness:         d.Loudness,
		Mode:             d.Mode,
		Speechiness:      d.Speechiness,
		Tempo:            d.Tempo,
		TimeSignature:    d.TimeSignature,
		Valence:          d.Valence,
	}
}

// formatPlayTime renders a duration as H:MM:SS (hours unpadded, matching
// Python's timedelta formatting). Zero maps to the empty string.
func formatPlayTime(d time.Duration) string {
	if d == 0 {
		return ""
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}

func parsePlayTime(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("play_time %q: %w", s, err)
	}
	return time.Duration(h*3600+m*60+sec) * time.Second, nil
}
