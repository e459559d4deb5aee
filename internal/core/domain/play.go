package domain

import "time"

// PlayEvent is one qualified listen: a track that was playing for at least
// the minimum play time before it changed or playback stopped.
type PlayEvent struct {
	TrackID     string
	Title       string
	Artist      string
	PlayedAt    time.Time
	PlayTime    time.Duration // zero until the play has been finalized
	Descriptors Descriptors
}

// Finalized reports whether the play has ended and its duration is known.
func (e PlayEvent) Finalized() bool {
	return e.PlayTime > 0
}

// PlayLog is the append-only listening history for one account. Track order
// is insertion order; the same track may appear any number of times.
type PlayLog struct {
	Account string
	Tracks  []PlayEvent
}
