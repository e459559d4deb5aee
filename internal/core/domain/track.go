package domain

import "time"

// Snapshot is one currently-playing poll result. A nil *Snapshot means
// nothing is playing.
type Snapshot struct {
	TrackID string
	Title   string
	Artist  string
}

// TrackFeatures is a single source's answer for one track: a descriptor
// bundle, the track duration the source reported (zero when unknown), and
// whether the values are streaming-provider native or were converted from
// the analysis service's normalized scales.
type TrackFeatures struct {
	Descriptors     Descriptors
	Duration        time.Duration
	StreamingNative bool
}

// TrackRecord is one row of the track-feature cache, keyed by track identity.
// Rows are inserted once per distinct track and never overwritten.
type TrackRecord struct {
	TrackID string
	Title   string
	Artist  string
	Descriptors
	StreamingNative bool
}
