package domain

// Descriptors is the twelve-field set of audio measurements for one track.
// Every field is independently nullable; nil means the source reported no
// value. A populated bundle always originates from a single source, so the
// units within one bundle are coherent.
type Descriptors struct {
	Acousticness     *float64
	Danceability     *float64
	Energy           *float64
	Instrumentalness *float64
	Key              *int // pitch class, -1 when undetected
	Liveness         *float64
	Loudness         *float64 // dB, typically -60..0
	Mode             *int     // 1 = major, 0 = minor
	Speechiness      *float64
	Tempo            *float64 // BPM
	TimeSignature    *int
	Valence          *float64
}

// Complete reports whether the bundle carries measured values. Acousticness
// doubles as the presence marker; it is set by every source that answered.
func (d Descriptors) Complete() bool {
	return d.Acousticness != nil
}

// Overlay returns a copy of d where every field that is set on known takes
// precedence over d's value. Fields absent on both sides stay nil.
func (d Descriptors) Overlay(known Descriptors) Descriptors {
	out := d
	if known.Acousticness != nil {
		out.Acousticness = known.Acousticness
	}
	if known.Danceability != nil {
		out.Danceability = known.Danceability
	}
	if known.Energy != nil {
		out.Energy = known.Energy
	}
	if known.Instrumentalness != nil {
		out.Instrumentalness = known.Instrumentalness
	}
	if known.Key != nil {
		out.Key = known.Key
	}
	if known.Liveness != nil {
		out.Liveness = known.Liveness
	}
	if known.Loudness != nil {
		out.Loudness = known.Loudness
	}
	if known.Mode != nil {
		out.Mode = known.Mode
	}
	if known.Speechiness != nil {
		out.Speechiness = known.Speechiness
	}
	if known.Tempo != nil {
		out.Tempo = known.Tempo
	}
	if known.TimeSignature != nil {
		out.TimeSignature = known.TimeSignature
	}
	if known.Valence != nil {
		out.Valence = known.Valence
	}
	return out
}

// Float returns a pointer to v. Convenience for building descriptor bundles.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
