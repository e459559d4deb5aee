package spotify

// Raw API shapes. Descriptor fields are pointers so a value the API omits
// stays distinguishable from a reported zero.

type currentlyPlayingPayload struct {
	IsPlaying bool `json:"is_playing"`
	Item      *struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
	} `json:"item"`
}

type audioFeaturesPayload struct {
	ID               string   `json:"id"`
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
	DurationMs       int      `json:"duration_ms"`
}
