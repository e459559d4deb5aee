// Package soundstat implements the fallback analysis-service feature source.
// SoundStat reports descriptors on normalized [0,1] scales; the adapter
// converts them to canonical units before they cross the port boundary.
package soundstat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// DefaultBaseURL is the production SoundStat API root.
const DefaultBaseURL = "https://soundstat.info"

// Client is the HTTP client for the SoundStat adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// compile-time interface assertion
var _ ports.FeatureSource = (*Client)(nil)

// NewClient constructs a SoundStat client authenticated with a static API key.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

func (c *Client) Name() string { return "soundstat" }

// Fetch retrieves the analysis for a track and converts it to canonical
// units. Tracks SoundStat has not analyzed yield domain.ErrNotFound.
func (c *Client) Fetch(ctx context.Context, trackID string) (*domain.TrackFeatures, error) {
	reqURL := fmt.Sprintf("%s/api/v1/track/%s", c.baseURL, url.PathEscape(trackID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("soundstat: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("soundstat: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("soundstat: status %d", resp.StatusCode)
	}

	var body trackPayload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("soundstat: decode: %w", err)
	}
	if body.Features == nil {
		// analysis not done yet; the track may resolve on a later attempt
		return nil, domain.ErrNotFound
	}

	d := domain.ConvertAnalysisUnits(mapFeaturesToDomain(*body.Features))
	if !d.Complete() {
		return nil, domain.ErrNotFound
	}
	return &domain.TrackFeatures{Descriptors: d}, nil
}

type trackPayload struct {
	ID       string           `json:"id"`
	Features *featuresPayload `json:"features"`
}

// featuresPayload carries the fields SoundStat measures. It has no liveness,
// speechiness or time signature, which is how analysis-derived cache rows
// are recognizable later.
type featuresPayload struct {
	Acousticness     *float64 `json:"acousticness"`
	Danceability     *float64 `json:"danceability"`
	Energy           *float64 `json:"energy"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Key              *int     `json:"key"`
	Loudness         *float64 `json:"loudness"`
	Mode             *int     `json:"mode"`
	Tempo            *float64 `json:"tempo"`
	Valence          *float64 `json:"valence"`
}

func mapFeaturesToDomain(p featuresPayload) domain.Descriptors {
	return domain.Descriptors{
		Acousticness:     p.Acousticness,
		Danceability:     p.Danceability,
		Energy:           p.Energy,
		Instrumentalness: p.Instrumentalness,
		Key:              p.Key,
		Loudness:         p.Loudness,
		Mode:             p.Mode,
		Tempo:            p.Tempo,
		Valence:          p.Valence,
	}
}
