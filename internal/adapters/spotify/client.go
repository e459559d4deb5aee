// Package spotify implements the streaming-provider port against the
// Spotify Web API.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// DefaultBaseURL is the production Spotify Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Client is the HTTP client for the Spotify adapter. The supplied
// http.Client owns authentication (an OAuth transport in production).
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
	log         zerolog.Logger
}

// compile-time interface assertion
var _ ports.StreamingProvider = (*Client)(nil)

// NewClient constructs a Spotify client.
func NewClient(httpClient *http.Client, baseURL string, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBackoff,
		log:         log,
	}
}

// CurrentlyPlaying returns the account's playback snapshot. A 204 response
// or a response without a track item means nothing is playing and yields a
// nil snapshot.
func (c *Client) CurrentlyPlaying(ctx context.Context) (*domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me/player/currently-playing", nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: playback request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: playback request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: playback status %d", resp.StatusCode)
	}

	var body currentlyPlayingPayload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify: playback decode: %w", err)
	}

	return mapSnapshotToDomain(body), nil
}

// AudioFeatures returns Spotify's descriptor bundle for one track. The
// values are canonical and need no conversion.
func (c *Client) AudioFeatures(ctx context.Context, trackID string) (*domain.TrackFeatures, error) {
	reqURL := fmt.Sprintf("%s/audio-features/%s", c.baseURL, url.PathEscape(trackID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: features request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: features request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: features status %d", resp.StatusCode)
	}

	var body audioFeaturesPayload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify: features decode: %w", err)
	}

	tf := mapFeaturesToDomain(body)
	if !tf.Descriptors.Complete() {
		return nil, domain.ErrNotFound
	}
	return &tf, nil
}

// AudioFeaturesBatch resolves descriptors for up to 100 tracks in one call.
// The result corresponds positionally to trackIDs; tracks Spotify does not
// know are nil entries, mirroring the API's null placeholders.
func (c *Client) AudioFeaturesBatch(ctx context.Context, trackIDs []string) ([]*domain.TrackFeatures, error) {
	reqURL := fmt.Sprintf("%s/audio-features?ids=%s", c.baseURL, url.QueryEscape(strings.Join(trackIDs, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: batch features request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: batch features request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: batch features status %d", resp.StatusCode)
	}

	var body struct {
		AudioFeatures []*audioFeaturesPayload `json:"audio_features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify: batch features decode: %w", err)
	}

	out := make([]*domain.TrackFeatures, len(body.AudioFeatures))
	for i, payload := range body.AudioFeatures {
		if payload == nil {
			continue
		}
		tf := mapFeaturesToDomain(*payload)
		out[i] = &tf
	}
	return out, nil
}
