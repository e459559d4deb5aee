package spotify

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const accountsBaseURL = "https://accounts.spotify.com"

// NewOAuthClient returns an http.Client that authenticates requests with the
// account's refresh token, renewing access tokens as they expire. The client
// carries a bounded timeout so a stalled provider cannot block the poll loop
// indefinitely.
func NewOAuthClient(ctx context.Context, clientID, clientSecret, refreshToken string) *http.Client {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  accountsBaseURL + "/authorize",
			TokenURL: accountsBaseURL + "/api/token",
		},
		Scopes: []string{"user-read-currently-playing"},
	}

	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}))
	client.Timeout = 30 * time.Second
	return client
}
