package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
)

// Manager verifies and refreshes stored credentials.
type Manager struct {
	path string

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewManager creates a manager over the credential file at path; empty
// path selects the default location.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultCredentialsPath()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{path: path, now: time.Now}, nil
}

// EnsureCredentials loads the stored credentials and makes sure they
// are usable: an API key passes as-is; an OAuth access token that is
// expired but refreshable is refreshed and the refreshed token is
// persisted. Returns an error when nothing is configured or the
// refresh fails; both require the user to re-authenticate.
func (m *Manager) EnsureCredentials(ctx context.Context) (*Credentials, error) {
	creds, err := LoadCredentials(m.path)
	if err != nil {
		return nil, err
	}

	if !creds.Configured() {
		// The environment variable outranks nothing-on-disk.
		if key := os.Getenv("ONBOARDGEN_API_KEY"); key != "" {
			return &Credentials{APIKey: key}, nil
		}
		return nil, fmt.Errorf("no credentials configured: run 'onboardgen auth login' or set ONBOARDGEN_API_KEY")
	}

	if creds.APIKey != "" {
		return creds, nil
	}

	// OAuth path: refresh if the access token has expired.
	tok := creds.OAuth
	if tok.Expiry.IsZero() || m.now().Before(tok.Expiry) {
		return creds, nil
	}
	if tok.RefreshToken == "" {
		return nil, fmt.Errorf("access token expired and no refresh token is stored: re-authenticate with 'onboardgen auth login'")
	}

	refreshed, err := m.refresh(ctx, tok)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}

	creds.OAuth.AccessToken = refreshed.AccessToken
	creds.OAuth.Expiry = refreshed.Expiry
	if refreshed.RefreshToken != "" {
		creds.OAuth.RefreshToken = refreshed.RefreshToken
	}
	if err := SaveCredentials(m.path, creds); err != nil {
		return nil, err
	}

	return creds, nil
}

// SetAPIKey stores an API key credential.
func (m *Manager) SetAPIKey(key string) error {
	creds, err := LoadCredentials(m.path)
	if err != nil {
		return err
	}
	creds.APIKey = key
	return SaveCredentials(m.path, creds)
}

// Status loads the credentials without refreshing anything.
func (m *Manager) Status() (*Credentials, error) {
	return LoadCredentials(m.path)
}

func (m *Manager) refresh(ctx context.Context, tok *OAuthToken) (*oauth2.Token, error) {
	conf := &oauth2.Config{
		ClientID: tok.ClientID,
		Endpoint: oauth2.Endpoint{TokenURL: tok.TokenURL},
	}
	return conf.TokenSource(ctx, tok.token()).Token()
}
