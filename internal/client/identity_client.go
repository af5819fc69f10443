package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/auth"
	"fleet-service/internal/config"
)

const userInfoPath = "/auth/v1/user"

type identityUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IdentityClient resolves access tokens by asking the identity provider who
// owns them.
type IdentityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

func NewIdentityClient(cfg config.AuthConfig) *IdentityClient {
	return &IdentityClient{
		baseURL: cfg.IdentityServiceURL,
		apiKey:  cfg.IdentityAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

func (c *IdentityClient) Resolve(ctx context.Context, token string) (auth.Identity, error) {
	if c.baseURL == "" {
		return auth.Identity{}, fmt.Errorf("identity service URL is not configured")
	}

	newRequest := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userInfoPath, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if c.apiKey != "" {
			req.Header.Set("apikey", c.apiKey)
		}
		return req, nil
	}

	// Network errors are retried with a growing pause; HTTP answers are not.
	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		req, err := newRequest()
		if err != nil {
			return auth.Identity{}, fmt.Errorf("failed to create request: %w", err)
		}
		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil {
			break
		}
		if attempt == c.maxRetries-1 {
			return auth.Identity{}, fmt.Errorf("failed to execute request after %d attempts: %w", c.maxRetries, lastErr)
		}
		select {
		case <-ctx.Done():
			return auth.Identity{}, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * c.backoff):
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return auth.Identity{}, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return auth.Identity{}, auth.ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return auth.Identity{}, fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(body))
	}

	var user identityUser
	if err := json.Unmarshal(body, &user); err != nil {
		return auth.Identity{}, fmt.Errorf("failed to parse response: %w", err)
	}
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: identity service returned id %q", auth.ErrInvalidToken, user.ID)
	}

	return auth.Identity{UserID: userID, Email: user.Email}, nil
}
