package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/auth"
	"fleet-service/internal/config"
)

func newTestClient(url string) *IdentityClient {
	c := NewIdentityClient(config.AuthConfig{IdentityServiceURL: url, IdentityAPIKey: "anon-key"})
	c.backoff = time.Millisecond
	return c
}

func TestIdentityClientResolvesUser(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + userID.String() + `","email":"m@fleet.test"}`))
	}))
	defer srv.Close()

	identity, err := newTestClient(srv.URL).Resolve(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "m@fleet.test", identity.Email)
}

func TestIdentityClientRejectsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Resolve(context.Background(), "tok")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestIdentityClientSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Resolve(context.Background(), "tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidToken)
	assert.Contains(t, err.Error(), "502")
}

func TestIdentityClientGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Resolve(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}
