package webex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAccessToken_ExplicitTokenWins(t *testing.T) {
	t.Setenv(AccessTokenEnvVar, "env-token")

	client, err := New(context.Background(), &Config{AccessToken: "explicit-token"})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "explicit-token", client.AccessToken())
}

func TestResolveAccessToken_EnvFallback(t *testing.T) {
	t.Setenv(AccessTokenEnvVar, "env-token")

	client, err := New(context.Background(), &Config{})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "env-token", client.AccessToken())
}

func TestResolveAccessToken_OAuthExchange(t *testing.T) {
	t.Setenv(AccessTokenEnvVar, "")

	var exchanges atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/access_token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "client-1", r.Form.Get("client_id"))
		assert.Equal(t, "code-1", r.Form.Get("code"))
		exchanges.Add(1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"exchanged-token","token_type":"Bearer","expires_in":1209600,"refresh_token":"rt"}`))
	}))
	defer srv.Close()

	client, err := New(context.Background(), &Config{
		BaseURL: srv.URL + "/v1/",
		OAuth: &OAuthParams{
			ClientID:     "client-1",
			ClientSecret: "secret-1",
			Code:         "code-1",
			RedirectURI:  "https://example.com/redirect",
		},
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "exchanged-token", client.AccessToken())
	assert.EqualValues(t, 1, exchanges.Load())
}

func TestResolveAccessToken_EnvBeatsOAuth(t *testing.T) {
	t.Setenv(AccessTokenEnvVar, "env-token")

	// A reachable token endpoint would fail the test if it were called.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("token endpoint must not be called when the environment supplies a token")
	}))
	defer srv.Close()

	client, err := New(context.Background(), &Config{
		BaseURL: srv.URL + "/v1/",
		OAuth: &OAuthParams{
			ClientID:     "client-1",
			ClientSecret: "secret-1",
			Code:         "code-1",
			RedirectURI:  "https://example.com/redirect",
		},
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "env-token", client.AccessToken())
}

func TestResolveAccessToken_NoSourceFailsBeforeNetwork(t *testing.T) {
	t.Setenv(AccessTokenEnvVar, "")

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	_, err := New(context.Background(), &Config{BaseURL: srv.URL + "/v1/"})

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "no credential source available")
	assert.EqualValues(t, 0, requests.Load())
}

func TestResolveAccessToken_IncompleteOAuthParams(t *testing.T) {
	t.Setenv(AccessTokenEnvVar, "")

	_, err := New(context.Background(), &Config{
		OAuth: &OAuthParams{ClientID: "client-1"},
	})

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "incomplete")
}

func TestResolveAccessToken_ExchangeFailure(t *testing.T) {
	t.Setenv(AccessTokenEnvVar, "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid client"}`))
	}))
	defer srv.Close()

	_, err := New(context.Background(), &Config{
		BaseURL: srv.URL + "/v1/",
		OAuth: &OAuthParams{
			ClientID:     "client-1",
			ClientSecret: "bad-secret",
			Code:         "code-1",
			RedirectURI:  "https://example.com/redirect",
		},
	})

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "token exchange failed")
}
