package webex

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokens_Obtain(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "code-1", r.Form.Get("code"))

		// Token calls carry client credentials, not the session bearer.
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":1209600,"refresh_token":"rt","refresh_token_expires_in":7776000}`))
	}), nil)

	rec, err := client.AccessTokens.Obtain(context.Background(), "client-1", "secret-1", "code-1", "https://example.com/redirect")
	require.NoError(t, err)

	assert.Equal(t, "at", rec.String("access_token"))
	assert.Equal(t, "rt", rec.String("refresh_token"))
	assert.Greater(t, rec.Int("expires_in"), 0)
}

func TestAccessTokens_Refresh(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "rt", r.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-2","token_type":"Bearer","expires_in":1209600,"refresh_token":"rt-2"}`))
	}), nil)

	rec, err := client.AccessTokens.Refresh(context.Background(), "client-1", "secret-1", "rt")
	require.NoError(t, err)

	assert.Equal(t, "at-2", rec.String("access_token"))
	assert.Equal(t, "rt-2", rec.String("refresh_token"))
}

func TestAccessTokens_ParameterValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for invalid parameters")
	}), nil)

	var ce *ConfigError

	_, err := client.AccessTokens.Obtain(context.Background(), "", "secret", "code", "uri")
	require.ErrorAs(t, err, &ce)

	_, err = client.AccessTokens.Refresh(context.Background(), "client", "secret", "")
	require.ErrorAs(t, err, &ce)
}
