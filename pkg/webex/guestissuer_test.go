package webex

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestIssuer_TokenClaims(t *testing.T) {
	secret := []byte("guest-issuer-shared-secret")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("minting a guest token must not call the API")
	}), nil)

	signed, err := client.GuestIssuer.Token(GuestTokenParams{
		Subject:     "guest-42",
		DisplayName: "Guest User",
		IssuerID:    "issuer-1",
		Secret:      base64.StdEncoding.EncodeToString(secret),
		Expiry:      30 * time.Minute,
	})
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "guest-42", claims["sub"])
	assert.Equal(t, "Guest User", claims["name"])
	assert.Equal(t, "issuer-1", claims["iss"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp.Time, time.Minute)
}

func TestGuestIssuer_TokenValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), nil)

	var ce *ConfigError

	_, err := client.GuestIssuer.Token(GuestTokenParams{Subject: "guest-42"})
	require.ErrorAs(t, err, &ce)

	_, err = client.GuestIssuer.Token(GuestTokenParams{
		Subject:     "guest-42",
		DisplayName: "Guest User",
		IssuerID:    "issuer-1",
		Secret:      "%%% not base64 %%%",
	})
	require.ErrorAs(t, err, &ce)
}

func TestGuestIssuer_LoginUsesGuestBearer(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`{"token":"guest-access-token","expiresIn":3600}`))
	}), nil)

	rec, err := client.GuestIssuer.Login(context.Background(), "guest.jwt.token")
	require.NoError(t, err)

	assert.Equal(t, "Bearer guest.jwt.token", gotAuth)
	assert.Equal(t, "/v1/jwt/login", gotPath)
	assert.Equal(t, "guest-access-token", rec.String("token"))
}
