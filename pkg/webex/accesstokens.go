package webex

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/oauth2"
)

// AccessTokensAPI exposes the OAuth token endpoint: exchanging an
// authorization code for tokens and refreshing an expired access token.
// Unlike the other accessors these calls are not bearer-authenticated; they
// carry the integration's client credentials instead.
type AccessTokensAPI struct {
	session *Session
	factory ObjectFactory
}

func newAccessTokensAPI(s *Session, factory ObjectFactory) *AccessTokensAPI {
	return &AccessTokensAPI{session: s, factory: factory}
}

// Obtain exchanges an authorization code for an access token Record. The
// Record carries access_token, expires_in, refresh_token, and
// refresh_token_expires_in.
func (api *AccessTokensAPI) Obtain(ctx context.Context, clientID, clientSecret, code, redirectURI string) (Record, error) {
	if err := (validation.Errors{
		"clientId":     validation.Validate(clientID, validation.Required),
		"clientSecret": validation.Validate(clientSecret, validation.Required),
		"code":         validation.Validate(code, validation.Required),
		"redirectUri":  validation.Validate(redirectURI, validation.Required),
	}).Filter(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid token exchange parameters", Err: err}
	}

	token, err := api.oauthConfig(clientID, clientSecret, redirectURI).Exchange(api.oauthContext(ctx), code)
	if err != nil {
		return Record{}, &ConfigError{Reason: "OAuth token exchange failed", Err: err}
	}
	return api.tokenRecord(token)
}

// Refresh trades a refresh token for a new access token Record.
func (api *AccessTokensAPI) Refresh(ctx context.Context, clientID, clientSecret, refreshToken string) (Record, error) {
	if err := (validation.Errors{
		"clientId":     validation.Validate(clientID, validation.Required),
		"clientSecret": validation.Validate(clientSecret, validation.Required),
		"refreshToken": validation.Validate(refreshToken, validation.Required),
	}).Filter(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid token refresh parameters", Err: err}
	}

	source := api.oauthConfig(clientID, clientSecret, "").TokenSource(
		api.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return Record{}, &ConfigError{Reason: "OAuth token refresh failed", Err: err}
	}
	return api.tokenRecord(token)
}

func (api *AccessTokensAPI) oauthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  api.session.baseURL.String() + accessTokenEndpoint,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// oauthContext routes the oauth2 transport through a plain client with the
// session's timeout. The session's bearer header must not leak into token
// calls.
func (api *AccessTokensAPI) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: api.session.timeout})
}

func (api *AccessTokensAPI) tokenRecord(token *oauth2.Token) (Record, error) {
	data := map[string]any{
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		data["expires_in"] = int(token.ExpiresIn)
	}
	if v := token.Extra("refresh_token_expires_in"); v != nil {
		data["refresh_token_expires_in"] = v
	}
	return api.factory("accessToken", data)
}
