package webex

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/oauth2"
)

// AccessTokenEnvVar supplies a default access token when none is passed
// explicitly.
const AccessTokenEnvVar = "WEBEX_TEAMS_ACCESS_TOKEN"

// accessTokenEndpoint is the token-exchange suffix relative to the base URL.
const accessTokenEndpoint = "access_token"

// resolveAccessToken produces exactly one access token, trying sources in
// priority order: explicit token, environment variable, OAuth
// authorization-code exchange. The exchange is the only permitted network
// activity before the session exists and runs over a temporary tokenless
// client.
func resolveAccessToken(ctx context.Context, cfg *Config) (string, error) {
	if cfg.AccessToken != "" {
		return cfg.AccessToken, nil
	}

	var sources error
	sources = multierror.Append(sources, errors.New("no explicit access token supplied"))

	if token := os.Getenv(AccessTokenEnvVar); token != "" {
		return token, nil
	}
	sources = multierror.Append(sources, fmt.Errorf("environment variable %s is not set", AccessTokenEnvVar))

	if cfg.OAuth.complete() {
		token, err := exchangeAuthorizationCode(ctx, cfg)
		if err != nil {
			return "", &ConfigError{Reason: "OAuth token exchange failed", Err: err}
		}
		return token, nil
	}
	if cfg.OAuth != nil {
		sources = multierror.Append(sources, errors.New("OAuth parameters incomplete: client ID, client secret, code, and redirect URI are all required"))
	} else {
		sources = multierror.Append(sources, errors.New("no OAuth parameters supplied"))
	}

	return "", &ConfigError{Reason: "no credential source available", Err: sources}
}

// exchangeAuthorizationCode performs the one-time code-for-token exchange
// against the access-token endpoint.
func exchangeAuthorizationCode(ctx context.Context, cfg *Config) (string, error) {
	oc := &oauth2.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.BaseURL + accessTokenEndpoint,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	// Minimal client for the bootstrap call; the real session pool does
	// not exist yet.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})

	token, err := oc.Exchange(ctx, cfg.OAuth.Code)
	if err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", errors.New("token endpoint returned an empty access token")
	}
	return token.AccessToken, nil
}

// AuthorizationURL builds the URL a user visits to obtain an authorization
// code for the configured integration. Scopes are space-separated in the
// Webex developer portal but passed individually here.
func AuthorizationURL(baseURL, clientID, redirectURI, state string, scopes []string) string {
	oc := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL: baseURL + "authorize",
		},
	}
	return oc.AuthCodeURL(state)
}
