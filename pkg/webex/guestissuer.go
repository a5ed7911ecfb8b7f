package webex

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/golang-jwt/jwt/v5"
)

// GuestIssuerAPI mints guest tokens for a Guest Issuer application and
// trades them for guest access tokens at the jwt/login endpoint. Guests
// are ephemeral users identified only by the issuer's subject.
type GuestIssuerAPI struct {
	session *Session
	factory ObjectFactory
}

func newGuestIssuerAPI(s *Session, factory ObjectFactory) *GuestIssuerAPI {
	return &GuestIssuerAPI{session: s, factory: factory}
}

// GuestTokenParams identify a guest of a Guest Issuer application. Secret
// is the base64-encoded shared secret from the developer portal.
type GuestTokenParams struct {
	Subject     string
	DisplayName string
	IssuerID    string
	Secret      string
	Expiry      time.Duration
}

func (p GuestTokenParams) validate() error {
	return validation.Errors{
		"subject":     validation.Validate(p.Subject, validation.Required),
		"displayName": validation.Validate(p.DisplayName, validation.Required),
		"issuerId":    validation.Validate(p.IssuerID, validation.Required),
		"secret":      validation.Validate(p.Secret, validation.Required),
	}.Filter()
}

// Token mints a signed guest JWT. No network call is made; the token is
// signed locally with the issuer secret (HS256).
func (api *GuestIssuerAPI) Token(params GuestTokenParams) (string, error) {
	if err := params.validate(); err != nil {
		return "", &ConfigError{Reason: "invalid guest token parameters", Err: err}
	}

	key, err := base64.StdEncoding.DecodeString(params.Secret)
	if err != nil {
		return "", &ConfigError{Reason: "guest issuer secret is not valid base64", Err: err}
	}

	expiry := params.Expiry
	if expiry == 0 {
		expiry = time.Hour
	}

	claims := jwt.MapClaims{
		"sub":  params.Subject,
		"name": params.DisplayName,
		"iss":  params.IssuerID,
		"exp":  time.Now().Add(expiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign guest token: %w", err)
	}
	return signed, nil
}

// Login exchanges a guest JWT for a guest access token Record. The guest
// JWT authenticates the call in place of the session token.
func (api *GuestIssuerAPI) Login(ctx context.Context, guestToken string) (Record, error) {
	if err := validation.Validate(guestToken, validation.Required); err != nil {
		return Record{}, &ConfigError{Reason: "guest token is required", Err: err}
	}

	raw, err := api.session.requestWithBearer(ctx, guestToken, http.MethodPost, "jwt/login", nil, nil)
	if err != nil {
		return Record{}, err
	}

	g := apiGroup{session: api.session, factory: api.factory, resource: "guestToken"}
	return g.toRecord(raw, "jwt/login")
}
