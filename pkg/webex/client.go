package webex

import (
	"context"
	"time"
)

// Client is the top-level entry point: one authenticated session and every
// resource accessor bound to it.
type Client struct {
	session *Session

	People            *PeopleAPI
	Rooms             *RoomsAPI
	Memberships       *MembershipsAPI
	Messages          *MessagesAPI
	Teams             *TeamsAPI
	TeamMemberships   *TeamMembershipsAPI
	Webhooks          *WebhooksAPI
	Organizations     *OrganizationsAPI
	Licenses          *LicensesAPI
	Roles             *RolesAPI
	Events            *EventsAPI
	AttachmentActions *AttachmentActionsAPI
	AccessTokens      *AccessTokensAPI
	GuestIssuer       *GuestIssuerAPI
}

// New resolves credentials, builds the shared session, and composes the
// accessors. The context bounds only construction (the optional OAuth
// exchange); it does not scope the client's lifetime. Callers own the
// returned client and must Close it.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	// Work on a copy so the caller's struct is never mutated.
	resolved := *cfg
	resolved.applyDefaults()
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	token, err := resolveAccessToken(ctx, &resolved)
	if err != nil {
		return nil, err
	}

	session, err := newSession(&resolved, token)
	if err != nil {
		return nil, err
	}

	factory := resolved.ObjectFactory
	return &Client{
		session:           session,
		People:            newPeopleAPI(session, factory),
		Rooms:             newRoomsAPI(session, factory),
		Memberships:       newMembershipsAPI(session, factory),
		Messages:          newMessagesAPI(session, factory),
		Teams:             newTeamsAPI(session, factory),
		TeamMemberships:   newTeamMembershipsAPI(session, factory),
		Webhooks:          newWebhooksAPI(session, factory),
		Organizations:     newOrganizationsAPI(session, factory),
		Licenses:          newLicensesAPI(session, factory),
		Roles:             newRolesAPI(session, factory),
		Events:            newEventsAPI(session, factory),
		AttachmentActions: newAttachmentActionsAPI(session, factory),
		AccessTokens:      newAccessTokensAPI(session, factory),
		GuestIssuer:       newGuestIssuerAPI(session, factory),
	}, nil
}

// With runs fn against a freshly constructed client and closes it on every
// exit path, including panics and fn errors.
func With(ctx context.Context, cfg *Config, fn func(*Client) error) error {
	client, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

// Close releases the session's connection pool. In-flight requests fail
// with ErrSessionClosed. Close is idempotent.
func (c *Client) Close() error {
	return c.session.Close()
}

// AccessToken returns the token in effect for this client.
func (c *Client) AccessToken() string { return c.session.token }

// BaseURL returns the base URL prefixed to every endpoint.
func (c *Client) BaseURL() string { return c.session.baseURL.String() }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.session.timeout }

// WaitOnRateLimit reports whether automatic 429 handling is enabled.
func (c *Client) WaitOnRateLimit() bool { return c.session.waitOnRateLimit }

// Session exposes the shared session for callers that need endpoints not
// wrapped by an accessor.
func (c *Client) Session() *Session { return c.session }
