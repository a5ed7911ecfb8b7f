package webex

import (
	"context"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// WebhooksAPI exposes the /webhooks resource.
type WebhooksAPI struct {
	apiGroup
}

func newWebhooksAPI(s *Session, factory ObjectFactory) *WebhooksAPI {
	return &WebhooksAPI{newAPIGroup(s, factory, "webhook", "webhooks")}
}

// WebhookFields describes a webhook registration.
type WebhookFields struct {
	Name      string `json:"name,omitempty"`
	TargetURL string `json:"targetUrl,omitempty"`
	Resource  string `json:"resource,omitempty"`
	Event     string `json:"event,omitempty"`
	Filter    string `json:"filter,omitempty"`
	Secret    string `json:"secret,omitempty"`
}

func (f WebhookFields) validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.TargetURL, validation.Required, is.URL),
		validation.Field(&f.Resource, validation.Required),
		validation.Field(&f.Event, validation.Required),
	)
}

// List returns the authenticated user's webhooks.
func (api *WebhooksAPI) List(ctx context.Context, max int) *RecordIterator {
	if max < 0 {
		return api.failedIterator(&ConfigError{Reason: "max must be non-negative"})
	}
	params := url.Values{}
	if max > 0 {
		params.Set("max", strconv.Itoa(max))
	}
	return api.list(ctx, params)
}

// Create registers a webhook.
func (api *WebhooksAPI) Create(ctx context.Context, fields WebhookFields) (Record, error) {
	if err := fields.validate(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid webhook", Err: err}
	}
	return api.create(ctx, fields)
}

// Get retrieves a webhook by ID.
func (api *WebhooksAPI) Get(ctx context.Context, webhookID string) (Record, error) {
	if err := api.requireID("webhookId", webhookID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, webhookID, nil)
}

// Update changes a webhook's name or target URL.
func (api *WebhooksAPI) Update(ctx context.Context, webhookID, name, targetURL string) (Record, error) {
	if err := api.requireID("webhookId", webhookID); err != nil {
		return Record{}, err
	}
	if err := (validation.Errors{
		"name":      validation.Validate(name, validation.Required),
		"targetUrl": validation.Validate(targetURL, validation.Required, is.URL),
	}).Filter(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid webhook update", Err: err}
	}
	return api.update(ctx, webhookID, map[string]string{
		"name":      name,
		"targetUrl": targetURL,
	})
}

// Delete unregisters a webhook.
func (api *WebhooksAPI) Delete(ctx context.Context, webhookID string) error {
	if err := api.requireID("webhookId", webhookID); err != nil {
		return err
	}
	return api.delete(ctx, webhookID)
}
