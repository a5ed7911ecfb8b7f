package webex

import (
	"context"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EventsAPI exposes the /events compliance resource.
type EventsAPI struct {
	apiGroup
}

func newEventsAPI(s *Session, factory ObjectFactory) *EventsAPI {
	return &EventsAPI{newAPIGroup(s, factory, "event", "events")}
}

// EventsListOptions filter an events listing.
type EventsListOptions struct {
	Resource string
	Type     string
	ActorID  string
	From     time.Time
	To       time.Time
	Max      int
}

func (o EventsListOptions) validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.In("created", "updated", "deleted")),
		validation.Field(&o.Max, validation.Min(0)),
	)
}

func (o EventsListOptions) query() url.Values {
	params := url.Values{}
	if o.Resource != "" {
		params.Set("resource", o.Resource)
	}
	if o.Type != "" {
		params.Set("type", o.Type)
	}
	if o.ActorID != "" {
		params.Set("actorId", o.ActorID)
	}
	if !o.From.IsZero() {
		params.Set("from", o.From.UTC().Format(time.RFC3339))
	}
	if !o.To.IsZero() {
		params.Set("to", o.To.UTC().Format(time.RFC3339))
	}
	if o.Max > 0 {
		params.Set("max", strconv.Itoa(o.Max))
	}
	return params
}

// List returns compliance events in the organization. Compliance officer
// only.
func (api *EventsAPI) List(ctx context.Context, opts EventsListOptions) *RecordIterator {
	if err := opts.validate(); err != nil {
		return api.failedIterator(&ConfigError{Reason: "invalid events list options", Err: err})
	}
	return api.list(ctx, opts.query())
}

// Get retrieves a compliance event by ID.
func (api *EventsAPI) Get(ctx context.Context, eventID string) (Record, error) {
	if err := api.requireID("eventId", eventID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, eventID, nil)
}
