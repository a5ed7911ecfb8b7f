package webex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// apiGroup is the stateless base of every resource accessor: a reference
// to the shared session, the factory, and the resource's endpoint. Accessor
// methods are thin compositions over it.
type apiGroup struct {
	session  *Session
	factory  ObjectFactory
	resource string
	endpoint string
}

func newAPIGroup(s *Session, factory ObjectFactory, resource, endpoint string) apiGroup {
	return apiGroup{session: s, factory: factory, resource: resource, endpoint: endpoint}
}

// requireID validates a resource identifier before any network activity.
func (g apiGroup) requireID(name, id string) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return &ConfigError{Reason: fmt.Sprintf("%s is required", name), Err: err}
	}
	return nil
}

func (g apiGroup) get(ctx context.Context, id string, params url.Values) (Record, error) {
	return g.getAt(ctx, g.endpoint+"/"+url.PathEscape(id), params)
}

func (g apiGroup) getAt(ctx context.Context, suffix string, params url.Values) (Record, error) {
	raw, err := g.session.Request(ctx, http.MethodGet, suffix, params, nil)
	if err != nil {
		return Record{}, err
	}
	return g.toRecord(raw, suffix)
}

func (g apiGroup) create(ctx context.Context, body any) (Record, error) {
	raw, err := g.session.Request(ctx, http.MethodPost, g.endpoint, nil, body)
	if err != nil {
		return Record{}, err
	}
	return g.toRecord(raw, g.endpoint)
}

func (g apiGroup) update(ctx context.Context, id string, body any) (Record, error) {
	suffix := g.endpoint + "/" + url.PathEscape(id)
	raw, err := g.session.Request(ctx, http.MethodPut, suffix, nil, body)
	if err != nil {
		return Record{}, err
	}
	return g.toRecord(raw, suffix)
}

func (g apiGroup) delete(ctx context.Context, id string) error {
	suffix := g.endpoint + "/" + url.PathEscape(id)
	_, err := g.session.Request(ctx, http.MethodDelete, suffix, nil, nil)
	return err
}

func (g apiGroup) list(ctx context.Context, params url.Values) *RecordIterator {
	return g.session.RequestPaginated(ctx, g.endpoint, params, g.resource, g.factory)
}

// failedIterator yields nothing and reports err, so list operations can
// surface parameter-validation failures through the iterator contract.
func (g apiGroup) failedIterator(err error) *RecordIterator {
	return &RecordIterator{err: err, done: true}
}

// toRecord converts a raw response body into a Record via the configured
// factory. Empty bodies yield the zero Record.
func (g apiGroup) toRecord(raw json.RawMessage, endpoint string) (Record, error) {
	if len(raw) == 0 {
		return Record{}, nil
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Record{}, &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	return g.factory(g.resource, data)
}
