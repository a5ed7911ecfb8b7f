package webex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// RecordIterator is a lazy, forward-only sequence of Records spanning a
// paginated list endpoint. Pages are fetched one at a time, on demand;
// iteration ends when a page arrives without a continuation link.
//
// An iterator is not safe for concurrent use and cannot be restarted; call
// the list operation again for a fresh sequence.
type RecordIterator struct {
	ctx      context.Context
	session  *Session
	factory  ObjectFactory
	resource string

	suffix string
	params url.Values

	started bool
	done    bool
	buf     []Record
	idx     int
	current Record
	err     error
}

// RequestPaginated starts a paginated GET against a list endpoint. The
// first page is not fetched until the iterator's first Next call.
func (s *Session) RequestPaginated(ctx context.Context, suffix string, params url.Values, resource string, factory ObjectFactory) *RecordIterator {
	return &RecordIterator{
		ctx:      ctx,
		session:  s,
		factory:  factory,
		resource: resource,
		suffix:   suffix,
		params:   params,
	}
}

// Next advances to the next Record, fetching the next page when the
// current one is exhausted. It returns false at the end of the sequence or
// on error; check Err after iteration.
func (it *RecordIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for it.idx >= len(it.buf) {
		if it.done {
			return false
		}
		if !it.fetchPage() {
			return false
		}
	}
	it.current = it.buf[it.idx]
	it.idx++
	return true
}

// Record returns the Record positioned by the last successful Next call.
func (it *RecordIterator) Record() Record { return it.current }

// Err returns the first error encountered while iterating.
func (it *RecordIterator) Err() error { return it.err }

// Collect drains the remaining sequence into a slice.
func (it *RecordIterator) Collect() ([]Record, error) {
	var out []Record
	for it.Next() {
		out = append(out, it.Record())
	}
	if it.err != nil {
		return nil, it.err
	}
	return out, nil
}

// fetchPage loads the next page into the buffer. The continuation URL from
// the Link header replaces the original suffix and parameters for every
// page after the first.
func (it *RecordIterator) fetchPage() bool {
	suffix, params := it.suffix, it.params
	if it.started {
		// suffix already holds the absolute continuation URL, query
		// string included.
		params = nil
	}

	raw, next, err := it.session.do(it.ctx, it.session.token, http.MethodGet, suffix, params, "", nil, nil)
	if err != nil {
		it.err = err
		return false
	}

	it.started = true
	it.buf = it.buf[:0]
	it.idx = 0

	items, err := decodeItems(raw, suffix)
	if err != nil {
		it.err = err
		return false
	}
	for _, item := range items {
		rec, err := it.factory(it.resource, item)
		if err != nil {
			it.err = err
			return false
		}
		it.buf = append(it.buf, rec)
	}

	if next == "" {
		it.done = true
	} else {
		it.suffix = next
	}
	return len(it.buf) > 0 || !it.done
}

// decodeItems extracts the objects from one page body. List endpoints wrap
// their results in an "items" array; a bare object or array body is
// accepted as well.
func decodeItems(raw json.RawMessage, endpoint string) ([]map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var envelope struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single map[string]any
	err := json.Unmarshal(raw, &single)
	if err == nil {
		return []map[string]any{single}, nil
	}

	return nil, &MalformedResponseError{Endpoint: endpoint, Err: err}
}

// parseLinkNext extracts the rel="next" target from RFC 5988 Link header
// values.
func parseLinkNext(values []string) string {
	for _, value := range values {
		for _, link := range strings.Split(value, ",") {
			parts := strings.Split(link, ";")
			if len(parts) < 2 {
				continue
			}
			target := strings.Trim(strings.TrimSpace(parts[0]), "<>")
			for _, param := range parts[1:] {
				param = strings.TrimSpace(param)
				if param == `rel="next"` || param == "rel=next" {
					return target
				}
			}
		}
	}
	return ""
}
