package webex

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
)

// Record is an immutable, attribute-accessible view over a decoded JSON
// object. Nested objects surface as Records and arrays as wrapped slices,
// recursively. A Record never aliases the data it was built from, so
// repeated reads always return the same logical value.
type Record struct {
	resource string
	fields   map[string]any
}

// ObjectFactory converts one decoded JSON object into a Record. The
// resource name identifies which accessor produced the payload ("person",
// "room", ...), letting custom factories dispatch per resource.
type ObjectFactory func(resource string, data map[string]any) (Record, error)

// RecordFactory is the default ObjectFactory: it deep-copies the payload
// into an immutable Record.
func RecordFactory(resource string, data map[string]any) (Record, error) {
	copied, ok := deepCopyValue(data).(map[string]any)
	if !ok {
		return Record{}, fmt.Errorf("record payload for %s is not an object", resource)
	}
	return Record{resource: resource, fields: copied}, nil
}

// Resource returns the resource name the Record was decoded for.
func (r Record) Resource() string { return r.resource }

// Get returns the raw field value. Nested objects come back as Records and
// arrays as fresh slices with wrapped elements. Lookup tolerates naming
// style: "display_name" finds "displayName" and vice versa.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return nil, false
	}
	return wrapValue(r.resource, v), true
}

// Has reports whether the field is present, including explicit nulls.
func (r Record) Has(key string) bool {
	_, ok := r.lookup(key)
	return ok
}

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Int returns the field as an int, or 0 when absent or not numeric.
func (r Record) Int(key string) int {
	return int(r.Float(key))
}

// Float returns the field as a float64, or 0 when absent or not numeric.
func (r Record) Float(key string) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	case int:
		return float64(n)
	}
	return 0
}

// Bool returns the field as a bool, or false when absent or not boolean.
func (r Record) Bool(key string) bool {
	v, ok := r.lookup(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Time parses the field as a timestamp. Webex emits RFC 3339, but any
// unambiguous format is accepted.
func (r Record) Time(key string) (time.Time, error) {
	s := r.String(key)
	if s == "" {
		return time.Time{}, fmt.Errorf("field %q is absent or not a string", key)
	}
	return dateparse.ParseAny(s)
}

// Record returns a nested object field wrapped as a Record.
func (r Record) Record(key string) (Record, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return Record{}, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Record{}, false
	}
	return Record{resource: r.resource, fields: deepCopyValue(m).(map[string]any)}, true
}

// Records returns an array field as a slice of Records, skipping non-object
// elements.
func (r Record) Records(key string) []Record {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Record
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record{resource: r.resource, fields: deepCopyValue(m).(map[string]any)})
		}
	}
	return out
}

// StringSlice returns an array field as strings, skipping non-string
// elements.
func (r Record) StringSlice(key string) []string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Keys returns the field names present in the Record, sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSON renders the Record back to its JSON representation.
func (r Record) JSON() (string, error) {
	b, err := json.Marshal(r.fields)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode maps the Record's fields onto a caller struct using its json
// tags. Unknown fields are ignored.
func (r Record) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.fields)
}

// Equal reports structural equality. Records have no identity beyond their
// contents.
func (r Record) Equal(other Record) bool {
	return reflect.DeepEqual(r.fields, other.fields)
}

// lookup resolves a key directly, then by camelCase and snake_case forms.
func (r Record) lookup(key string) (any, bool) {
	if v, ok := r.fields[key]; ok {
		return v, true
	}
	if v, ok := r.fields[strcase.ToLowerCamel(key)]; ok {
		return v, true
	}
	if v, ok := r.fields[strcase.ToSnake(key)]; ok {
		return v, true
	}
	return nil, false
}

// wrapValue converts nested containers to their read-only forms. Scalars
// pass through unchanged.
func wrapValue(resource string, v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Record{resource: resource, fields: deepCopyValue(t).(map[string]any)}
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = wrapValue(resource, item)
		}
		return out
	default:
		return v
	}
}

// deepCopyValue clones maps and slices so a Record never shares structure
// with its source payload.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
