package webex

import (
	"context"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// PeopleAPI exposes the /people resource.
type PeopleAPI struct {
	apiGroup
}

func newPeopleAPI(s *Session, factory ObjectFactory) *PeopleAPI {
	return &PeopleAPI{newAPIGroup(s, factory, "person", "people")}
}

// PeopleListOptions filter a people listing. At least one of Email,
// DisplayName, or ID is required by the API for non-admin callers.
type PeopleListOptions struct {
	Email       string
	DisplayName string
	ID          string
	OrgID       string
	Max         int
}

func (o PeopleListOptions) validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Email, is.Email),
		validation.Field(&o.Max, validation.Min(0)),
	)
}

func (o PeopleListOptions) query() url.Values {
	params := url.Values{}
	if o.Email != "" {
		params.Set("email", o.Email)
	}
	if o.DisplayName != "" {
		params.Set("displayName", o.DisplayName)
	}
	if o.ID != "" {
		params.Set("id", o.ID)
	}
	if o.OrgID != "" {
		params.Set("orgId", o.OrgID)
	}
	if o.Max > 0 {
		params.Set("max", strconv.Itoa(o.Max))
	}
	return params
}

// PersonFields carries the mutable attributes for Create and Update.
type PersonFields struct {
	Emails      []string `json:"emails,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	OrgID       string   `json:"orgId,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Licenses    []string `json:"licenses,omitempty"`
}

// List returns people matching the options as a lazy paginated sequence.
func (api *PeopleAPI) List(ctx context.Context, opts PeopleListOptions) *RecordIterator {
	if err := opts.validate(); err != nil {
		return api.failedIterator(&ConfigError{Reason: "invalid people list options", Err: err})
	}
	return api.list(ctx, opts.query())
}

// Create adds a person to the organization. Admin only.
func (api *PeopleAPI) Create(ctx context.Context, fields PersonFields) (Record, error) {
	if err := validation.Validate(fields.Emails, validation.Required, validation.Length(1, 0)); err != nil {
		return Record{}, &ConfigError{Reason: "at least one email is required", Err: err}
	}
	return api.create(ctx, fields)
}

// Get retrieves a person by ID.
func (api *PeopleAPI) Get(ctx context.Context, personID string) (Record, error) {
	if err := api.requireID("personId", personID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, personID, nil)
}

// Me retrieves the person record of the authenticated user.
func (api *PeopleAPI) Me(ctx context.Context) (Record, error) {
	return api.getAt(ctx, "people/me", nil)
}

// Update replaces a person's mutable attributes. Admin only.
func (api *PeopleAPI) Update(ctx context.Context, personID string, fields PersonFields) (Record, error) {
	if err := api.requireID("personId", personID); err != nil {
		return Record{}, err
	}
	return api.update(ctx, personID, fields)
}

// Delete removes a person from the organization. Admin only.
func (api *PeopleAPI) Delete(ctx context.Context, personID string) error {
	if err := api.requireID("personId", personID); err != nil {
		return err
	}
	return api.delete(ctx, personID)
}
