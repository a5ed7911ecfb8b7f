package webex

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MembershipsAPI exposes the /memberships resource, the association of a
// person with a room.
type MembershipsAPI struct {
	apiGroup
}

func newMembershipsAPI(s *Session, factory ObjectFactory) *MembershipsAPI {
	return &MembershipsAPI{newAPIGroup(s, factory, "membership", "memberships")}
}

// MembershipsListOptions filter a memberships listing.
type MembershipsListOptions struct {
	RoomID      string
	PersonID    string
	PersonEmail string
	Max         int
}

func (o MembershipsListOptions) validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.PersonEmail, is.Email),
		validation.Field(&o.Max, validation.Min(0)),
	)
}

func (o MembershipsListOptions) query() url.Values {
	params := url.Values{}
	if o.RoomID != "" {
		params.Set("roomId", o.RoomID)
	}
	if o.PersonID != "" {
		params.Set("personId", o.PersonID)
	}
	if o.PersonEmail != "" {
		params.Set("personEmail", o.PersonEmail)
	}
	if o.Max > 0 {
		params.Set("max", strconv.Itoa(o.Max))
	}
	return params
}

// MembershipFields describes a membership to create. RoomID plus exactly
// one of PersonID or PersonEmail is required.
type MembershipFields struct {
	RoomID      string `json:"roomId,omitempty"`
	PersonID    string `json:"personId,omitempty"`
	PersonEmail string `json:"personEmail,omitempty"`
	IsModerator bool   `json:"isModerator,omitempty"`
}

func (f MembershipFields) validate() error {
	if f.RoomID == "" {
		return errors.New("roomId is required")
	}
	if (f.PersonID == "") == (f.PersonEmail == "") {
		return errors.New("exactly one of personId or personEmail must be set")
	}
	return nil
}

// List returns room memberships matching the options.
func (api *MembershipsAPI) List(ctx context.Context, opts MembershipsListOptions) *RecordIterator {
	if err := opts.validate(); err != nil {
		return api.failedIterator(&ConfigError{Reason: "invalid memberships list options", Err: err})
	}
	return api.list(ctx, opts.query())
}

// Create adds a person to a room.
func (api *MembershipsAPI) Create(ctx context.Context, fields MembershipFields) (Record, error) {
	if err := fields.validate(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid membership", Err: err}
	}
	return api.create(ctx, fields)
}

// Get retrieves a membership by ID.
func (api *MembershipsAPI) Get(ctx context.Context, membershipID string) (Record, error) {
	if err := api.requireID("membershipId", membershipID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, membershipID, nil)
}

// Update changes a membership's moderator status.
func (api *MembershipsAPI) Update(ctx context.Context, membershipID string, isModerator bool) (Record, error) {
	if err := api.requireID("membershipId", membershipID); err != nil {
		return Record{}, err
	}
	return api.update(ctx, membershipID, map[string]bool{"isModerator": isModerator})
}

// Delete removes a person from a room.
func (api *MembershipsAPI) Delete(ctx context.Context, membershipID string) error {
	if err := api.requireID("membershipId", membershipID); err != nil {
		return err
	}
	return api.delete(ctx, membershipID)
}
