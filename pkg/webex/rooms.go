package webex

import (
	"context"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RoomsAPI exposes the /rooms resource.
type RoomsAPI struct {
	apiGroup
}

func newRoomsAPI(s *Session, factory ObjectFactory) *RoomsAPI {
	return &RoomsAPI{newAPIGroup(s, factory, "room", "rooms")}
}

// Room type filter values.
const (
	RoomTypeDirect = "direct"
	RoomTypeGroup  = "group"
)

// RoomsListOptions filter a rooms listing.
type RoomsListOptions struct {
	TeamID string
	Type   string
	SortBy string
	Max    int
}

func (o RoomsListOptions) validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Type, validation.In(RoomTypeDirect, RoomTypeGroup)),
		validation.Field(&o.SortBy, validation.In("id", "lastactivity", "created")),
		validation.Field(&o.Max, validation.Min(0)),
	)
}

func (o RoomsListOptions) query() url.Values {
	params := url.Values{}
	if o.TeamID != "" {
		params.Set("teamId", o.TeamID)
	}
	if o.Type != "" {
		params.Set("type", o.Type)
	}
	if o.SortBy != "" {
		params.Set("sortBy", o.SortBy)
	}
	if o.Max > 0 {
		params.Set("max", strconv.Itoa(o.Max))
	}
	return params
}

// RoomFields carries the mutable attributes for Create and Update.
type RoomFields struct {
	Title  string `json:"title,omitempty"`
	TeamID string `json:"teamId,omitempty"`
}

// List returns rooms the authenticated user belongs to.
func (api *RoomsAPI) List(ctx context.Context, opts RoomsListOptions) *RecordIterator {
	if err := opts.validate(); err != nil {
		return api.failedIterator(&ConfigError{Reason: "invalid rooms list options", Err: err})
	}
	return api.list(ctx, opts.query())
}

// Create makes a new room. The authenticated user is added automatically.
func (api *RoomsAPI) Create(ctx context.Context, fields RoomFields) (Record, error) {
	if err := validation.Validate(fields.Title, validation.Required); err != nil {
		return Record{}, &ConfigError{Reason: "title is required", Err: err}
	}
	return api.create(ctx, fields)
}

// Get retrieves a room by ID.
func (api *RoomsAPI) Get(ctx context.Context, roomID string) (Record, error) {
	if err := api.requireID("roomId", roomID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, roomID, nil)
}

// MeetingDetails retrieves the meeting details of a room (meeting link,
// SIP address, dial-in numbers).
func (api *RoomsAPI) MeetingDetails(ctx context.Context, roomID string) (Record, error) {
	if err := api.requireID("roomId", roomID); err != nil {
		return Record{}, err
	}
	return api.getAt(ctx, "rooms/"+url.PathEscape(roomID)+"/meetingInfo", nil)
}

// Update changes a room's title or team.
func (api *RoomsAPI) Update(ctx context.Context, roomID string, fields RoomFields) (Record, error) {
	if err := api.requireID("roomId", roomID); err != nil {
		return Record{}, err
	}
	if err := validation.Validate(fields.Title, validation.Required); err != nil {
		return Record{}, &ConfigError{Reason: "title is required", Err: err}
	}
	return api.update(ctx, roomID, fields)
}

// Delete removes a room.
func (api *RoomsAPI) Delete(ctx context.Context, roomID string) error {
	if err := api.requireID("roomId", roomID); err != nil {
		return err
	}
	return api.delete(ctx, roomID)
}
