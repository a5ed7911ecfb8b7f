package webex

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// TeamMembershipsAPI exposes the /team/memberships resource.
type TeamMembershipsAPI struct {
	apiGroup
}

func newTeamMembershipsAPI(s *Session, factory ObjectFactory) *TeamMembershipsAPI {
	return &TeamMembershipsAPI{newAPIGroup(s, factory, "teamMembership", "team/memberships")}
}

// TeamMembershipFields describes a team membership to create. TeamID plus
// exactly one of PersonID or PersonEmail is required.
type TeamMembershipFields struct {
	TeamID      string `json:"teamId,omitempty"`
	PersonID    string `json:"personId,omitempty"`
	PersonEmail string `json:"personEmail,omitempty"`
	IsModerator bool   `json:"isModerator,omitempty"`
}

func (f TeamMembershipFields) validate() error {
	if f.TeamID == "" {
		return errors.New("teamId is required")
	}
	if (f.PersonID == "") == (f.PersonEmail == "") {
		return errors.New("exactly one of personId or personEmail must be set")
	}
	return nil
}

// List returns the memberships of a team.
func (api *TeamMembershipsAPI) List(ctx context.Context, teamID string, max int) *RecordIterator {
	if teamID == "" {
		return api.failedIterator(&ConfigError{Reason: "teamId is required"})
	}
	if max < 0 {
		return api.failedIterator(&ConfigError{Reason: "max must be non-negative"})
	}
	params := url.Values{}
	params.Set("teamId", teamID)
	if max > 0 {
		params.Set("max", strconv.Itoa(max))
	}
	return api.list(ctx, params)
}

// Create adds a person to a team.
func (api *TeamMembershipsAPI) Create(ctx context.Context, fields TeamMembershipFields) (Record, error) {
	if err := fields.validate(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid team membership", Err: err}
	}
	return api.create(ctx, fields)
}

// Get retrieves a team membership by ID.
func (api *TeamMembershipsAPI) Get(ctx context.Context, membershipID string) (Record, error) {
	if err := api.requireID("membershipId", membershipID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, membershipID, nil)
}

// Update changes a team membership's moderator status.
func (api *TeamMembershipsAPI) Update(ctx context.Context, membershipID string, isModerator bool) (Record, error) {
	if err := api.requireID("membershipId", membershipID); err != nil {
		return Record{}, err
	}
	return api.update(ctx, membershipID, map[string]bool{"isModerator": isModerator})
}

// Delete removes a person from a team.
func (api *TeamMembershipsAPI) Delete(ctx context.Context, membershipID string) error {
	if err := api.requireID("membershipId", membershipID); err != nil {
		return err
	}
	return api.delete(ctx, membershipID)
}
