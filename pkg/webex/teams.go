package webex

import (
	"context"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TeamsAPI exposes the /teams resource.
type TeamsAPI struct {
	apiGroup
}

func newTeamsAPI(s *Session, factory ObjectFactory) *TeamsAPI {
	return &TeamsAPI{newAPIGroup(s, factory, "team", "teams")}
}

// List returns teams the authenticated user belongs to.
func (api *TeamsAPI) List(ctx context.Context, max int) *RecordIterator {
	if max < 0 {
		return api.failedIterator(&ConfigError{Reason: "max must be non-negative"})
	}
	params := url.Values{}
	if max > 0 {
		params.Set("max", strconv.Itoa(max))
	}
	return api.list(ctx, params)
}

// Create makes a new team. The authenticated user is added automatically.
func (api *TeamsAPI) Create(ctx context.Context, name string) (Record, error) {
	if err := validation.Validate(name, validation.Required); err != nil {
		return Record{}, &ConfigError{Reason: "name is required", Err: err}
	}
	return api.create(ctx, map[string]string{"name": name})
}

// Get retrieves a team by ID.
func (api *TeamsAPI) Get(ctx context.Context, teamID string) (Record, error) {
	if err := api.requireID("teamId", teamID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, teamID, nil)
}

// Update renames a team.
func (api *TeamsAPI) Update(ctx context.Context, teamID, name string) (Record, error) {
	if err := api.requireID("teamId", teamID); err != nil {
		return Record{}, err
	}
	if err := validation.Validate(name, validation.Required); err != nil {
		return Record{}, &ConfigError{Reason: "name is required", Err: err}
	}
	return api.update(ctx, teamID, map[string]string{"name": name})
}

// Delete removes a team.
func (api *TeamsAPI) Delete(ctx context.Context, teamID string) error {
	if err := api.requireID("teamId", teamID); err != nil {
		return err
	}
	return api.delete(ctx, teamID)
}
