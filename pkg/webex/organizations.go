package webex

import (
	"context"
	"net/url"
	"strconv"
)

// OrganizationsAPI, LicensesAPI, and RolesAPI expose the read-only
// administrative resources. They share the same list/get shape.

// OrganizationsAPI exposes the /organizations resource.
type OrganizationsAPI struct {
	apiGroup
}

func newOrganizationsAPI(s *Session, factory ObjectFactory) *OrganizationsAPI {
	return &OrganizationsAPI{newAPIGroup(s, factory, "organization", "organizations")}
}

// List returns the organizations visible to the authenticated user.
func (api *OrganizationsAPI) List(ctx context.Context, max int) *RecordIterator {
	return listReadOnly(ctx, api.apiGroup, max, nil)
}

// Get retrieves an organization by ID.
func (api *OrganizationsAPI) Get(ctx context.Context, orgID string) (Record, error) {
	if err := api.requireID("orgId", orgID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, orgID, nil)
}

// LicensesAPI exposes the /licenses resource.
type LicensesAPI struct {
	apiGroup
}

func newLicensesAPI(s *Session, factory ObjectFactory) *LicensesAPI {
	return &LicensesAPI{newAPIGroup(s, factory, "license", "licenses")}
}

// List returns the licenses of an organization. An empty orgID lists the
// authenticated user's organization.
func (api *LicensesAPI) List(ctx context.Context, orgID string, max int) *RecordIterator {
	extra := url.Values{}
	if orgID != "" {
		extra.Set("orgId", orgID)
	}
	return listReadOnly(ctx, api.apiGroup, max, extra)
}

// Get retrieves a license by ID.
func (api *LicensesAPI) Get(ctx context.Context, licenseID string) (Record, error) {
	if err := api.requireID("licenseId", licenseID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, licenseID, nil)
}

// RolesAPI exposes the /roles resource.
type RolesAPI struct {
	apiGroup
}

func newRolesAPI(s *Session, factory ObjectFactory) *RolesAPI {
	return &RolesAPI{newAPIGroup(s, factory, "role", "roles")}
}

// List returns the roles available in the authenticated user's
// organization.
func (api *RolesAPI) List(ctx context.Context, max int) *RecordIterator {
	return listReadOnly(ctx, api.apiGroup, max, nil)
}

// Get retrieves a role by ID.
func (api *RolesAPI) Get(ctx context.Context, roleID string) (Record, error) {
	if err := api.requireID("roleId", roleID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, roleID, nil)
}

func listReadOnly(ctx context.Context, g apiGroup, max int, extra url.Values) *RecordIterator {
	if max < 0 {
		return g.failedIterator(&ConfigError{Reason: "max must be non-negative"})
	}
	params := url.Values{}
	for k, vs := range extra {
		params[k] = vs
	}
	if max > 0 {
		params.Set("max", strconv.Itoa(max))
	}
	return g.list(ctx, params)
}
