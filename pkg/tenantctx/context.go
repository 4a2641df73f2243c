package tenantctx

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// ErrMissingTenant is returned by services that require a resolved tenant
// when the request context carries none. It is always fatal to the request.
var ErrMissingTenant = errors.New("missing_tenant")

type keyType string

const identityKey keyType = "identity"

// Identity is the resolved caller: which tenant (organization) the request
// acts on, and which user issued it.
type Identity struct {
	OrgID  snowflake.ID
	UserID snowflake.ID
	Role   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// OrgID returns the tenant id of the resolved identity, if any.
func OrgID(ctx context.Context) (snowflake.ID, bool) {
	id, ok := IdentityFrom(ctx)
	if !ok || id.OrgID == 0 {
		return 0, false
	}
	return id.OrgID, true
}

// RequireOrgID returns the tenant id of the resolved identity or
// ErrMissingTenant. Write paths must use this and never a tenant id taken
// from the request body.
func RequireOrgID(ctx context.Context) (snowflake.ID, error) {
	orgID, ok := OrgID(ctx)
	if !ok {
		return 0, ErrMissingTenant
	}
	return orgID, nil
}
