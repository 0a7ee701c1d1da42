package tenantctx

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const (
	// TenantIDKey is the request context key for the active tenant ID.
	TenantIDKey keyType = "tenant_id"
)

// WithTenantID stores the tenant ID in the context.
func WithTenantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, id)
}

// TenantID returns the tenant ID from context, if set.
func TenantID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return id, ok
}
