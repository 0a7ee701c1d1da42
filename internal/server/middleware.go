package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openfaktura/backend/pkg/tenantctx"
)

const tenantHeader = "X-Tenant-ID"

// TenantContextMiddleware carries the caller's tenant id into the request
// context. Row filtering stays a storage concern; the id is only stamped on
// records created during the request.
func TenantContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(tenantHeader))
		if header != "" {
			if tenantID, err := uuid.Parse(header); err == nil {
				ctx := tenantctx.WithTenantID(c.Request.Context(), tenantID)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
