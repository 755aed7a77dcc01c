package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/settingsd/pkg/errors"
	"github.com/charlesng35/settingsd/pkg/metrics"
	"github.com/charlesng35/settingsd/pkg/response"
)

// RequireRole checks that the authenticated caller's token carries role.
// It must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !claims.HasRole(role) {
			metrics.RoleChecks.WithLabelValues(role, "denied").Inc()
			response.Error(c, errors.ErrForbidden)
			c.Abort()
			return
		}
		metrics.RoleChecks.WithLabelValues(role, "allowed").Inc()
		c.Next()
	}
}
