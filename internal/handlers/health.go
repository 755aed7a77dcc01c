package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/settingsd/internal/database"
	"github.com/charlesng35/settingsd/pkg/logger"
)

const healthPingTimeout = 2 * time.Second

// Health reports readiness by pinging the database.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(requestContext(c), healthPingTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			logger.WithModule("health").Warn("database ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success":    false,
				"status":     "unavailable",
				"checked_at": time.Now().UTC(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"status":     "ok",
			"checked_at": time.Now().UTC(),
		})
	}
}
