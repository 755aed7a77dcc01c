package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/charlesng35/settingsd/internal/auth"
	"github.com/charlesng35/settingsd/internal/handlers"
	"github.com/charlesng35/settingsd/internal/middleware"
	"github.com/charlesng35/settingsd/internal/services"
)

// registerSettingsRoutes mounts the settings endpoints. Reads are public; writes
// and the audit listing require a token carrying adminRole.
func registerSettingsRoutes(admin *gin.RouterGroup, settings *services.SettingsService, audit *services.AuditService, jwt *iauth.JWTService, adminRole string) error {
	settingsHandler, err := handlers.NewSettingsHandler(settings)
	if err != nil {
		return err
	}

	requireAdmin := []gin.HandlerFunc{middleware.Auth(jwt), middleware.RequireRole(adminRole)}

	admin.GET("/settings", settingsHandler.Get)
	admin.POST("/settings", append(requireAdmin, settingsHandler.Change)...)

	if audit == nil {
		return nil
	}

	auditHandler, err := handlers.NewAuditHandler(audit)
	if err != nil {
		return err
	}
	admin.GET("/settings/audit", append(requireAdmin, auditHandler.List)...)

	return nil
}
