package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/charlesng35/settingsd/internal/app"
	iauth "github.com/charlesng35/settingsd/internal/auth"
	"github.com/charlesng35/settingsd/internal/database"
	"github.com/charlesng35/settingsd/internal/middleware"
	"github.com/charlesng35/settingsd/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers the admin settings routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())

	registerHealthRoutes(r, db, cfg)

	store, err := database.NewSettingsStore(db)
	if err != nil {
		return nil, err
	}

	var auditSvc *services.AuditService
	if cfg.Audit.Enabled {
		auditSvc, err = services.NewAuditService(db)
		if err != nil {
			return nil, err
		}
	}

	settingsSvc, err := services.NewSettingsService(store, services.WithSettingsAudit(auditSvc))
	if err != nil {
		return nil, err
	}

	admin := r.Group("/api/admin")
	if err := registerSettingsRoutes(admin, settingsSvc, auditSvc, jwt, cfg.Auth.JWT.AdminRole); err != nil {
		return nil, err
	}

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
