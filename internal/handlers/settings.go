package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/settingsd/internal/middleware"
	"github.com/charlesng35/settingsd/internal/services"
	apperrors "github.com/charlesng35/settingsd/pkg/errors"
	"github.com/charlesng35/settingsd/pkg/response"
)

// SettingsHandler exposes the global settings record to administrators.
type SettingsHandler struct {
	svc *services.SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(svc *services.SettingsService) (*SettingsHandler, error) {
	if svc == nil {
		return nil, apperrors.New("HANDLER_MISCONFIGURED", "settings service is required", http.StatusInternalServerError)
	}
	return &SettingsHandler{svc: svc}, nil
}

// GET /api/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	view, err := h.svc.GetSettings(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, view)
}

// POST /api/admin/settings
func (h *SettingsHandler) Change(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, services.ErrNoSettingsBody.WithInternal(err))
		return
	}

	patch, err := services.ParseSettingsPatch(body)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.ChangeSettings(requestContext(c), actorFromContext(c), patch); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

func actorFromContext(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    strings.TrimSpace(c.GetString(middleware.CtxUserIDKey)),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
