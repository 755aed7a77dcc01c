package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/settingsd/internal/services"
	"github.com/charlesng35/settingsd/pkg/errors"
	"github.com/charlesng35/settingsd/pkg/response"
)

type AuditHandler struct {
	svc *services.AuditService
}

func NewAuditHandler(svc *services.AuditService) (*AuditHandler, error) {
	if svc == nil {
		return nil, errors.New("HANDLER_MISCONFIGURED", "audit service is required", http.StatusInternalServerError)
	}
	return &AuditHandler{svc: svc}, nil
}

// GET /api/admin/settings/audit
func (h *AuditHandler) List(c *gin.Context) {
	opts := services.AuditListOptions{
		Limit:  parseIntQuery(c, "limit", 0),
		Action: strings.TrimSpace(c.Query("action")),
	}

	if s := strings.TrimSpace(c.Query("since")); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			response.Error(c, errors.NewBadRequest("since must be an RFC3339 timestamp"))
			return
		}
		opts.Since = &since
	}

	logs, err := h.svc.List(requestContext(c), opts)
	if err != nil {
		response.Error(c, errors.ErrInternalServer.WithInternal(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, logs, &response.Meta{Total: len(logs), Limit: opts.Limit})
}
