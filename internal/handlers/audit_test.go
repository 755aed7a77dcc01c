package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	testutil "github.com/charlesng35/settingsd/internal/database/testutil"
	"github.com/charlesng35/settingsd/internal/models"
	"github.com/charlesng35/settingsd/internal/services"
	"github.com/charlesng35/settingsd/pkg/response"
)

func TestAuditHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := services.NewAuditService(db)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Log(ctx, services.AuditEntry{UserID: "admin", Action: "settings.updated", Result: "success"}))
	}
	require.NoError(t, svc.Log(ctx, services.AuditEntry{UserID: "system", Action: "settings.bootstrapped", Result: "success"}))

	handler, err := NewAuditHandler(svc)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/audit", handler.List)

	list := func(query url.Values) (*httptest.ResponseRecorder, []models.AuditLog, *response.Meta) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit?"+query.Encode(), nil))
		if w.Code != http.StatusOK {
			return w, nil, nil
		}
		var envelope struct {
			Success bool              `json:"success"`
			Data    []models.AuditLog `json:"data"`
			Meta    *response.Meta    `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		require.True(t, envelope.Success)
		return w, envelope.Data, envelope.Meta
	}

	_, logs, meta := list(url.Values{})
	require.Len(t, logs, 4)
	require.Equal(t, 4, meta.Total)

	_, logs, meta = list(url.Values{"limit": {"2"}})
	require.Len(t, logs, 2)
	require.Equal(t, 2, meta.Limit)

	_, logs, _ = list(url.Values{"action": {"settings.bootstrapped"}})
	require.Len(t, logs, 1)
	require.Equal(t, "system", logs[0].UserID)

	_, logs, _ = list(url.Values{"since": {time.Now().Add(time.Hour).UTC().Format(time.RFC3339)}})
	require.Empty(t, logs)

	w, _, _ := list(url.Values{"since": {"yesterday"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewAuditHandlerRequiresService(t *testing.T) {
	_, err := NewAuditHandler(nil)
	require.Error(t, err)
}
