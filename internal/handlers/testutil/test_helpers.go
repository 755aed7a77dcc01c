package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/settingsd/internal/api"
	"github.com/charlesng35/settingsd/internal/app"
	iauth "github.com/charlesng35/settingsd/internal/auth"
	sharedtestutil "github.com/charlesng35/settingsd/internal/database/testutil"
	"github.com/charlesng35/settingsd/internal/models"
	"github.com/charlesng35/settingsd/pkg/response"
)

const (
	// AdminRole is the role the test router requires for writes.
	AdminRole = "admin"
	jwtSecret = "test-suite-super-secret-key-32-bytes!!"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	JWT    *iauth.JWTService
	Config *app.Config
}

// EnvOption adjusts the environment before the router is built.
type EnvOption func(*envConfig)

type envConfig struct {
	cfg    *app.Config
	noSeed bool
}

// WithoutSettingsRow skips creating the global settings row.
func WithoutSettingsRow() EnvOption {
	return func(ec *envConfig) {
		ec.noSeed = true
	}
}

// WithDefaults sets the flags the global settings row is seeded with.
func WithDefaults(registrationsAllowed, cpiChangeAllowed bool) EnvOption {
	return func(ec *envConfig) {
		ec.cfg.Settings.Defaults = app.SettingsDefaults{
			RegistrationsAllowed: registrationsAllowed,
			CPIChangeAllowed:     cpiChangeAllowed,
		}
	}
}

// WithConfig applies fn to the router configuration.
func WithConfig(fn func(*app.Config)) EnvOption {
	return func(ec *envConfig) {
		fn(ec.cfg)
	}
}

// NewEnv provisions a fresh handler test environment with migrations and seed data applied.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret:    jwtSecret,
				Issuer:    "test-suite",
				TTL:       time.Hour,
				AdminRole: AdminRole,
			},
		},
		Audit: app.AuditConfig{Enabled: true, RetentionDays: 30},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	ec := &envConfig{cfg: cfg}
	for _, opt := range opts {
		opt(ec)
	}

	dbOpts := []sharedtestutil.TestDBOption{sharedtestutil.WithAutoMigrate()}
	if !ec.noSeed {
		d := cfg.Settings.Defaults
		dbOpts = append(dbOpts, sharedtestutil.WithGlobalSettings(d.RegistrationsAllowed, d.CPIChangeAllowed))
	}

	db := sharedtestutil.MustOpenTestDB(t, dbOpts...)

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)

	router, err := api.NewRouter(db, jwtSvc, cfg)
	require.NoError(t, err)

	return &Env{
		T:      t,
		DB:     db,
		Router: router,
		JWT:    jwtSvc,
		Config: cfg,
	}
}

// Token mints an access token for userID carrying roles.
func (e *Env) Token(userID string, roles ...string) string {
	e.T.Helper()
	token, err := e.JWT.GenerateAccessToken(iauth.AccessTokenInput{UserID: userID, Roles: roles})
	require.NoError(e.T, err)
	return token
}

// AdminToken mints a token carrying the admin role.
func (e *Env) AdminToken() string {
	return e.Token("admin-user", AdminRole)
}

// Settings reads the singleton row straight from the database.
func (e *Env) Settings() models.GlobalSettings {
	e.T.Helper()
	var row models.GlobalSettings
	require.NoError(e.T, e.DB.Where(&models.GlobalSettings{Key: models.GlobalSettingsKey}).Take(&row).Error)
	return row
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router. Byte slices and
// strings are sent verbatim; other non-nil bodies are JSON encoded.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	switch v := body.(type) {
	case nil:
		buf = bytes.NewBuffer(nil)
	case []byte:
		buf = bytes.NewBuffer(v)
	case string:
		buf = bytes.NewBufferString(v)
	default:
		data, err := json.Marshal(v)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
