package dashboard

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizza-service/internal/mockserver"
	platformobservability "github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
)

func TestValidate(t *testing.T) {
	cfg := Config{SessionKey: strings.Repeat("k", 32), APIBaseURL: "http://localhost:3000"}
	cfg.Exporter = "none"
	require.NoError(t, cfg.Validate())

	short := cfg
	short.SessionKey = "short"
	assert.ErrorContains(t, short.Validate(), "SESSION_KEY")

	relative := cfg
	relative.APIBaseURL = "/api"
	assert.ErrorContains(t, relative.Validate(), "PIZZA_API_URL")
}

func TestRouterServesLoginAgainstMockAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := mockserver.New().Start()
	defer api.Close()

	router, err := NewRouter(Config{
		APIBaseURL: api.URL,
		SessionKey: strings.Repeat("k", 32),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(platformobservability.RequestIDHeader))

	form := url.Values{"email": {mockserver.AdminEmail}, "password": {mockserver.AdminPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-dashboard", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies())
}
