package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breezemart-backend/auth"
	"breezemart-backend/config"
	"breezemart-backend/routes"
	"breezemart-backend/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newApp(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := storage.NewMemStore(log)
	sessions := auth.NewSessions("test-secret", false)
	r := gin.New()
	routes.Setup(r, cfg, store, sessions, log)
	return r
}

func sessionFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestDevLoginFlow(t *testing.T) {
	app := newApp(t, &config.Config{})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/dev-login", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookie := sessionFrom(t, w)

	// The session now resolves to the dev user.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"authenticated":true`)
	assert.Contains(t, body, `"dev@example.com"`)
	assert.Contains(t, body, `"admin"`)

	// Logging in twice reuses the same user.
	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/dev-login", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
}

func TestCurrentUserUnauthenticated(t *testing.T) {
	app := newApp(t, &config.Config{})
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestLogoutClearsSession(t *testing.T) {
	app := newApp(t, &config.Config{})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/dev-login", nil))
	cookie := sessionFrom(t, w)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cleared := sessionFrom(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestGoogleRoutesAbsentWithoutCredentials(t *testing.T) {
	app := newApp(t, &config.Config{})
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/google", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGoogleLoginRedirectsWhenConfigured(t *testing.T) {
	cfg := &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		OAuthCallbackURL:   "http://localhost:5000/api/auth/google/callback",
	}
	app := newApp(t, cfg)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/google", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://accounts.google.com/"), "unexpected redirect target %q", location)
	assert.Contains(t, location, "client_id=client-id")
	assert.Contains(t, location, "state=")
}

func TestGoogleCallbackRejectsBadState(t *testing.T) {
	cfg := &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
	}
	app := newApp(t, cfg)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=forged&code=x", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login?error=google-auth-failed", w.Header().Get("Location"))
}

func TestProductRoutesWired(t *testing.T) {
	app := newApp(t, &config.Config{})
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
