package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func issueCookie(t *testing.T, sessions *Sessions, userID string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	require.NoError(t, sessions.Issue(c, userID))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func contextWithCookie(cookie *http.Cookie) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions("test-secret", false)
	cookie := issueCookie(t, sessions, "user-42")
	assert.Equal(t, "session", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	userID, err := sessions.UserID(contextWithCookie(cookie))
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestSessionMissingCookie(t *testing.T) {
	sessions := NewSessions("test-secret", false)
	_, err := sessions.UserID(contextWithCookie(nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	sessions := NewSessions("test-secret", false)
	cookie := issueCookie(t, sessions, "user-42")
	cookie.Value += "x"
	_, err := sessions.UserID(contextWithCookie(cookie))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionRejectsForeignSecret(t *testing.T) {
	issued := NewSessions("secret-one", false)
	cookie := issueCookie(t, issued, "user-42")

	other := NewSessions("secret-two", false)
	_, err := other.UserID(contextWithCookie(cookie))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionClear(t *testing.T) {
	sessions := NewSessions("test-secret", false)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	sessions.Clear(c)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
