package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookie = "session"
	sessionTTL    = 24 * time.Hour
)

var ErrNoSession = errors.New("no valid session")

// Sessions issues and reads the signed cookie that carries the logged-in
// user id. The cookie is the whole session state; the user itself is
// reloaded from storage on every request.
type Sessions struct {
	secret []byte
	secure bool
}

func NewSessions(secret string, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), secure: secure}
}

func (s *Sessions) Issue(c *gin.Context, userID string) error {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, signed, int(sessionTTL.Seconds()), "/", "", s.secure, true)
	return nil
}

func (s *Sessions) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.secure, true)
}

// UserID extracts the user id from the session cookie. Any missing, expired
// or tampered cookie is ErrNoSession.
func (s *Sessions) UserID(c *gin.Context) (string, error) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil || raw == "" {
		return "", ErrNoSession
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrNoSession
	}
	return sub, nil
}
