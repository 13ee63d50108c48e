package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breezemart-backend/auth"
	"breezemart-backend/models"
	"breezemart-backend/storage"
)

const userKey = "currentUser"

// resolveUser maps the session cookie to a stored user, aborting with 401
// when that fails. A stale session (user deleted) is a 401 too, never an
// anonymous pass-through.
func resolveUser(c *gin.Context, store storage.Store, sessions *auth.Sessions) (*models.User, bool) {
	userID, err := sessions.UserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return nil, false
	}
	user, err := store.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return nil, false
	}
	return user, true
}

// RequireAuth stashes the session user in the request context.
func RequireAuth(store storage.Store, sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, store, sessions)
		if !ok {
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole is RequireAuth plus role membership.
func RequireRole(store storage.Store, sessions *auth.Sessions, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, store, sessions)
		if !ok {
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Set(userKey, user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	}
}

// CurrentUser returns the user placed by RequireAuth or RequireRole. Only
// valid behind one of them.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(userKey).(*models.User)
	return user
}
