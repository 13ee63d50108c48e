package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"breezemart-backend/config"
	"breezemart-backend/models"
	"breezemart-backend/storage"
)

const (
	stateCookie    = "oauth_state"
	stateTTL       = 600 // seconds
	failedRedirect = "/login?error=google-auth-failed"
	userinfoURL    = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	ErrEmailNotApproved = errors.New("email not approved for access")
	ErrNoEmail          = errors.New("email not provided by Google")
)

// GoogleProfile is the subset of the userinfo response the login flow needs.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Service owns the login surface: the Google OAuth flow, the dev bypass,
// the current-user endpoint and logout.
type Service struct {
	store    storage.Store
	sessions *Sessions
	oauth    *oauth2.Config
	secure   bool
	log      *logrus.Logger
}

func NewService(cfg *config.Config, store storage.Store, sessions *Sessions, log *logrus.Logger) *Service {
	s := &Service{
		store:    store,
		sessions: sessions,
		secure:   cfg.IsProduction(),
		log:      log,
	}
	if cfg.GoogleOAuthConfigured() {
		s.oauth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthCallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		}
	} else {
		log.Warn("Google OAuth credentials not found. Google login will not work.")
	}
	return s
}

func (s *Service) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/api/auth")
	if s.oauth != nil {
		grp.GET("/google", s.GoogleLogin)
		grp.GET("/google/callback", s.GoogleCallback)
	}
	grp.GET("/dev-login", s.DevLogin)
	grp.GET("/user", s.CurrentUser)
	grp.POST("/logout", s.Logout)
}

// GoogleLogin stores a state nonce in a short-lived cookie and redirects
// the browser to the Google consent screen.
func (s *Service) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateTTL, "/", "", s.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, s.oauth.AuthCodeURL(state))
}

func (s *Service) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		s.log.Warn("OAuth callback with missing or mismatched state")
		c.Redirect(http.StatusTemporaryRedirect, failedRedirect)
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", s.secure, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, failedRedirect)
		return
	}

	token, err := s.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		s.log.Errorf("OAuth code exchange failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, failedRedirect)
		return
	}

	profile, err := s.fetchProfile(c.Request.Context(), token)
	if err != nil {
		s.log.Errorf("Failed to fetch Google profile: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, failedRedirect)
		return
	}

	user, err := s.LoginProfile(c.Request.Context(), profile)
	if err != nil {
		s.log.Warnf("Google login rejected for %s: %v", profile.Email, err)
		c.Redirect(http.StatusTemporaryRedirect, failedRedirect)
		return
	}

	if err := s.sessions.Issue(c, user.ID); err != nil {
		s.log.Errorf("Failed to issue session for user %s: %v", user.ID, err)
		c.Redirect(http.StatusTemporaryRedirect, failedRedirect)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

func (s *Service) fetchProfile(ctx context.Context, token *oauth2.Token) (GoogleProfile, error) {
	var profile GoogleProfile
	resp, err := s.oauth.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return profile, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return profile, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, err
	}
	return profile, nil
}

// LoginProfile maps a verified Google profile to a local user. The email
// must be on the approved list; the role comes from that list entry, never
// from the profile. First login creates the user, later logins reuse it by
// googleId and refresh name and picture.
func (s *Service) LoginProfile(ctx context.Context, profile GoogleProfile) (*models.User, error) {
	if profile.Email == "" {
		return nil, ErrNoEmail
	}

	approved, err := s.store.GetApprovedEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEmailNotApproved
		}
		return nil, err
	}

	user, err := s.store.GetUserByGoogleID(ctx, profile.ID)
	if errors.Is(err, storage.ErrNotFound) {
		user, err = s.store.CreateUser(ctx, &models.User{
			Name:     profile.Name,
			Email:    profile.Email,
			Picture:  profile.Picture,
			Role:     approved.Role,
			GoogleID: profile.ID,
		})
		if err != nil {
			return nil, err
		}
		s.log.Infof("Created user %s for %s with role %s", user.ID, user.Email, user.Role)
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	refreshed, err := s.store.UpdateUser(ctx, user.ID, models.UserUpdate{
		Name:    &profile.Name,
		Picture: &profile.Picture,
	})
	if err != nil {
		// Login still succeeds with the stale profile fields.
		s.log.Warnf("Failed to refresh profile for user %s: %v", user.ID, err)
		return user, nil
	}
	return refreshed, nil
}

// DevLogin signs in as a fixed development identity, creating the user and
// its allow-list entry on first use.
func (s *Service) DevLogin(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := s.store.GetApprovedEmail(ctx, storage.DevEmail); errors.Is(err, storage.ErrNotFound) {
		if _, err := s.store.AddApprovedEmail(ctx, &models.ApprovedEmail{
			Email: storage.DevEmail,
			Role:  models.RoleAdmin,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to set up development user"})
			return
		}
		s.log.Info("Added development email to approved list")
	}

	user, err := s.store.GetUserByEmail(ctx, storage.DevEmail)
	if errors.Is(err, storage.ErrNotFound) {
		user, err = s.store.CreateUser(ctx, &models.User{
			Name:     "Development User",
			Email:    storage.DevEmail,
			Role:     models.RoleAdmin,
			GoogleID: "dev-google-id",
		})
	}
	if err != nil {
		s.log.Errorf("Dev login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		return
	}

	if err := s.sessions.Issue(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		return
	}
	s.log.Infof("Dev login successful for user %s", user.ID)
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// CurrentUser resolves the session to a user. A session pointing at a user
// that no longer exists is an authentication failure, not an anonymous pass.
func (s *Service) CurrentUser(c *gin.Context) {
	userID, err := s.sessions.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	user, err := s.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

func (s *Service) Logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
