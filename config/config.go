package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"5000"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURI     string        `envconfig:"MONGO_URI" default:"mongodb://127.0.0.1:27017"`
	MongoDB      string        `envconfig:"MONGO_DB" default:"ecommerce"`
	MongoTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"5s"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	OAuthCallbackURL   string `envconfig:"OAUTH_CALLBACK_URL" default:"http://localhost:5000/api/auth/google/callback"`

	SessionSecret string   `envconfig:"SESSION_SECRET" default:"your-secret-key"`
	CORSOrigins   []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	StaticDir     string   `envconfig:"STATIC_DIR" default:"public"`
}

func Load(log *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Debug(".env file not found, using environment variables or defaults")
		} else {
			log.Warnf("Error loading .env file: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GoogleOAuthConfigured reports whether the Google login routes can be
// registered at all; without credentials only dev-login works.
func (c *Config) GoogleOAuthConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
