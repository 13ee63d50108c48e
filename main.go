package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"breezemart-backend/auth"
	"breezemart-backend/config"
	"breezemart-backend/middleware"
	"breezemart-backend/routes"
	"breezemart-backend/storage"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("Invalid LOG_LEVEL '%s', using %s", cfg.LogLevel, level)
	}
	log.SetLevel(level)
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	store := storage.Open(context.Background(), cfg, log)

	sessions := auth.NewSessions(cfg.SessionSecret, cfg.IsProduction())

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log, cfg.IsProduction()))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(r, cfg, store, sessions, log)

	if cfg.IsProduction() {
		serveStatic(r, cfg.StaticDir)
	}

	log.Infof("serving on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// serveStatic serves the built frontend in production. Unknown non-API
// paths fall back to index.html for client-side routing; in development
// the asset pipeline runs as a separate process.
func serveStatic(r *gin.Engine, dir string) {
	r.Static("/assets", filepath.Join(dir, "assets"))
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
