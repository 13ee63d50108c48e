package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"breezemart-backend/auth"
	"breezemart-backend/config"
	"breezemart-backend/controllers/order"
	"breezemart-backend/controllers/product"
	"breezemart-backend/storage"
)

// Setup wires every API route onto the engine. The store is passed in
// explicitly; nothing here reaches for globals.
func Setup(r *gin.Engine, cfg *config.Config, store storage.Store, sessions *auth.Sessions, log *logrus.Logger) {
	auth.NewService(cfg, store, sessions, log).RegisterRoutes(r)
	product.NewController(store, log).RegisterRoutes(r)
	order.NewController(store, sessions, log).RegisterRoutes(r)
}
