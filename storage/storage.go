package storage

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"breezemart-backend/config"
	"breezemart-backend/models"
)

// ErrNotFound is returned by every lookup that does not match a record.
// Read-path database errors are also collapsed into it; only writes
// propagate the underlying error.
var ErrNotFound = errors.New("not found")

// Store is the CRUD contract both backends implement. The route layer only
// ever sees this interface.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)

	GetApprovedEmail(ctx context.Context, email string) (*models.ApprovedEmail, error)
	AddApprovedEmail(ctx context.Context, approved *models.ApprovedEmail) (*models.ApprovedEmail, error)

	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)

	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	GetOrderWithItems(ctx context.Context, id string) (*models.OrderWithItems, error)
	GetUserOrders(ctx context.Context, userID string) ([]models.Order, error)
	GetRiderOrders(ctx context.Context, riderID string) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, riderID string) (*models.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
}

// Open probes MongoDB and falls back to the in-memory store when the
// database is unreachable within the configured timeout. The choice is
// permanent for the process lifetime.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) Store {
	store, err := NewMongoStore(ctx, cfg, log)
	if err != nil {
		log.Warnf("MongoDB not available (%v), using in-memory storage", err)
		return NewMemStore(log)
	}
	log.Info("Using MongoDB storage")
	return store
}
