package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"breezemart-backend/config"
	"breezemart-backend/models"
)

// MongoStore maps every Store call 1:1 onto a collection operation. Ids are
// ObjectID hex strings stored as string _id so both backends share the same
// model types.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logrus.Logger
}

func NewMongoStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &MongoStore{
		client: client,
		db:     client.Database(cfg.MongoDB),
		log:    log,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		log.Errorf("Failed to create indexes: %v", err)
	}
	if err := s.seed(ctx); err != nil {
		log.Errorf("Failed to initialize sample data: %v", err)
	}
	return s, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) users() *mongo.Collection          { return s.db.Collection("users") }
func (s *MongoStore) approvedEmails() *mongo.Collection { return s.db.Collection("approved_emails") }
func (s *MongoStore) products() *mongo.Collection       { return s.db.Collection("products") }
func (s *MongoStore) orders() *mongo.Collection         { return s.db.Collection("orders") }
func (s *MongoStore) orderItems() *mongo.Collection     { return s.db.Collection("order_items") }

// ensureIndexes backs the uniqueness invariants: user email and googleId,
// approved email address.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	_, err := s.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}
	_, err = s.approvedEmails().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// seed loads sample data only when the product collection is empty.
func (s *MongoStore) seed(ctx context.Context) error {
	count, err := s.products().CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	s.log.Info("Initializing MongoDB with sample data...")
	for _, approved := range seedApprovedEmails() {
		a := approved
		if _, err := s.AddApprovedEmail(ctx, &a); err != nil {
			return err
		}
	}
	for _, product := range seedProducts() {
		p := product
		if _, err := s.CreateProduct(ctx, &p); err != nil {
			return err
		}
	}
	s.log.Info("Sample data initialized successfully in MongoDB")
	return nil
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// findOne collapses every read failure into ErrNotFound after logging it.
func (s *MongoStore) findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, out any) error {
	err := coll.FindOne(ctx, filter).Decode(out)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		s.log.Errorf("Error reading from %s: %v", coll.Name(), err)
	}
	return ErrNotFound
}

// ----- Users -----

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.findOne(ctx, s.users(), bson.M{"_id": id}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.findOne(ctx, s.users(), bson.M{"email": email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	if err := s.findOne(ctx, s.users(), bson.M{"googleId": googleID}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	created := *user
	created.ID = newID()
	created.CreatedAt = now
	created.UpdatedAt = now
	if _, err := s.users().InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Picture != nil {
		set["picture"] = *update.Picture
	}
	if update.PhoneNumber != nil {
		set["phoneNumber"] = *update.PhoneNumber
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}

	after := options.After
	var user models.User
	err := s.users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&user)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.log.Errorf("Error updating user %s: %v", id, err)
		}
		return nil, ErrNotFound
	}
	return &user, nil
}

// ----- Approved emails -----

func (s *MongoStore) GetApprovedEmail(ctx context.Context, email string) (*models.ApprovedEmail, error) {
	var approved models.ApprovedEmail
	if err := s.findOne(ctx, s.approvedEmails(), bson.M{"email": email}, &approved); err != nil {
		return nil, err
	}
	return &approved, nil
}

func (s *MongoStore) AddApprovedEmail(ctx context.Context, approved *models.ApprovedEmail) (*models.ApprovedEmail, error) {
	created := *approved
	created.ID = newID()
	if _, err := s.approvedEmails().InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("add approved email: %w", err)
	}
	return &created, nil
}

// ----- Products -----

func (s *MongoStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{})
}

func (s *MongoStore) GetProductsByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{"category": category})
}

func (s *MongoStore) findProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cur, err := s.products().Find(ctx, filter)
	if err != nil {
		s.log.Errorf("Error querying products: %v", err)
		return []models.Product{}, nil
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		s.log.Errorf("Error decoding products: %v", err)
		return []models.Product{}, nil
	}
	return products, nil
}

func (s *MongoStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.findOne(ctx, s.products(), bson.M{"_id": id}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoStore) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	created := *product
	created.ID = newID()
	if _, err := s.products().InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &created, nil
}

// ----- Orders -----

// CreateOrder performs two independent writes. If the item insert fails the
// order document persists without items, matching the memory backend.
func (s *MongoStore) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error) {
	now := time.Now()
	created := *order
	created.ID = newID()
	created.CreatedAt = now
	created.UpdatedAt = now
	if _, err := s.orders().InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if len(items) > 0 {
		docs := make([]any, 0, len(items))
		for _, item := range items {
			item.ID = newID()
			item.OrderID = created.ID
			docs = append(docs, item)
		}
		if _, err := s.orderItems().InsertMany(ctx, docs); err != nil {
			return nil, fmt.Errorf("create order items: %w", err)
		}
	}

	return &created, nil
}

func (s *MongoStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.findOne(ctx, s.orders(), bson.M{"_id": id}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoStore) GetOrderWithItems(ctx context.Context, id string) (*models.OrderWithItems, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.GetOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OrderWithItems{Order: *order, Items: items}, nil
}

func (s *MongoStore) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{"userId": userID})
}

func (s *MongoStore) GetRiderOrders(ctx context.Context, riderID string) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{"riderId": riderID})
}

func (s *MongoStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{})
}

func (s *MongoStore) findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.orders().Find(ctx, filter, opts)
	if err != nil {
		s.log.Errorf("Error querying orders: %v", err)
		return []models.Order{}, nil
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		s.log.Errorf("Error decoding orders: %v", err)
		return []models.Order{}, nil
	}
	return orders, nil
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, riderID string) (*models.Order, error) {
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if riderID != "" {
		set["riderId"] = riderID
	}

	after := options.After
	var order models.Order
	err := s.orders().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&order)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.log.Errorf("Error updating order %s status: %v", id, err)
		}
		return nil, ErrNotFound
	}
	return &order, nil
}

func (s *MongoStore) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	cur, err := s.orderItems().Find(ctx, bson.M{"orderId": orderID})
	if err != nil {
		s.log.Errorf("Error querying order items: %v", err)
		return []models.OrderItem{}, nil
	}
	items := []models.OrderItem{}
	if err := cur.All(ctx, &items); err != nil {
		s.log.Errorf("Error decoding order items: %v", err)
		return []models.OrderItem{}, nil
	}
	return items, nil
}
