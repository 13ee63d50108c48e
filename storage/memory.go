package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"breezemart-backend/models"
)

// MemStore is the in-memory fallback used when MongoDB is unreachable at
// boot. Everything lives in maps keyed by id; lookups by any other field
// are linear scans. The mutex only guards map access, there is no
// record-level concurrency control: concurrent writes to the same record
// are last-writer-wins, same as the document backend.
type MemStore struct {
	mu             sync.RWMutex
	users          map[string]models.User
	approvedEmails map[string]models.ApprovedEmail // keyed by email
	products       map[string]models.Product
	orders         map[string]models.Order
	orderItems     map[string][]models.OrderItem // keyed by order id
	nextID         int
	log            *logrus.Logger
}

func NewMemStore(log *logrus.Logger) *MemStore {
	s := &MemStore{
		users:          make(map[string]models.User),
		approvedEmails: make(map[string]models.ApprovedEmail),
		products:       make(map[string]models.Product),
		orders:         make(map[string]models.Order),
		orderItems:     make(map[string][]models.OrderItem),
		nextID:         1,
		log:            log,
	}
	s.seed()
	return s
}

func (s *MemStore) seed() {
	ctx := context.Background()
	for _, approved := range seedApprovedEmails() {
		a := approved
		if _, err := s.AddApprovedEmail(ctx, &a); err != nil {
			s.log.Errorf("Failed to seed approved email %s: %v", a.Email, err)
		}
	}
	for _, product := range seedProducts() {
		p := product
		if _, err := s.CreateProduct(ctx, &p); err != nil {
			s.log.Errorf("Failed to seed product %s: %v", p.Name, err)
		}
	}
	s.log.Infof("In-memory storage seeded with %d products and %d approved emails",
		len(s.products), len(s.approvedEmails))
}

// generateID produces a MongoDB-lookalike synthetic id. Caller must hold mu.
func (s *MemStore) generateID() string {
	id := fmt.Sprintf("mock_%d_%d", time.Now().UnixMilli(), s.nextID)
	s.nextID++
	return id
}

// ----- Users -----

func (s *MemStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.GoogleID == googleID {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("user with email %s already exists", user.Email)
		}
		if existing.GoogleID == user.GoogleID {
			return nil, fmt.Errorf("user with googleId %s already exists", user.GoogleID)
		}
	}
	now := time.Now()
	created := *user
	created.ID = s.generateID()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.users[created.ID] = created
	return &created, nil
}

func (s *MemStore) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Picture != nil {
		user.Picture = *update.Picture
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = *update.PhoneNumber
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return &user, nil
}

// ----- Approved emails -----

func (s *MemStore) GetApprovedEmail(ctx context.Context, email string) (*models.ApprovedEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	approved, ok := s.approvedEmails[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &approved, nil
}

func (s *MemStore) AddApprovedEmail(ctx context.Context, approved *models.ApprovedEmail) (*models.ApprovedEmail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.approvedEmails[approved.Email]; exists {
		return nil, fmt.Errorf("email %s already approved", approved.Email)
	}
	created := *approved
	created.ID = s.generateID()
	s.approvedEmails[created.Email] = created
	return &created, nil
}

// ----- Products -----

func (s *MemStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	return products, nil
}

func (s *MemStore) GetProductsByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := []models.Product{}
	for _, product := range s.products {
		if product.Category == category {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (s *MemStore) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *product
	created.ID = s.generateID()
	s.products[created.ID] = created
	return &created, nil
}

// ----- Orders -----

func (s *MemStore) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	created := *order
	created.ID = s.generateID()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.orders[created.ID] = created

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = s.generateID()
		item.OrderID = created.ID
		orderItems = append(orderItems, item)
	}
	s.orderItems[created.ID] = orderItems

	return &created, nil
}

func (s *MemStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (s *MemStore) GetOrderWithItems(ctx context.Context, id string) (*models.OrderWithItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	items := append([]models.OrderItem{}, s.orderItems[id]...)
	return &models.OrderWithItems{Order: order, Items: items}, nil
}

func (s *MemStore) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []models.Order{}
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (s *MemStore) GetRiderOrders(ctx context.Context, riderID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []models.Order{}
	for _, order := range s.orders {
		if order.RiderID != "" && order.RiderID == riderID {
			orders = append(orders, order)
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (s *MemStore) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (s *MemStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, riderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order.Status = status
	if riderID != "" {
		order.RiderID = riderID
	}
	order.UpdatedAt = time.Now()
	s.orders[id] = order
	return &order, nil
}

func (s *MemStore) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OrderItem{}, s.orderItems[orderID]...), nil
}

func sortOrdersNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
