package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breezemart-backend/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestMemStoreSeedsSampleData(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	products, err := s.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 5)

	for _, email := range []string{"admin@example.com", "rider@example.com", "customer@example.com"} {
		approved, err := s.GetApprovedEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, email, approved.Email)
	}

	admin, err := s.GetApprovedEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestMemStoreGeneratesMockIDs(t *testing.T) {
	s := NewMemStore(testLogger())
	user, err := s.CreateUser(context.Background(), &models.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Role:     models.RoleCustomer,
		GoogleID: "g-ana",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "mock_"), "id %q should carry the mock_ prefix", user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
}

func TestMemStoreRejectsDuplicateUsers(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	_, err := s.CreateUser(ctx, &models.User{Name: "A", Email: "a@example.com", Role: models.RoleCustomer, GoogleID: "g-a"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, &models.User{Name: "B", Email: "a@example.com", Role: models.RoleCustomer, GoogleID: "g-b"})
	assert.Error(t, err, "duplicate email must be rejected")

	_, err = s.CreateUser(ctx, &models.User{Name: "C", Email: "c@example.com", Role: models.RoleCustomer, GoogleID: "g-a"})
	assert.Error(t, err, "duplicate googleId must be rejected")
}

func TestMemStoreUserLookups(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &models.User{Name: "Ana", Email: "ana@example.com", Role: models.RoleRider, GoogleID: "g-ana"})
	require.NoError(t, err)

	byID, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	byEmail, err := s.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byGoogle, err := s.GetUserByGoogleID(ctx, "g-ana")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byGoogle.ID)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreUpdateUser(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &models.User{Name: "Old Name", Email: "u@example.com", Role: models.RoleCustomer, GoogleID: "g-u"})
	require.NoError(t, err)

	name := "New Name"
	picture := "https://example.com/p.png"
	updated, err := s.UpdateUser(ctx, created.ID, models.UserUpdate{Name: &name, Picture: &picture})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, picture, updated.Picture)
	assert.Equal(t, "u@example.com", updated.Email, "untouched fields must survive")

	_, err = s.UpdateUser(ctx, "missing", models.UserUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreProductsByCategory(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	fans, err := s.GetProductsByCategory(ctx, models.CategoryFan)
	require.NoError(t, err)
	require.NotEmpty(t, fans)
	for _, p := range fans {
		assert.Equal(t, models.CategoryFan, p.Category)
	}

	none, err := s.GetProductsByCategory(ctx, models.ProductCategory("heater"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemStoreCreateOrderAlsoCreatesItems(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	user, err := s.CreateUser(ctx, &models.User{Name: "Buyer", Email: "b@example.com", Role: models.RoleCustomer, GoogleID: "g-b"})
	require.NoError(t, err)

	order, err := s.CreateOrder(ctx,
		&models.Order{UserID: user.ID, Status: models.StatusPaid, Total: 14999},
		[]models.OrderItem{
			{ProductID: "p1", Quantity: 1, Price: 14999, Color: "White", Size: "Standard"},
		})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)

	withItems, err := s.GetOrderWithItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, withItems.Order.ID)
	require.Len(t, withItems.Items, 1)
	assert.Equal(t, order.ID, withItems.Items[0].OrderID)
	assert.NotEmpty(t, withItems.Items[0].ID)

	_, err = s.GetOrderWithItems(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreOrderScoping(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleCustomer, GoogleID: "g-alice"})
	require.NoError(t, err)
	bob, err := s.CreateUser(ctx, &models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleCustomer, GoogleID: "g-bob"})
	require.NoError(t, err)
	rider, err := s.CreateUser(ctx, &models.User{Name: "Rider", Email: "r@example.com", Role: models.RoleRider, GoogleID: "g-r"})
	require.NoError(t, err)

	a1, err := s.CreateOrder(ctx, &models.Order{UserID: alice.ID, Status: models.StatusPaid, Total: 100}, nil)
	require.NoError(t, err)
	_, err = s.CreateOrder(ctx, &models.Order{UserID: bob.ID, Status: models.StatusPaid, Total: 200}, nil)
	require.NoError(t, err)

	aliceOrders, err := s.GetUserOrders(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceOrders, 1)
	assert.Equal(t, a1.ID, aliceOrders[0].ID)

	all, err := s.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	riderOrders, err := s.GetRiderOrders(ctx, rider.ID)
	require.NoError(t, err)
	assert.Empty(t, riderOrders)

	_, err = s.UpdateOrderStatus(ctx, a1.ID, models.StatusShipped, rider.ID)
	require.NoError(t, err)

	riderOrders, err = s.GetRiderOrders(ctx, rider.ID)
	require.NoError(t, err)
	require.Len(t, riderOrders, 1)
	assert.Equal(t, a1.ID, riderOrders[0].ID)
}

func TestOrderListingsNewestFirst(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	first, err := s.CreateOrder(ctx, &models.Order{UserID: "u1", Status: models.StatusPaid, Total: 100, RiderID: "r1"}, nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.CreateOrder(ctx, &models.Order{UserID: "u1", Status: models.StatusPaid, Total: 200, RiderID: "r1"}, nil)
	require.NoError(t, err)

	userOrders, err := s.GetUserOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, userOrders, 2)
	assert.Equal(t, second.ID, userOrders[0].ID)
	assert.Equal(t, first.ID, userOrders[1].ID)

	riderOrders, err := s.GetRiderOrders(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, riderOrders, 2)
	assert.Equal(t, second.ID, riderOrders[0].ID)

	all, err := s.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestMemStoreUpdateOrderStatus(t *testing.T) {
	s := NewMemStore(testLogger())
	ctx := context.Background()

	order, err := s.CreateOrder(ctx, &models.Order{UserID: "u1", Status: models.StatusPaid, Total: 100}, nil)
	require.NoError(t, err)

	updated, err := s.UpdateOrderStatus(ctx, order.ID, models.StatusShipped, "rider-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)
	assert.Equal(t, "rider-1", updated.RiderID)

	// Omitting the rider keeps the existing assignment.
	updated, err = s.UpdateOrderStatus(ctx, order.ID, models.StatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, updated.Status)
	assert.Equal(t, "rider-1", updated.RiderID)

	_, err = s.UpdateOrderStatus(ctx, "missing", models.StatusPaid, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
