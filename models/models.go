package models

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
	RoleRider    UserRole = "rider"
)

func IsValidRole(role UserRole) bool {
	switch role {
	case RoleCustomer, RoleAdmin, RoleRider:
		return true
	default:
		return false
	}
}

type OrderStatus string

const (
	StatusPending     OrderStatus = "pending"
	StatusPaid        OrderStatus = "paid"
	StatusShipped     OrderStatus = "shipped"
	StatusDelivered   OrderStatus = "delivered"
	StatusUndelivered OrderStatus = "undelivered"
	StatusCancelled   OrderStatus = "cancelled"
)

func IsValidOrderStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusUndelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// AdminStatuses is the set an admin may set through the status endpoint.
// Note "pending" is schema-only: nothing ever writes it.
var AdminStatuses = []OrderStatus{StatusPaid, StatusShipped, StatusDelivered, StatusUndelivered, StatusCancelled}

// RiderStatuses is the set a rider may set on an assigned order.
var RiderStatuses = []OrderStatus{StatusDelivered, StatusUndelivered}

func StatusIn(status OrderStatus, allowed []OrderStatus) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

type ProductCategory string

const (
	CategoryFan ProductCategory = "fan"
	CategoryAC  ProductCategory = "ac"
)

func IsValidCategory(category ProductCategory) bool {
	return category == CategoryFan || category == CategoryAC
}

type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Picture     string    `bson:"picture,omitempty" json:"picture,omitempty"`
	Role        UserRole  `bson:"role" json:"role"`
	GoogleID    string    `bson:"googleId" json:"googleId"`
	PhoneNumber string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserUpdate carries the fields a profile refresh may change. Nil pointers
// leave the stored value untouched.
type UserUpdate struct {
	Name        *string `bson:"name,omitempty"`
	Picture     *string `bson:"picture,omitempty"`
	PhoneNumber *string `bson:"phoneNumber,omitempty"`
	Address     *string `bson:"address,omitempty"`
}

type ApprovedEmail struct {
	ID    string   `bson:"_id,omitempty" json:"id"`
	Email string   `bson:"email" json:"email"`
	Role  UserRole `bson:"role" json:"role"`
}

type Product struct {
	ID            string          `bson:"_id,omitempty" json:"id"`
	Name          string          `bson:"name" json:"name"`
	Description   string          `bson:"description" json:"description"`
	Category      ProductCategory `bson:"category" json:"category"`
	BasePrice     int             `bson:"basePrice" json:"basePrice"` // minor currency units
	Image         string          `bson:"image" json:"image"`
	AverageRating float64         `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	ReviewCount   int             `bson:"reviewCount,omitempty" json:"reviewCount,omitempty"`
	Colors        []string        `bson:"colors" json:"colors"`
	Sizes         []string        `bson:"sizes" json:"sizes"`
}

type Order struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	UserID          string      `bson:"userId" json:"userId"`
	Status          OrderStatus `bson:"status" json:"status"`
	Total           int         `bson:"total" json:"total"` // minor currency units
	RiderID         string      `bson:"riderId,omitempty" json:"riderId,omitempty"`
	ShippingAddress string      `bson:"shippingAddress,omitempty" json:"shippingAddress,omitempty"`
	ContactPhone    string      `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updatedAt" json:"updatedAt"`
}

type OrderItem struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	OrderID   string `bson:"orderId" json:"orderId"`
	ProductID string `bson:"productId" json:"productId"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Price     int    `bson:"price" json:"price"` // snapshot at purchase time
	Color     string `bson:"color" json:"color"`
	Size      string `bson:"size" json:"size"`
}

type OrderWithItems struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
