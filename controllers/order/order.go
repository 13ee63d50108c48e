package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"breezemart-backend/auth"
	"breezemart-backend/middleware"
	"breezemart-backend/models"
	"breezemart-backend/storage"
)

type Controller struct {
	store    storage.Store
	sessions *auth.Sessions
	log      *logrus.Logger
}

func NewController(store storage.Store, sessions *auth.Sessions, log *logrus.Logger) *Controller {
	return &Controller{store: store, sessions: sessions, log: log}
}

func (ct *Controller) RegisterRoutes(r gin.IRouter) {
	authed := r.Group("/api/orders", middleware.RequireAuth(ct.store, ct.sessions))
	authed.POST("", ct.Create)
	authed.GET("", ct.List)
	authed.GET("/:id", ct.Get)

	admin := r.Group("/api/admin", middleware.RequireRole(ct.store, ct.sessions, models.RoleAdmin))
	admin.PATCH("/orders/:id/status", ct.AdminUpdateStatus)

	rider := r.Group("/api/rider", middleware.RequireRole(ct.store, ct.sessions, models.RoleRider))
	rider.PATCH("/orders/:id/status", ct.RiderUpdateStatus)
}

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Price     int    `json:"price" binding:"required,gt=0"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

type createOrderRequest struct {
	Order struct {
		Total           int    `json:"total" binding:"required,gt=0"`
		ShippingAddress string `json:"shippingAddress"`
		ContactPhone    string `json:"contactPhone"`
	} `json:"order"`
	Items []orderItemRequest `json:"items" binding:"required,dive"`
}

// Create places an order for the calling user. The userId is always the
// session user's and the status is forced to paid: checkout implies
// immediate payment.
func (ct *Controller) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order data", "errors": err.Error()})
		return
	}

	order := models.Order{
		UserID:          user.ID,
		Status:          models.StatusPaid,
		Total:           req.Order.Total,
		ShippingAddress: req.Order.ShippingAddress,
		ContactPhone:    req.Order.ContactPhone,
	}
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Color:     item.Color,
			Size:      item.Size,
		})
	}

	created, err := ct.store.CreateOrder(c.Request.Context(), &order, items)
	if err != nil {
		ct.log.Errorf("Failed to create order for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}
	ct.log.Infof("Order %s created for user %s (%d items)", created.ID, user.ID, len(items))
	c.JSON(http.StatusCreated, created)
}

// List is role-scoped: admins see everything, riders their assignments,
// customers their own orders.
func (ct *Controller) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var (
		orders []models.Order
		err    error
	)
	switch user.Role {
	case models.RoleAdmin:
		orders, err = ct.store.GetAllOrders(ctx)
	case models.RoleRider:
		orders, err = ct.store.GetRiderOrders(ctx, user.ID)
	default:
		orders, err = ct.store.GetUserOrders(ctx, user.ID)
	}
	if err != nil {
		ct.log.Errorf("Failed to fetch orders for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ct *Controller) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	withItems, err := ct.store.GetOrderWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if !middleware.CanViewOrder(user, &withItems.Order) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, withItems)
}

type adminStatusRequest struct {
	Status  models.OrderStatus `json:"status" binding:"required"`
	RiderID string             `json:"riderId"`
}

// AdminUpdateStatus moves an order to any admin-settable status and may
// assign a rider in the same call. No transition matrix beyond role checks.
func (ct *Controller) AdminUpdateStatus(c *gin.Context) {
	var req adminStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}
	if !models.StatusIn(req.Status, models.AdminStatuses) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	updated, err := ct.store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status, req.RiderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		ct.log.Errorf("Failed to update order %s status: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type riderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// RiderUpdateStatus lets a rider close out an order assigned to them.
func (ct *Controller) RiderUpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req riderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Riders can only mark orders as delivered or undelivered"})
		return
	}
	if !models.StatusIn(req.Status, models.RiderStatuses) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Riders can only mark orders as delivered or undelivered"})
		return
	}

	existing, err := ct.store.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if !middleware.CanRiderUpdateOrder(user, existing) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not assigned to this order"})
		return
	}

	updated, err := ct.store.UpdateOrderStatus(c.Request.Context(), existing.ID, req.Status, "")
	if err != nil {
		ct.log.Errorf("Failed to update order %s status: %v", existing.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
