package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"breezemart-backend/models"
	"breezemart-backend/storage"
)

type Controller struct {
	store storage.Store
	log   *logrus.Logger
}

func NewController(store storage.Store, log *logrus.Logger) *Controller {
	return &Controller{store: store, log: log}
}

func (ct *Controller) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/api/products")
	grp.GET("", ct.List)
	grp.GET("/category/:category", ct.ListByCategory)
	grp.GET("/:id", ct.Get)
}

func (ct *Controller) List(c *gin.Context) {
	products, err := ct.store.GetProducts(c.Request.Context())
	if err != nil {
		ct.log.Errorf("Failed to fetch products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListByCategory returns an empty list for a category no product carries,
// including categories outside the enum.
func (ct *Controller) ListByCategory(c *gin.Context) {
	category := models.ProductCategory(c.Param("category"))
	products, err := ct.store.GetProductsByCategory(c.Request.Context(), category)
	if err != nil {
		ct.log.Errorf("Failed to fetch products by category %s: %v", category, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products by category"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (ct *Controller) Get(c *gin.Context) {
	product, err := ct.store.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
