package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/httpresp"
	"github.com/shearbook/shearbook/internal/middleware"
	"github.com/shearbook/shearbook/internal/models"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type AdjustStockRequest struct {
	// Positive restocks, negative writes off.
	Delta int `json:"delta" binding:"required"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("barbershop_id = ?", barbershopID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.
		Order("id ASC").
		Find(&products).Error; err != nil {

		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	product := models.Product{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		Active:       true,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Could not create the product.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Could not load the product.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Price != nil && *req.Price <= 0 {
		httperr.BadRequest(c, "invalid_price", "Price must be positive.")
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Could not save the product.")
		return
	}

	c.JSON(http.StatusOK, product)
}

// AdjustStock applies a manual stock correction outside the sale flow.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	var product models.Product

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND barbershop_id = ?", id, barbershopID).
			First(&product).Error; err != nil {
			return err
		}

		if product.Stock+req.Delta < 0 {
			return httperr.ErrBusiness("insufficient_stock")
		}

		product.Stock += req.Delta
		return tx.Save(&product).Error
	})

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		if httperr.IsBusiness(err, "insufficient_stock") {
			httperr.BadRequest(c, "insufficient_stock", "Stock cannot go negative.")
			return
		}
		httperr.Internal(c, "failed_to_adjust_stock", "Could not adjust stock.")
		return
	}

	c.JSON(http.StatusOK, product)
}
