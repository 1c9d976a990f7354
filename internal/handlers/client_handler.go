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

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (h *ClientHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("barbershop_id = ?", barbershopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	client := models.Client{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Could not create the client.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Could not load the client.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Could not save the client.")
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		Delete(&models.Client{})

	if res.Error != nil {
		if httperr.IsForeignKeyViolation(res.Error) {
			httperr.Conflict(c, "client_in_use", "The client still has appointments or sales.")
			return
		}
		httperr.Internal(c, "failed_to_delete_client", "Could not delete the client.")
		return
	}

	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
