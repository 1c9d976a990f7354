package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/httpresp"
	"github.com/shearbook/shearbook/internal/middleware"
	"github.com/shearbook/shearbook/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

type UpdateCommissionRatesRequest struct {
	ServiceRate  *float64 `json:"service_rate"`
	ChemicalRate *float64 `json:"chemical_rate"`
	ProductRate  *float64 `json:"product_rate"`
}

func (h *BarberHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var barbers []models.User
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

// UpdateRates changes a barber's commission configuration. Rates already
// captured on existing appointments and sales are not touched; only
// future bookings pick up the new values.
func (h *BarberHandler) UpdateRates(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	var barber models.User
	if err := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&barber).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barber not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Could not load the barber.")
		return
	}

	var req UpdateCommissionRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	for _, r := range []*float64{req.ServiceRate, req.ChemicalRate, req.ProductRate} {
		if r != nil && (*r < 0 || *r > 1) {
			httperr.BadRequest(c, "invalid_rate", "Commission rates must be fractions between 0 and 1.")
			return
		}
	}

	if req.ServiceRate != nil {
		barber.ServiceRate = *req.ServiceRate
	}
	if req.ChemicalRate != nil {
		barber.ChemicalRate = *req.ChemicalRate
	}
	if req.ProductRate != nil {
		barber.ProductRate = *req.ProductRate
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not save commission rates.")
		return
	}

	c.JSON(http.StatusOK, barber)
}
