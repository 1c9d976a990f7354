package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shearbook/shearbook/internal/domain/pos"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/middleware"
	ucsale "github.com/shearbook/shearbook/internal/usecase/sale"
)

type SaleHandler struct {
	repo        pos.Repository
	create      *ucsale.CreateSale
	editAmounts *ucsale.EditAmounts
	delete      *ucsale.DeleteSale
}

func NewSaleHandler(
	repo pos.Repository,
	create *ucsale.CreateSale,
	editAmounts *ucsale.EditAmounts,
	delete *ucsale.DeleteSale,
) *SaleHandler {
	return &SaleHandler{
		repo:        repo,
		create:      create,
		editAmounts: editAmounts,
		delete:      delete,
	}
}

// --------- Requests ---------

type SaleItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateSaleRequest struct {
	BarberID uint              `json:"barber_id"`
	ClientID *uint             `json:"client_id"`
	Items    []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes    string            `json:"notes"`
}

type EditSaleAmountsRequest struct {
	Overrides []pos.AmountOverride `json:"overrides" binding:"required,min=1"`
}

// --------- Handlers ---------

func (h *SaleHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	barberID := req.BarberID
	if barberID == 0 {
		barberID = userID
	}

	items := make([]ucsale.CreateSaleItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ucsale.CreateSaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	sale, err := h.create.Execute(c.Request.Context(), ucsale.CreateSaleInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		ClientID:     req.ClientID,
		Items:        items,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// List answers the sales of a period, "2006-01-02" bounds with To
// inclusive. Without bounds it covers the last 30 days.
func (h *SaleHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	barberID := userID
	if c.Query("all_barbers") == "true" {
		barberID = 0
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -30)
	end := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_range", "from must be YYYY-MM-DD.")
			return
		}
		start = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_range", "to must be YYYY-MM-DD.")
			return
		}
		end = parsed.AddDate(0, 0, 1)
	}

	sales, err := h.repo.ListSales(c.Request.Context(), barbershopID, barberID, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Could not list sales.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"count": len(sales),
	})
}

func (h *SaleHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	sale, err := h.repo.GetSale(c.Request.Context(), barbershopID, id)
	if err != nil {
		httperr.NotFound(c, "sale_not_found", "Sale not found.")
		return
	}

	c.JSON(http.StatusOK, sale)
}

// EditAmounts overrides the charged subtotal of individual sale lines.
func (h *SaleHandler) EditAmounts(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req EditSaleAmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sale, err := h.editAmounts.Execute(c.Request.Context(), ucsale.EditAmountsInput{
		BarbershopID: barbershopID,
		UserID:       userID,
		SaleID:       id,
		Overrides:    req.Overrides,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), barbershopID, userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *SaleHandler) pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := parseUintParam(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "The id must be numeric.")
		return 0, false
	}
	return parsed, true
}
