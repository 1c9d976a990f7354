package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/middleware"
	ucappointment "github.com/shearbook/shearbook/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create          *ucappointment.CreateAppointment
	createRecurring *ucappointment.CreateRecurring
	cancel          *ucappointment.CancelAppointment
	complete        *ucappointment.CompleteAppointment
	settle          *ucappointment.SettleAppointment
	listWindow      *ucappointment.ListWindow
	expandSeries    *ucappointment.ExpandSeries
	deleteSeries    *ucappointment.DeleteSeries
	backfill        *ucappointment.BackfillGroups
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	createRecurring *ucappointment.CreateRecurring,
	cancel *ucappointment.CancelAppointment,
	complete *ucappointment.CompleteAppointment,
	settle *ucappointment.SettleAppointment,
	listWindow *ucappointment.ListWindow,
	expandSeries *ucappointment.ExpandSeries,
	deleteSeries *ucappointment.DeleteSeries,
	backfill *ucappointment.BackfillGroups,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:          create,
		createRecurring: createRecurring,
		cancel:          cancel,
		complete:        complete,
		settle:          settle,
		listWindow:      listWindow,
		expandSeries:    expandSeries,
		deleteSeries:    deleteSeries,
		backfill:        backfill,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	BarberID uint `json:"barber_id"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`

	AllowConflict bool `json:"allow_conflict"`
}

type CreateRecurringRequest struct {
	CreateAppointmentRequest

	Occurrences  int `json:"occurrences" binding:"required,min=2"`
	IntervalDays int `json:"interval_days" binding:"required,min=1"`
}

type SettleAppointmentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// --------- Handlers ---------

// Create books a single appointment. An overlapping slot answers 409
// with the conflicting bookings; resending with allow_conflict set to
// true confirms the double booking.
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
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

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		BarbershopID:  barbershopID,
		BarberID:      barberID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		AllowConflict: req.AllowConflict,
	})
	if err != nil {
		var conflictErr *ucappointment.ConflictError
		if errors.As(err, &conflictErr) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "time_conflict",
				"message":   "The slot overlaps existing appointments.",
				"conflicts": conflictErr.Conflicts,
			})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// CreateRecurring books a whole series at once. All occurrences share
// one recurrence group and land in a single transaction.
func (h *AppointmentHandler) CreateRecurring(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateRecurringRequest
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

	apps, err := h.createRecurring.Execute(c.Request.Context(), ucappointment.CreateRecurringInput{
		BarbershopID:  barbershopID,
		BarberID:      barberID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		Occurrences:   req.Occurrences,
		IntervalDays:  req.IntervalDays,
		AllowConflict: req.AllowConflict,
	})
	if err != nil {
		var conflictErr *ucappointment.ConflictError
		if errors.As(err, &conflictErr) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "time_conflict",
				"message":   "One or more occurrences overlap existing appointments.",
				"conflicts": conflictErr.Conflicts,
			})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, apps)
}

// List answers the agenda window. Without from/to it centers the
// configured default window on the anchor date (today by default) and
// flags recurrence membership per item.
func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	barberID := userID
	if raw := c.Query("barber_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "barber_id must be numeric.")
			return
		}
		barberID = uint(parsed)
	}
	if c.Query("all_barbers") == "true" {
		barberID = 0
	}

	items, err := h.listWindow.Execute(c.Request.Context(), ucappointment.ListWindowInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		Anchor:       c.Query("anchor"),
		From:         c.Query("from"),
		To:           c.Query("to"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), barbershopID, userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), barbershopID, userID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Settle records the final charged amount of a completed appointment
// without touching the booked line prices.
func (h *AppointmentHandler) Settle(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req SettleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.settle.Execute(c.Request.Context(), barbershopID, userID, id, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ExpandSeries returns every member of a recurrence group, including
// members outside the current agenda window.
func (h *AppointmentHandler) ExpandSeries(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	groupID := c.Param("groupId")
	if groupID == "" {
		httperr.BadRequest(c, "invalid_group_id", "A group id is required.")
		return
	}

	apps, err := h.expandSeries.Execute(c.Request.Context(), barbershopID, groupID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id":     groupID,
		"appointments": apps,
		"count":        len(apps),
	})
}

// DeleteSeries removes a whole recurrence group at once.
func (h *AppointmentHandler) DeleteSeries(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	groupID := c.Param("groupId")
	if groupID == "" {
		httperr.BadRequest(c, "invalid_group_id", "A group id is required.")
		return
	}

	deleted, err := h.deleteSeries.Execute(c.Request.Context(), barbershopID, userID, groupID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id": groupID,
		"deleted":  deleted,
	})
}

// Backfill runs recurrence detection over ungrouped appointments of the
// shop. It is also triggered nightly; this endpoint exists for manual
// runs after imports.
func (h *AppointmentHandler) Backfill(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	report, err := h.backfill.Execute(c.Request.Context(), barbershopID)
	if err != nil {
		// A mid-run failure still grouped something; report what
		// was applied alongside the failure.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "backfill_incomplete",
			"report": report,
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AppointmentHandler) pathID(c *gin.Context) (uint, bool) {
	parsed, err := parseUintParam(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "The id must be numeric.")
		return 0, false
	}
	return parsed, true
}
