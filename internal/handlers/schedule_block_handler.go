package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/middleware"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
	"github.com/shearbook/shearbook/internal/timezone"
)

type ScheduleBlockHandler struct {
	repo domain.Repository
	rt   *realtime.Notifier
}

func NewScheduleBlockHandler(
	repo domain.Repository,
	rt *realtime.Notifier,
) *ScheduleBlockHandler {
	return &ScheduleBlockHandler{
		repo: repo,
		rt:   rt,
	}
}

// --------- Requests ---------

type CreateBlockRequest struct {
	// BarberID nil blocks the whole shop.
	BarberID *uint `json:"barber_id"`

	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	Reason string `json:"reason"`

	RepeatWeekly bool   `json:"repeat_weekly"`
	RepeatUntil  string `json:"repeat_until"`
}

// --------- Handlers ---------

// Create registers a blocked interval. With repeat_weekly set, the
// parent block is expanded into one child per week up to repeat_until,
// and parent plus children are inserted in a single transaction.
func (h *ScheduleBlockHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	shop, err := h.repo.GetBarbershopByID(c.Request.Context(), barbershopID)
	if err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbershop not found.")
		return
	}
	loc := timezone.Location(shop.Timezone)

	start, err1 := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.StartTime, loc)
	end, err2 := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.EndTime, loc)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	if err := domain.ValidateBlockInterval(start, end); err != nil {
		writeError(c, err)
		return
	}

	parent := models.ScheduleBlock{
		BarbershopID: barbershopID,
		BarberID:     req.BarberID,
		StartTime:    start,
		EndTime:      end,
		Reason:       req.Reason,
	}

	var children []models.ScheduleBlock
	if req.RepeatWeekly {
		until, err := time.ParseInLocation("2006-01-02", req.RepeatUntil, loc)
		if err != nil || until.Before(start) {
			httperr.BadRequest(c, "invalid_repeat_until", "repeat_until must be a date after the block.")
			return
		}
		// Include blocks starting any time on the final day.
		children = domain.ExpandWeekly(parent, until.AddDate(0, 0, 1))

		if err := domain.ValidateSiblings(children); err != nil {
			writeError(c, err)
			return
		}
	}

	if err := h.repo.CreateBlockWithChildren(c.Request.Context(), &parent, children); err != nil {
		httperr.Internal(c, "failed_to_create_block", "Could not create the block.")
		return
	}

	h.rt.Publish(realtime.Change{
		Entity:   "schedule_blocks",
		Action:   "created",
		EntityID: parent.ID,
		ShopID:   barbershopID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"block":    parent,
		"children": len(children),
	})
}

// List answers the blocks of a range, "2006-01-02" bounds with To
// inclusive. Without bounds it covers the coming 30 days.
func (h *ScheduleBlockHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	barberID := userID
	if c.Query("all_barbers") == "true" {
		barberID = 0
	}

	now := time.Now().UTC()
	start := now
	end := now.AddDate(0, 0, 30)

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

	blocks, err := h.repo.ListBlocksInRange(c.Request.Context(), barbershopID, barberID, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Could not list blocks.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blocks": blocks,
		"count":  len(blocks),
	})
}

// Delete removes a block; deleting a recurring parent removes its
// children with it.
func (h *ScheduleBlockHandler) Delete(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "The id must be numeric.")
		return
	}

	if err := h.repo.DeleteBlock(c.Request.Context(), barbershopID, id); err != nil {
		if code, ok := httperr.BusinessCode(err); ok && code == "block_not_found" {
			httperr.NotFound(c, "block_not_found", "Block not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_block", "Could not delete the block.")
		return
	}

	h.rt.Publish(realtime.Change{
		Entity:   "schedule_blocks",
		Action:   "deleted",
		EntityID: id,
		ShopID:   barbershopID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
