package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/middleware"
	ucreport "github.com/shearbook/shearbook/internal/usecase/report"
)

type ReportHandler struct {
	commission *ucreport.CommissionStatement
}

func NewReportHandler(commission *ucreport.CommissionStatement) *ReportHandler {
	return &ReportHandler{commission: commission}
}

// Commission answers a barber's commission statement for a period.
// Amounts come from the rates and prices captured when the appointment
// or sale was recorded, not from the current catalog.
func (h *ReportHandler) Commission(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		httperr.BadRequest(c, "invalid_range", "from and to are required, YYYY-MM-DD.")
		return
	}

	barberID := userID
	if raw := c.Query("barber_id"); raw != "" {
		parsed, err := parseUintParam(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "barber_id must be numeric.")
			return
		}
		barberID = parsed
	}

	statement, err := h.commission.Execute(c.Request.Context(), ucreport.CommissionStatementInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		From:         from,
		To:           to,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}
