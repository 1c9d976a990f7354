package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shearbook/shearbook/internal/httperr"
)

func parseUintParam(raw string) (uint, error) {
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

// businessStatus maps domain error codes onto HTTP statuses so every
// handler reports use case failures the same way.
var businessStatus = map[string]int{
	"appointment_not_found": 404,
	"barber_not_found":      404,
	"sale_not_found":        404,
	"series_not_found":      404,
	"service_not_found":     404,
	"product_not_found":     404,
	"block_not_found":       404,
	"time_conflict":         409,
	"time_blocked":          409,
	"insufficient_stock":    409,
}

var businessMessage = map[string]string{
	"appointment_not_found":  "Appointment not found.",
	"barber_not_found":       "Barber not found.",
	"sale_not_found":         "Sale not found.",
	"series_not_found":       "Recurrence series not found.",
	"service_not_found":      "One of the services does not exist.",
	"service_inactive":       "One of the services is inactive.",
	"product_not_found":      "One of the products does not exist.",
	"product_inactive":       "One of the products is inactive.",
	"block_not_found":        "Block not found.",
	"invalid_block_interval": "The block interval is empty or inverted.",
	"block_spans_days":       "A block must stay within one calendar day.",
	"block_overlap":          "Two blocks for the same barber overlap.",
	"invalid_state":          "The appointment state does not allow this action.",
	"no_services":            "At least one service is required.",
	"no_items":               "At least one item is required.",
	"no_overrides":           "At least one amount override is required.",
	"invalid_quantity":       "Quantities must be positive.",
	"invalid_subtotal":       "Overridden subtotals must be positive.",
	"invalid_amount":         "The amount must be positive.",
	"invalid_duration":       "The appointment must have a positive duration.",
	"invalid_date":           "Invalid date.",
	"invalid_date_or_time":   "Invalid date or time.",
	"invalid_range":          "Invalid period.",
	"invalid_occurrences":    "Occurrences must be between 2 and 52.",
	"invalid_interval":       "The interval between occurrences is out of range.",
	"too_soon":               "The slot is inside the minimum advance period.",
	"time_conflict":          "The slot overlaps another appointment.",
	"time_blocked":           "The slot falls inside a blocked period.",
	"insufficient_stock":     "Not enough stock for one of the products.",
	"product_not_in_sale":    "One of the overrides targets a product outside the sale.",
	"duplicate_override":     "The same product was overridden twice.",
}

// writeError turns a use case error into a response. Business errors
// keep their code; anything else is reported as an internal failure
// without leaking the cause.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		status := businessStatus[code]
		if status == 0 {
			status = 400
		}
		msg := businessMessage[code]
		if msg == "" {
			msg = "The request could not be processed."
		}
		httperr.Write(c, status, code, msg)
		return
	}
	httperr.Internal(c, "internal_error", "Something went wrong.")
}
