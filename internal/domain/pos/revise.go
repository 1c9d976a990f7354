package pos

import (
	"math"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

// AmountOverride is a manual per-line adjustment, e.g. a discount.
type AmountOverride struct {
	ProductID uint    `json:"product_id"`
	Subtotal  float64 `json:"subtotal"`
}

// LineRevision is the computed replacement for one sale line.
type LineRevision struct {
	ProductID uint
	UnitPrice float64
	Subtotal  float64
}

// ReviseAmounts validates a set of overrides against a sale and computes
// the new line values and sale total. Quantities are preserved; the new
// unit price is subtotal/quantity rounded to currency precision. Lines
// not mentioned keep their existing subtotal in the recomputed total.
// Nothing is validated after the first write: all checks happen here,
// before any store call.
func ReviseAmounts(sale *models.Sale, overrides []AmountOverride) ([]LineRevision, float64, error) {
	if len(overrides) == 0 {
		return nil, 0, httperr.ErrBusiness("no_overrides")
	}

	linesByProduct := map[uint]*models.SaleItem{}
	for i := range sale.Items {
		linesByProduct[sale.Items[i].ProductID] = &sale.Items[i]
	}

	seen := map[uint]bool{}
	revisions := make([]LineRevision, 0, len(overrides))

	for _, ov := range overrides {
		if ov.Subtotal <= 0 {
			return nil, 0, httperr.ErrBusiness("invalid_subtotal")
		}

		line, ok := linesByProduct[ov.ProductID]
		if !ok {
			return nil, 0, httperr.ErrBusiness("product_not_in_sale")
		}
		if seen[ov.ProductID] {
			return nil, 0, httperr.ErrBusiness("duplicate_override")
		}
		seen[ov.ProductID] = true

		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}

		revisions = append(revisions, LineRevision{
			ProductID: ov.ProductID,
			UnitPrice: round2(ov.Subtotal / float64(qty)),
			Subtotal:  ov.Subtotal,
		})
	}

	total := 0.0
	for _, line := range sale.Items {
		if seen[line.ProductID] {
			continue
		}
		total += line.Subtotal
	}
	for _, rev := range revisions {
		total += rev.Subtotal
	}

	return revisions, round2(total), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
