package recalc

import (
	"github.com/ougirez/certenergy/internal/domain"
)

// applySelections copies the pending selections of e onto its record.
func applySelections(e *domain.Enclosure, sel Selections) {
	for a, code := range sel.ForEnclosure(e.ID) {
		e.SetCode(a, code)
	}
}

// Recompute runs the actual-case stages on a copy of e in their fixed order.
// With cat == nil the catalog-dependent stages leave their previous values.
func Recompute(e domain.Enclosure, sel Selections, cat *domain.Catalogs) domain.Enclosure {
	applySelections(&e, sel)

	if cat != nil {
		for _, b := range domain.Branches {
			Efficiency(&e, b, sel, cat)
		}
		for _, b := range domain.Branches {
			PrimaryEnergy(&e, b, sel, cat)
		}
	}
	Totals(&e)
	if cat != nil {
		Emissions(&e, sel, cat)
	}

	return e
}
