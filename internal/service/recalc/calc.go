// Package recalc derives efficiency, primary energy and emissions for the
// enclosures of a project and keeps them consistent with the current selections.
//
// The calculators in this package are pure over a copy of an enclosure: they read
// demand, codes and catalogs and write only their own output fields. Missing data
// never produces an error; it produces a zero.
package recalc

import (
	"math"

	"github.com/ougirez/certenergy/internal/domain"
)

// Selections is the read side of the selection store.
type Selections interface {
	Get(enclosureID int64, a domain.Axis) (string, bool)
	ForEnclosure(enclosureID int64) map[domain.Axis]string
	BaselineFuel() string
}

// resolveCode prefers the code persisted on the record and falls back to the pending selection.
func resolveCode(e *domain.Enclosure, a domain.Axis, sel Selections) string {
	if code := e.Code(a); code != "" {
		return code
	}
	if sel == nil {
		return ""
	}
	code, _ := sel.Get(e.ID, a)
	return code
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
