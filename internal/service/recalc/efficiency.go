package recalc

import (
	"github.com/ougirez/certenergy/internal/domain"
)

// Efficiency computes SCOP for heating or SEER for cooling as the product of the
// performance, distribution and control coefficients, writes it on e and returns it.
// Any unresolved coefficient yields 0.
func Efficiency(e *domain.Enclosure, b domain.Branch, sel Selections, cat *domain.Catalogs) float64 {
	perf := cat.Performance(b).Coefficient(resolveCode(e, domain.AxisFor(b, domain.AxisKindPerformance), sel))
	dist := cat.Distribution.Coefficient(resolveCode(e, domain.AxisFor(b, domain.AxisKindDistribution), sel))
	ctrl := cat.Control.Coefficient(resolveCode(e, domain.AxisFor(b, domain.AxisKindControl), sel))

	var v float64
	if perf != 0 && dist != 0 && ctrl != 0 {
		v = sanitize(perf * dist * ctrl)
	}

	if b == domain.BranchCooling {
		e.SEER = v
	} else {
		e.SCOP = v
	}
	return v
}

func efficiencyOf(e *domain.Enclosure, b domain.Branch) float64 {
	if b == domain.BranchCooling {
		return e.SEER
	}
	return e.SCOP
}
