package recalc

import (
	"github.com/ougirez/certenergy/internal/domain"
)

// PrimaryEnergy derives the delivered consumption (demand / efficiency) and the
// primary energy (consumption × fuel factor) of branch b from the efficiency
// already stored on e. Non-positive demand or efficiency yields 0.
func PrimaryEnergy(e *domain.Enclosure, b domain.Branch, sel Selections, cat *domain.Catalogs) float64 {
	demand := sanitize(e.Demand(b))
	eff := sanitize(efficiencyOf(e, b))
	fuelFactor := cat.Fuel.Factor(resolveCode(e, domain.AxisFor(b, domain.AxisKindFuel), sel))

	var consumption, primary float64
	if demand > 0 && eff > 0 {
		consumption = demand / eff
		primary = consumption * fuelFactor
	}

	if b == domain.BranchCooling {
		e.CoolingConsumption = consumption
		e.CoolingPrimaryEnergy = primary
	} else {
		e.HeatingConsumption = consumption
		e.HeatingPrimaryEnergy = primary
	}
	return primary
}
