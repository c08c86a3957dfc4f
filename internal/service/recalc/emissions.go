package recalc

import (
	"github.com/ougirez/certenergy/internal/domain"
)

// No modeled catalog carries a lighting emission factor.
const lightingEmissionFactor = 0.0

// Emissions computes CO2-eq per branch as primary energy × fuel emission factor
// × floor area, writes the four emission fields and returns the total.
func Emissions(e *domain.Enclosure, sel Selections, cat *domain.Catalogs) float64 {
	area := sanitize(e.Surface)

	heatingFactor := cat.Fuel.EmissionFactor(resolveCode(e, domain.AxisHeatingFuel, sel))
	coolingFactor := cat.Fuel.EmissionFactor(resolveCode(e, domain.AxisCoolingFuel, sel))

	e.HeatingCO2 = sanitize(e.HeatingPrimaryEnergy) * heatingFactor * area
	e.CoolingCO2 = sanitize(e.CoolingPrimaryEnergy) * coolingFactor * area
	e.LightingCO2 = sanitize(e.LightingDemand) * lightingEmissionFactor * area
	e.TotalCO2 = e.HeatingCO2 + e.CoolingCO2 + e.LightingCO2

	return e.TotalCO2
}
