package recalc

import (
	"github.com/ougirez/certenergy/internal/domain"
)

// Totals sums the branch figures of e and returns the total primary energy.
//
// Lighting enters the primary-energy total as raw demand, without any
// efficiency coefficient or fuel factor.
// TODO: confirm with the certification team whether lighting should be converted like the other branches.
func Totals(e *domain.Enclosure) float64 {
	lighting := sanitize(e.LightingDemand)

	e.TotalDemand = sanitize(e.HeatingDemand) + sanitize(e.CoolingDemand) + lighting
	e.TotalConsumption = sanitize(e.HeatingConsumption) + sanitize(e.CoolingConsumption) + lighting
	e.TotalPrimaryEnergy = sanitize(e.HeatingPrimaryEnergy) + sanitize(e.CoolingPrimaryEnergy) + lighting
	e.TotalDiscomfortHours = sanitize(e.HeatingDiscomfortHours) + sanitize(e.CoolingDiscomfortHours)

	return e.TotalPrimaryEnergy
}
