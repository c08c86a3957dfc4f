package recalc

import (
	"github.com/ougirez/certenergy/internal/domain"
)

// Baseline computes the reference-case figures of one enclosure from its
// baseline aggregate and the project-wide baseline fuel. It uses only the fuel's
// primary-energy factor; no efficiency coefficient is involved. An unresolved
// fuel behaves as a zero factor.
func Baseline(in domain.BaseEnclosureResult, fuel domain.EnergySystemOption) domain.BaselineFields {
	area := sanitize(in.Surface)
	if area < 0 {
		area = 0
	}
	fep := sanitize(fuel.FEP)

	lighting := in.BaselineLightingDemand()

	b := domain.BaselineFields{
		BaseHeatingDemand:  in.HeatingDemand(),
		BaseCoolingDemand:  in.CoolingDemand(),
		BaseLightingDemand: lighting,

		BaseHeatingDiscomfortHours: sanitize(in.DiscomfortHoursHeating),
		BaseCoolingDiscomfortHours: sanitize(in.DiscomfortHoursCooling),

		BaseHeatingFuelCode:  in.CombustibleCalefCode,
		BaseFuelCode:         fuel.Code,
		BaseSEER:             sanitize(in.SEERRef),
		BaseHeatingCO2Factor: sanitize(in.CO2FactorCalef),
		BaseCoolingCO2Factor: sanitize(in.CO2FactorRef),
	}

	b.BaseTotalDemand = b.BaseHeatingDemand + b.BaseCoolingDemand + b.BaseLightingDemand
	b.BaseTotalDiscomfortHours = b.BaseHeatingDiscomfortHours + b.BaseCoolingDiscomfortHours

	b.BaseHeatingConsumption = b.BaseHeatingDemand * fep
	b.BaseCoolingConsumption = b.BaseCoolingDemand * fep
	b.BaseTotalConsumption = b.BaseHeatingConsumption + b.BaseCoolingConsumption

	b.BaseHeatingCO2 = b.BaseHeatingConsumption * fep * area
	b.BaseCoolingCO2 = b.BaseCoolingConsumption * fep * area
	b.BaseLightingCO2 = lighting * area * sanitize(fuel.CO2Eq) * fep
	b.BaseTotalCO2 = b.BaseHeatingCO2 + b.BaseCoolingCO2 + b.BaseLightingCO2

	return b
}

// baselineFuel resolves the project-wide baseline fuel option; unresolved codes give a zero option.
func baselineFuel(sel Selections, cat *domain.Catalogs) domain.EnergySystemOption {
	code := sel.BaselineFuel()
	opt, ok := cat.Fuel.Lookup(code)
	if !ok {
		return domain.EnergySystemOption{Code: code}
	}
	return opt
}
