package domain

import "math"

// EnclosureResult is the per-enclosure simulation aggregate of the actual design.
type EnclosureResult struct {
	EnclosureID           int64    `json:"enclosure_id" validate:"required"`
	EnclosureName         string   `json:"enclosure_name"`
	OccupationProfileName string   `json:"occupation_profile_name"`
	Surface               float64  `json:"surface"`
	PositiveSum           float64  `json:"positive_sum"`
	NegativeSum           float64  `json:"negative_sum"`
	LightingSum           *float64 `json:"lighting_sum,omitempty"`

	DiscomfortHoursHeating float64 `json:"discomfort_hours_heating"`
	DiscomfortHoursCooling float64 `json:"discomfort_hours_cooling"`
}

// BaseEnclosureResult is the per-enclosure simulation aggregate of the reference case.
type BaseEnclosureResult struct {
	EnclosureResult

	CombustibleCalefCode string  `json:"combustible_calef_code"`
	SEERRef              float64 `json:"seer_ref"`
	CO2FactorCalef       float64 `json:"co2_factor_calef"`
	CO2FactorRef         float64 `json:"co2_factor_ref"`
}

// DefaultBaselineLightingDemand is used when the baseline aggregate carries no
// lighting demand.
// TODO: the value has no recorded derivation; get it confirmed by the certification team.
const DefaultBaselineLightingDemand = 31.3

type SimulationResults struct {
	ResultByEnclosure []EnclosureResult     `json:"result_by_enclosure" validate:"dive"`
	BaseByEnclosure   []BaseEnclosureResult `json:"base_by_enclosure" validate:"dive"`
}

// PerArea divides an aggregate by the floor area, 0 when the area is unusable.
func PerArea(sum, surface float64) float64 {
	if surface <= 0 || math.IsNaN(surface) || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0
	}
	return sum / surface
}

func (r EnclosureResult) HeatingDemand() float64 {
	return PerArea(r.PositiveSum, r.Surface)
}

// CoolingDemand is reported positive; the simulation aggregates cooling loads as a negative sum.
func (r EnclosureResult) CoolingDemand() float64 {
	return PerArea(math.Abs(r.NegativeSum), r.Surface)
}

// LightingDemand reports the per-area lighting demand and whether the aggregate carried one.
func (r EnclosureResult) LightingDemand() (float64, bool) {
	if r.LightingSum == nil {
		return 0, false
	}
	return PerArea(*r.LightingSum, r.Surface), true
}

// BaselineLightingDemand is the per-area lighting demand of the reference case,
// DefaultBaselineLightingDemand when the aggregate carries none.
func (r BaseEnclosureResult) BaselineLightingDemand() float64 {
	if lighting, ok := r.LightingDemand(); ok {
		return lighting
	}
	return DefaultBaselineLightingDemand
}
