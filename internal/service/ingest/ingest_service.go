package ingest

import (
	"context"
	"math"

	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/logger"
)

// Result is a freshly ingested dataset: enclosures with initial demand fields in
// ingestion order, and the baseline aggregates keyed by enclosure id.
type Result struct {
	Enclosures []domain.Enclosure
	BaseInputs map[int64]domain.BaseEnclosureResult
}

// FromResults converts a simulation run into enclosure records. Actual rows come
// first in their order; baseline rows without an actual counterpart are appended.
// Repeated ids keep their first occurrence.
func FromResults(ctx context.Context, results domain.SimulationResults) Result {
	res := Result{
		Enclosures: make([]domain.Enclosure, 0, len(results.ResultByEnclosure)),
		BaseInputs: make(map[int64]domain.BaseEnclosureResult, len(results.BaseByEnclosure)),
	}
	index := make(map[int64]int, len(results.ResultByEnclosure))

	for _, r := range results.ResultByEnclosure {
		if _, dup := index[r.EnclosureID]; dup {
			logger.Warnf(ctx, "ingest: duplicate enclosure %d in actual results, keeping first", r.EnclosureID)
			continue
		}
		if r.Surface <= 0 || math.IsNaN(r.Surface) {
			logger.Warnf(ctx, "ingest: enclosure %d has unusable surface %v, demands default to 0", r.EnclosureID, r.Surface)
		}
		index[r.EnclosureID] = len(res.Enclosures)
		res.Enclosures = append(res.Enclosures, newEnclosure(r))
	}

	for _, b := range results.BaseByEnclosure {
		if _, dup := res.BaseInputs[b.EnclosureID]; dup {
			logger.Warnf(ctx, "ingest: duplicate enclosure %d in baseline results, keeping first", b.EnclosureID)
			continue
		}
		res.BaseInputs[b.EnclosureID] = b

		i, ok := index[b.EnclosureID]
		if !ok {
			index[b.EnclosureID] = len(res.Enclosures)
			res.Enclosures = append(res.Enclosures, domain.Enclosure{
				ID:           b.EnclosureID,
				Name:         b.EnclosureName,
				UsageProfile: b.OccupationProfileName,
				Surface:      b.Surface,
			})
			i = len(res.Enclosures) - 1
		}
		res.Enclosures[i].BaselineFields = initialBaseline(b)
	}

	return res
}

func newEnclosure(r domain.EnclosureResult) domain.Enclosure {
	e := domain.Enclosure{
		ID:                     r.EnclosureID,
		Name:                   r.EnclosureName,
		UsageProfile:           r.OccupationProfileName,
		Surface:                r.Surface,
		HeatingDemand:          r.HeatingDemand(),
		CoolingDemand:          r.CoolingDemand(),
		HeatingDiscomfortHours: r.DiscomfortHoursHeating,
		CoolingDiscomfortHours: r.DiscomfortHoursCooling,
		TotalDiscomfortHours:   r.DiscomfortHoursHeating + r.DiscomfortHoursCooling,
	}
	if lighting, ok := r.LightingDemand(); ok {
		e.LightingDemand = lighting
	}
	e.TotalDemand = e.HeatingDemand + e.CoolingDemand + e.LightingDemand
	return e
}

func initialBaseline(b domain.BaseEnclosureResult) domain.BaselineFields {
	f := domain.BaselineFields{
		BaseHeatingDemand:          b.HeatingDemand(),
		BaseCoolingDemand:          b.CoolingDemand(),
		BaseLightingDemand:         b.BaselineLightingDemand(),
		BaseHeatingDiscomfortHours: b.DiscomfortHoursHeating,
		BaseCoolingDiscomfortHours: b.DiscomfortHoursCooling,
		BaseTotalDiscomfortHours:   b.DiscomfortHoursHeating + b.DiscomfortHoursCooling,
		BaseHeatingFuelCode:        b.CombustibleCalefCode,
		BaseSEER:                   b.SEERRef,
		BaseHeatingCO2Factor:       b.CO2FactorCalef,
		BaseCoolingCO2Factor:       b.CO2FactorRef,
	}
	f.BaseTotalDemand = f.BaseHeatingDemand + f.BaseCoolingDemand + f.BaseLightingDemand
	return f
}
