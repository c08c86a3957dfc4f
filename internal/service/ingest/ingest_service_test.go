package ingest

import (
	"context"
	"testing"

	"github.com/ougirez/certenergy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestFromResultsBuildsDemands(t *testing.T) {
	results := domain.SimulationResults{
		ResultByEnclosure: []domain.EnclosureResult{
			{EnclosureID: 1, EnclosureName: "Office", OccupationProfileName: "office", Surface: 20, PositiveSum: 200, NegativeSum: -80, LightingSum: ptr(40)},
			{EnclosureID: 2, EnclosureName: "Broken", Surface: 0, PositiveSum: 50},
			{EnclosureID: 1, EnclosureName: "Dup"},
		},
		BaseByEnclosure: []domain.BaseEnclosureResult{
			{
				EnclosureResult: domain.EnclosureResult{
					EnclosureID: 1, Surface: 20, PositiveSum: 300, NegativeSum: -20,
					DiscomfortHoursHeating: 12, DiscomfortHoursCooling: 3,
				},
				CombustibleCalefCode: "gas",
				SEERRef:              2.6,
			},
			{EnclosureResult: domain.EnclosureResult{EnclosureID: 3, EnclosureName: "Base only", Surface: 10, PositiveSum: 10}},
		},
	}

	res := FromResults(context.Background(), results)

	require.Len(t, res.Enclosures, 3)
	office := res.Enclosures[0]
	assert.Equal(t, "Office", office.Name)
	assert.Equal(t, 10.0, office.HeatingDemand)
	assert.Equal(t, 4.0, office.CoolingDemand)
	assert.Equal(t, 2.0, office.LightingDemand)
	assert.Equal(t, 16.0, office.TotalDemand)
	assert.Equal(t, 15.0, office.BaseHeatingDemand)
	assert.Equal(t, 1.0, office.BaseCoolingDemand)
	assert.Equal(t, 15.0, office.BaseTotalDiscomfortHours)
	assert.Equal(t, "gas", office.BaseHeatingFuelCode)

	assert.Zero(t, res.Enclosures[1].HeatingDemand)

	baseOnly := res.Enclosures[2]
	assert.Equal(t, int64(3), baseOnly.ID)
	assert.Zero(t, baseOnly.HeatingDemand)
	assert.Equal(t, 1.0, baseOnly.BaseHeatingDemand)

	assert.Len(t, res.BaseInputs, 2)
}

func TestFromResultsFillsBaselineLighting(t *testing.T) {
	results := domain.SimulationResults{
		BaseByEnclosure: []domain.BaseEnclosureResult{
			{EnclosureResult: domain.EnclosureResult{EnclosureID: 1, Surface: 20, PositiveSum: 200, NegativeSum: -40}},
			{EnclosureResult: domain.EnclosureResult{EnclosureID: 2, Surface: 10, PositiveSum: 10, LightingSum: ptr(50)}},
		},
	}

	res := FromResults(context.Background(), results)

	require.Len(t, res.Enclosures, 2)
	assert.Equal(t, domain.DefaultBaselineLightingDemand, res.Enclosures[0].BaseLightingDemand)
	assert.InDelta(t, 10+2+domain.DefaultBaselineLightingDemand, res.Enclosures[0].BaseTotalDemand, 1e-12)
	assert.Equal(t, 5.0, res.Enclosures[1].BaseLightingDemand)
	assert.Equal(t, 1.0+5.0, res.Enclosures[1].BaseTotalDemand)
}
