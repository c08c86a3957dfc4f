package recalc

import (
	"math"
	"testing"

	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/service/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogs() *domain.Catalogs {
	return domain.NewCatalogs(
		[]domain.EnergySystemOption{
			{Code: "gas", Value: 1, FEP: 1.2, CO2Eq: 0.25},
			{Code: "elec", Value: 2.5, FEP: 2.0, CO2Eq: 0.33},
		},
		[]domain.EnergySystemOption{{Code: "boiler", Value: 2}, {Code: "hp", Value: 3.5}},
		[]domain.EnergySystemOption{{Code: "dist", Value: 0.9}},
		[]domain.EnergySystemOption{{Code: "ctrl", Value: 0.95}},
		[]domain.EnergySystemOption{{Code: "chiller", Value: 3}},
	)
}

func scenarioEnclosure() domain.Enclosure {
	return domain.Enclosure{
		ID:                      1,
		Surface:                 20,
		HeatingDemand:           10,
		HeatingPerformanceCode:  "boiler",
		HeatingDistributionCode: "dist",
		HeatingControlCode:      "ctrl",
	}
}

func TestScenarioA(t *testing.T) {
	e := scenarioEnclosure()
	cat := testCatalogs()

	scop := Efficiency(&e, domain.BranchHeating, nil, cat)
	assert.InDelta(t, 1.71, scop, 1e-9)
	assert.Equal(t, scop, e.SCOP)

	primary := PrimaryEnergy(&e, domain.BranchHeating, nil, cat)
	assert.InDelta(t, 5.848, primary, 1e-3)
	assert.InDelta(t, 10/1.71, e.HeatingPrimaryEnergy, 1e-12)
}

func TestScenarioBUnresolvedDistribution(t *testing.T) {
	e := scenarioEnclosure()
	e.HeatingDistributionCode = "missing"
	cat := testCatalogs()

	assert.Zero(t, Efficiency(&e, domain.BranchHeating, nil, cat))
	assert.Zero(t, PrimaryEnergy(&e, domain.BranchHeating, nil, cat))
	assert.Zero(t, e.HeatingConsumption)
}

func TestScenarioCBaselineIgnoresEfficiency(t *testing.T) {
	in := domain.BaseEnclosureResult{EnclosureResult: domain.EnclosureResult{EnclosureID: 1, Surface: 20, PositiveSum: 200}}
	fuel := domain.EnergySystemOption{Code: "gas", FEP: 1.2, CO2Eq: 0.25}

	b := Baseline(in, fuel)

	assert.Equal(t, 10.0, b.BaseHeatingDemand)
	assert.InDelta(t, 12, b.BaseHeatingConsumption, 1e-12)
	assert.Equal(t, domain.DefaultBaselineLightingDemand, b.BaseLightingDemand)
	assert.InDelta(t, 12*1.2*20, b.BaseHeatingCO2, 1e-9)
	assert.InDelta(t, 31.3*20*0.25*1.2, b.BaseLightingCO2, 1e-9)
	assert.InDelta(t, b.BaseHeatingCO2+b.BaseCoolingCO2+b.BaseLightingCO2, b.BaseTotalCO2, 1e-12)
	assert.Equal(t, "gas", b.BaseFuelCode)
}

func TestBaselineUsesSuppliedLighting(t *testing.T) {
	lighting := 100.0
	in := domain.BaseEnclosureResult{EnclosureResult: domain.EnclosureResult{Surface: 10, LightingSum: &lighting}}

	b := Baseline(in, domain.EnergySystemOption{})
	assert.Equal(t, 10.0, b.BaseLightingDemand)
	assert.Zero(t, b.BaseTotalCO2)
}

func TestEfficiencyIsProductOrZero(t *testing.T) {
	cat := testCatalogs()
	cases := []struct {
		name             string
		perf, dist, ctrl string
		want             float64
	}{
		{"all resolved", "hp", "dist", "ctrl", 3.5 * 0.9 * 0.95},
		{"no performance", "", "dist", "ctrl", 0},
		{"no distribution", "hp", "", "ctrl", 0},
		{"no control", "hp", "dist", "nope", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := domain.Enclosure{HeatingPerformanceCode: tc.perf, HeatingDistributionCode: tc.dist, HeatingControlCode: tc.ctrl}
			assert.InDelta(t, tc.want, Efficiency(&e, domain.BranchHeating, nil, cat), 1e-12)
		})
	}
}

func TestResolveCodePrefersRecord(t *testing.T) {
	sel := selection.NewStore()
	sel.Set(1, domain.AxisCoolingPerformance, "chiller")
	sel.Set(1, domain.AxisCoolingDistribution, "other")
	sel.Set(1, domain.AxisCoolingControl, "ctrl")

	e := domain.Enclosure{ID: 1, CoolingDistributionCode: "dist"}
	seer := Efficiency(&e, domain.BranchCooling, sel, testCatalogs())

	assert.InDelta(t, 3*0.9*0.95, seer, 1e-12)
	assert.Equal(t, seer, e.SEER)
	assert.Zero(t, e.SCOP)
}

func TestPrimaryEnergyGuards(t *testing.T) {
	cat := testCatalogs()

	e := domain.Enclosure{HeatingDemand: 0, SCOP: 2}
	assert.Zero(t, PrimaryEnergy(&e, domain.BranchHeating, nil, cat))

	e = domain.Enclosure{HeatingDemand: 10, SCOP: -1}
	assert.Zero(t, PrimaryEnergy(&e, domain.BranchHeating, nil, cat))

	e = domain.Enclosure{CoolingDemand: 9, SEER: 3, CoolingFuelCode: "elec"}
	assert.InDelta(t, 9.0/3*2.5, PrimaryEnergy(&e, domain.BranchCooling, nil, cat), 1e-12)
	assert.InDelta(t, 3, e.CoolingConsumption, 1e-12)
}

func TestTotalsSanitizeNaN(t *testing.T) {
	e := domain.Enclosure{
		HeatingPrimaryEnergy: math.NaN(),
		CoolingPrimaryEnergy: 4,
		LightingDemand:       3,
		HeatingDemand:        5,
		CoolingDemand:        math.NaN(),
	}

	assert.Equal(t, 7.0, Totals(&e))
	assert.Equal(t, 7.0, e.TotalPrimaryEnergy)
	assert.Equal(t, 8.0, e.TotalDemand)
}

func TestTotalsPassesLightingThroughUnconverted(t *testing.T) {
	e := domain.Enclosure{HeatingPrimaryEnergy: 2, CoolingPrimaryEnergy: 1, LightingDemand: 10, SCOP: 4}
	assert.Equal(t, 13.0, Totals(&e))
}

func TestEmissions(t *testing.T) {
	e := domain.Enclosure{
		Surface:              20,
		HeatingPrimaryEnergy: 5,
		CoolingPrimaryEnergy: 2,
		LightingDemand:       3,
		HeatingFuelCode:      "gas",
	}

	total := Emissions(&e, nil, testCatalogs())

	assert.InDelta(t, 5*0.25*20, e.HeatingCO2, 1e-12)
	assert.Zero(t, e.CoolingCO2)
	assert.Zero(t, e.LightingCO2)
	assert.Equal(t, e.HeatingCO2+e.CoolingCO2+e.LightingCO2, total)
	assert.Equal(t, total, e.TotalCO2)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	sel := selection.NewStore()
	sel.Set(1, domain.AxisHeatingFuel, "gas")
	cat := testCatalogs()

	first := Recompute(scenarioEnclosure(), sel, cat)
	second := Recompute(first, sel, cat)

	require.Equal(t, first, second)
	assert.Equal(t, "gas", first.HeatingFuelCode)
	assert.InDelta(t, 10/1.71*0.25*20, first.TotalCO2, 1e-9)
}

func TestRecomputeWithoutCatalogKeepsPrevious(t *testing.T) {
	e := scenarioEnclosure()
	e.SCOP = 1.5
	e.HeatingPrimaryEnergy = 4

	out := Recompute(e, selection.NewStore(), nil)

	assert.Equal(t, 1.5, out.SCOP)
	assert.Equal(t, 4.0, out.TotalPrimaryEnergy)
}
