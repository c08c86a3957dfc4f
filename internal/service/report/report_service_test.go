package report

import (
	"errors"
	"math"
	"testing"

	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/service/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() *dataset.Snapshot {
	d := dataset.New()
	return d.Publish(dataset.NewSnapshot([]domain.Enclosure{
		{ID: 1, Name: "A", Surface: 10, HeatingDemand: 10, TotalDemand: 10, HeatingCO2: 1.005, TotalCO2: 1.005},
		{ID: 2, Name: "B", Surface: 30, HeatingDemand: 20, TotalDemand: 20, HeatingCO2: 2, TotalCO2: 2},
	}, nil))
}

func TestDemandReportIsAreaWeighted(t *testing.T) {
	r, err := Build(KindDemand, snapshot())
	require.NoError(t, err)

	require.Len(t, r.Rows, 2)
	assert.Equal(t, uint64(1), r.SnapshotVersion)
	assert.Equal(t, 10.0, r.Rows[0].Values["demanda_calef"])
	assert.Equal(t, 17.5, r.Totals["demanda_calef"])
	assert.Equal(t, []string{"demanda_calef", "demanda_ref", "demanda_ilum", "demanda_total"}, r.Columns)
}

func TestEmissionsReportSumsAndRounds(t *testing.T) {
	r, err := Build(KindEmissions, snapshot())
	require.NoError(t, err)

	assert.Equal(t, 1.01, r.Rows[0].Values["co2_eq_calef"])
	assert.Equal(t, 3.01, r.Totals["co2_eq_total"])
}

func TestReportToleratesNonFiniteValues(t *testing.T) {
	d := dataset.New()
	snap := d.Publish(dataset.NewSnapshot([]domain.Enclosure{{ID: 1, Surface: 0, SCOP: math.NaN(), SEER: math.Inf(1)}}, nil))

	r, err := Build(KindConsumption, snap)
	require.NoError(t, err)
	assert.Zero(t, r.Rows[0].Values["scop_calef"])
	assert.Zero(t, r.Totals["seer_ref"])
}

func TestUnknownReport(t *testing.T) {
	_, err := Build(Kind("energy_label"), snapshot())
	assert.True(t, errors.Is(err, constants.ErrUnknownReport))
}
