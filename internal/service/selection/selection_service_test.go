package selection

import (
	"testing"

	"github.com/ougirez/certenergy/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSetReportsChanges(t *testing.T) {
	s := NewStore()

	assert.True(t, s.Set(1, domain.AxisHeatingPerformance, "hp"))
	assert.False(t, s.Set(1, domain.AxisHeatingPerformance, "hp"))
	assert.True(t, s.Set(1, domain.AxisHeatingPerformance, "boiler"))
	assert.False(t, s.Set(1, domain.Axis("bogus"), "x"))

	code, ok := s.Get(1, domain.AxisHeatingPerformance)
	assert.True(t, ok)
	assert.Equal(t, "boiler", code)

	assert.True(t, s.Set(1, domain.AxisHeatingPerformance, ""))
	_, ok = s.Get(1, domain.AxisHeatingPerformance)
	assert.False(t, ok)
}

func TestAxesAreIndependent(t *testing.T) {
	s := NewStore()
	s.Set(1, domain.AxisHeatingFuel, "gas")
	s.Set(1, domain.AxisCoolingFuel, "elec")
	s.Set(2, domain.AxisHeatingFuel, "oil")

	assert.Equal(t, map[domain.Axis]string{
		domain.AxisHeatingFuel: "gas",
		domain.AxisCoolingFuel: "elec",
	}, s.ForEnclosure(1))
}

func TestLoadReplacesContent(t *testing.T) {
	s := NewStore()
	s.Set(7, domain.AxisCoolingControl, "stale")

	s.Load([]*domain.SelectionRecord{
		{EnclosureID: 1, Axis: domain.AxisHeatingControl, Code: "c1"},
		{EnclosureID: 2, Axis: domain.Axis("bogus"), Code: "x"},
	}, "gas")

	_, ok := s.Get(7, domain.AxisCoolingControl)
	assert.False(t, ok)
	code, _ := s.Get(1, domain.AxisHeatingControl)
	assert.Equal(t, "c1", code)
	assert.Equal(t, "gas", s.BaselineFuel())
}
