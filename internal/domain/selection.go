package domain

import "time"

type Branch string

const (
	BranchHeating Branch = "heating"
	BranchCooling Branch = "cooling"
)

var Branches = []Branch{BranchHeating, BranchCooling}

// AxisKind is the catalog a selection indexes into, independent of branch.
type AxisKind string

const (
	AxisKindFuel         AxisKind = "fuel"
	AxisKindPerformance  AxisKind = "performance"
	AxisKindDistribution AxisKind = "distribution"
	AxisKindControl      AxisKind = "control"
)

// Axis is one of the eight independent selection axes.
type Axis string

const (
	AxisHeatingFuel         Axis = "heating_fuel"
	AxisHeatingPerformance  Axis = "heating_performance"
	AxisHeatingDistribution Axis = "heating_distribution"
	AxisHeatingControl      Axis = "heating_control"
	AxisCoolingFuel         Axis = "cooling_fuel"
	AxisCoolingPerformance  Axis = "cooling_performance"
	AxisCoolingDistribution Axis = "cooling_distribution"
	AxisCoolingControl      Axis = "cooling_control"
)

var Axes = []Axis{
	AxisHeatingFuel, AxisHeatingPerformance, AxisHeatingDistribution, AxisHeatingControl,
	AxisCoolingFuel, AxisCoolingPerformance, AxisCoolingDistribution, AxisCoolingControl,
}

func AxisFor(b Branch, k AxisKind) Axis {
	return Axis(string(b) + "_" + string(k))
}

func (a Axis) Valid() bool {
	for _, axis := range Axes {
		if a == axis {
			return true
		}
	}
	return false
}

func (a Axis) Branch() Branch {
	switch a {
	case AxisCoolingFuel, AxisCoolingPerformance, AxisCoolingDistribution, AxisCoolingControl:
		return BranchCooling
	default:
		return BranchHeating
	}
}

func (a Axis) Kind() AxisKind {
	switch a {
	case AxisHeatingFuel, AxisCoolingFuel:
		return AxisKindFuel
	case AxisHeatingPerformance, AxisCoolingPerformance:
		return AxisKindPerformance
	case AxisHeatingDistribution, AxisCoolingDistribution:
		return AxisKindDistribution
	default:
		return AxisKindControl
	}
}

// SelectionRecord is a persisted selection of one axis of one enclosure.
type SelectionRecord struct {
	EnclosureID int64     `db:"enclosure_id" json:"enclosure_id"`
	Axis        Axis      `db:"axis" json:"axis"`
	Code        string    `db:"code" json:"code"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type BaselineFuelRecord struct {
	FuelCode  string    `db:"fuel_code"`
	UpdatedAt time.Time `db:"updated_at"`
}
