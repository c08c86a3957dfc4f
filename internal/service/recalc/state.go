package recalc

// State is the pipeline position of one enclosure.
type State int

const (
	StateIdle State = iota
	StateTriggered
	StateComputingEfficiency
	StateComputingPrimaryEnergy
	StateComputingTotal
	StateComputingEmissions
)

// stages are the computing states in their fixed order.
var stages = []State{
	StateComputingEfficiency,
	StateComputingPrimaryEnergy,
	StateComputingTotal,
	StateComputingEmissions,
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTriggered:
		return "triggered"
	case StateComputingEfficiency:
		return "computing_efficiency"
	case StateComputingPrimaryEnergy:
		return "computing_primary_energy"
	case StateComputingTotal:
		return "computing_total"
	case StateComputingEmissions:
		return "computing_emissions"
	}
	return "unknown"
}
