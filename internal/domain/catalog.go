package domain

// CatalogKind names one of the reference option lists served by the configuration store.
type CatalogKind string

const (
	CatalogFuel               CatalogKind = "combustibles"
	CatalogHeatingPerformance CatalogKind = "rendimiento_calef"
	CatalogDistribution       CatalogKind = "distribucion_hvac"
	CatalogControl            CatalogKind = "control_hvac"
	CatalogCoolingPerformance CatalogKind = "rendimiento_ref"
)

// EnergySystemOption is one catalog entry. The meaning of Value depends on the
// catalog it belongs to: a fuel factor in the fuel catalog, a performance
// coefficient everywhere else.
type EnergySystemOption struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	FEP         float64 `json:"fep"`
	CO2Eq       float64 `json:"co2_eq"`
}

type options []EnergySystemOption

func (o options) find(code string) (EnergySystemOption, bool) {
	if code == "" {
		return EnergySystemOption{}, false
	}
	for _, opt := range o {
		if opt.Code == code {
			return opt, true
		}
	}
	return EnergySystemOption{}, false
}

// FuelCatalog holds combustible options. Its Value is a fuel factor.
type FuelCatalog struct {
	Options []EnergySystemOption `json:"options"`
}

func (c FuelCatalog) Lookup(code string) (EnergySystemOption, bool) {
	return options(c.Options).find(code)
}

// Factor is the fuel factor of code, 1 when the code is empty or unknown.
func (c FuelCatalog) Factor(code string) float64 {
	opt, ok := c.Lookup(code)
	if !ok {
		return 1
	}
	return opt.Value
}

// EmissionFactor is the CO2-eq factor of code, 0 when the code is empty or unknown.
func (c FuelCatalog) EmissionFactor(code string) float64 {
	opt, ok := c.Lookup(code)
	if !ok {
		return 0
	}
	return opt.CO2Eq
}

// CoefficientCatalog holds performance, distribution or control options. Its
// Value is a dimensionless efficiency coefficient.
type CoefficientCatalog struct {
	Kind    CatalogKind          `json:"kind"`
	Options []EnergySystemOption `json:"options"`
}

func (c CoefficientCatalog) Lookup(code string) (EnergySystemOption, bool) {
	return options(c.Options).find(code)
}

// Coefficient is the coefficient of code, 0 when the code is empty or unknown.
func (c CoefficientCatalog) Coefficient(code string) float64 {
	opt, ok := c.Lookup(code)
	if !ok {
		return 0
	}
	return opt.Value
}

// Catalogs is the full set of energy-system catalogs. Distribution and control
// are shared by both branches.
type Catalogs struct {
	Fuel               FuelCatalog        `json:"combustibles"`
	HeatingPerformance CoefficientCatalog `json:"rendimiento_calef"`
	Distribution       CoefficientCatalog `json:"distribucion_hvac"`
	Control            CoefficientCatalog `json:"control_hvac"`
	CoolingPerformance CoefficientCatalog `json:"rendimiento_ref"`
}

func NewCatalogs(fuel, heatingPerformance, distribution, control, coolingPerformance []EnergySystemOption) *Catalogs {
	return &Catalogs{
		Fuel:               FuelCatalog{Options: nonNil(fuel)},
		HeatingPerformance: CoefficientCatalog{Kind: CatalogHeatingPerformance, Options: nonNil(heatingPerformance)},
		Distribution:       CoefficientCatalog{Kind: CatalogDistribution, Options: nonNil(distribution)},
		Control:            CoefficientCatalog{Kind: CatalogControl, Options: nonNil(control)},
		CoolingPerformance: CoefficientCatalog{Kind: CatalogCoolingPerformance, Options: nonNil(coolingPerformance)},
	}
}

// Performance returns the performance catalog of branch b.
func (c *Catalogs) Performance(b Branch) CoefficientCatalog {
	if b == BranchCooling {
		return c.CoolingPerformance
	}
	return c.HeatingPerformance
}

func nonNil(o []EnergySystemOption) []EnergySystemOption {
	if o == nil {
		return []EnergySystemOption{}
	}
	return o
}
