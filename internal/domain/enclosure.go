package domain

// Enclosure is a thermal zone with its actual-design figures and, through the
// embedded BaselineFields, the isolated reference-case figures.
type Enclosure struct {
	ID           int64   `json:"id"`
	Name         string  `json:"nombre"`
	UsageProfile string  `json:"perfil_uso"`
	Surface      float64 `json:"superficie"`

	HeatingDemand  float64 `json:"demanda_calef"`
	CoolingDemand  float64 `json:"demanda_ref"`
	LightingDemand float64 `json:"demanda_ilum"`
	TotalDemand    float64 `json:"demanda_total"`

	HeatingConsumption float64 `json:"consumo_calef"`
	CoolingConsumption float64 `json:"consumo_ref"`
	TotalConsumption   float64 `json:"consumo_total"`

	HeatingPrimaryEnergy float64 `json:"consumo_energia_primaria_calef"`
	CoolingPrimaryEnergy float64 `json:"consumo_energia_primaria_ref"`
	TotalPrimaryEnergy   float64 `json:"consumo_energia_primaria_total"`

	SCOP float64 `json:"scop_calef"`
	SEER float64 `json:"seer_ref"`

	HeatingCO2  float64 `json:"co2_eq_calef"`
	CoolingCO2  float64 `json:"co2_eq_ref"`
	LightingCO2 float64 `json:"co2_eq_ilum"`
	TotalCO2    float64 `json:"co2_eq_total"`

	HeatingDiscomfortHours float64 `json:"horas_disconfort_calef"`
	CoolingDiscomfortHours float64 `json:"horas_disconfort_ref"`
	TotalDiscomfortHours   float64 `json:"horas_disconfort_total"`

	HeatingPerformanceCode  string `json:"rendimiento_calef"`
	HeatingDistributionCode string `json:"distribucion_calef"`
	HeatingControlCode      string `json:"control_calef"`
	HeatingFuelCode         string `json:"combustible_calef"`
	CoolingPerformanceCode  string `json:"rendimiento_ref"`
	CoolingDistributionCode string `json:"distribucion_ref"`
	CoolingControlCode      string `json:"control_ref"`
	CoolingFuelCode         string `json:"combustible_ref"`

	BaselineFields
}

// BaselineFields are written only by the baseline calculation.
type BaselineFields struct {
	BaseHeatingDemand  float64 `json:"caso_base_demanda_calef"`
	BaseCoolingDemand  float64 `json:"caso_base_demanda_ref"`
	BaseLightingDemand float64 `json:"caso_base_demanda_ilum"`
	BaseTotalDemand    float64 `json:"caso_base_demanda_total"`

	BaseHeatingConsumption float64 `json:"caso_base_consumo_calef"`
	BaseCoolingConsumption float64 `json:"caso_base_consumo_ref"`
	BaseTotalConsumption   float64 `json:"caso_base_consumo_total"`

	BaseHeatingCO2  float64 `json:"caso_base_co2_eq_calef"`
	BaseCoolingCO2  float64 `json:"caso_base_co2_eq_ref"`
	BaseLightingCO2 float64 `json:"caso_base_co2_eq_ilum"`
	BaseTotalCO2    float64 `json:"caso_base_co2_eq_total"`

	BaseHeatingDiscomfortHours float64 `json:"caso_base_horas_disconfort_calef"`
	BaseCoolingDiscomfortHours float64 `json:"caso_base_horas_disconfort_ref"`
	BaseTotalDiscomfortHours   float64 `json:"caso_base_horas_disconfort_total"`

	BaseHeatingFuelCode  string  `json:"caso_base_combustible_calef"`
	BaseFuelCode         string  `json:"caso_base_combustible"`
	BaseSEER             float64 `json:"caso_base_seer_ref"`
	BaseHeatingCO2Factor float64 `json:"caso_base_co2_factor_calef"`
	BaseCoolingCO2Factor float64 `json:"caso_base_co2_factor_ref"`
}

// Code returns the code persisted on the record for axis a.
func (e *Enclosure) Code(a Axis) string {
	if p := e.codeField(a); p != nil {
		return *p
	}
	return ""
}

// SetCode writes the code persisted on the record for axis a.
func (e *Enclosure) SetCode(a Axis, code string) {
	if p := e.codeField(a); p != nil {
		*p = code
	}
}

func (e *Enclosure) codeField(a Axis) *string {
	switch a {
	case AxisHeatingFuel:
		return &e.HeatingFuelCode
	case AxisHeatingPerformance:
		return &e.HeatingPerformanceCode
	case AxisHeatingDistribution:
		return &e.HeatingDistributionCode
	case AxisHeatingControl:
		return &e.HeatingControlCode
	case AxisCoolingFuel:
		return &e.CoolingFuelCode
	case AxisCoolingPerformance:
		return &e.CoolingPerformanceCode
	case AxisCoolingDistribution:
		return &e.CoolingDistributionCode
	case AxisCoolingControl:
		return &e.CoolingControlCode
	}
	return nil
}

// Demand returns the demand of branch b.
func (e *Enclosure) Demand(b Branch) float64 {
	if b == BranchCooling {
		return e.CoolingDemand
	}
	return e.HeatingDemand
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
