package report

import (
	"fmt"
	"math"

	"github.com/ougirez/certenergy/internal/domain"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/service/dataset"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDemand      Kind = "demand"
	KindConsumption Kind = "consumption"
	KindEmissions   Kind = "emissions"
	KindDiscomfort  Kind = "discomfort"
	KindBase        Kind = "base"
)

const precision = 2

// Row is one enclosure line of a report. Values are keyed by column name.
type Row struct {
	EnclosureID int64              `json:"enclosure_id"`
	Name        string             `json:"nombre"`
	Surface     float64            `json:"superficie"`
	Values      map[string]float64 `json:"values"`
}

type Report struct {
	Kind            Kind               `json:"kind"`
	SnapshotVersion uint64             `json:"snapshot_version"`
	Columns         []string           `json:"columns"`
	Rows            []Row              `json:"rows"`
	Totals          map[string]float64 `json:"totals"`
}

type column struct {
	name string
	get  func(e *domain.Enclosure) float64

	// perArea columns are area-weighted in the totals; others are summed.
	perArea bool
}

var layouts = map[Kind][]column{
	KindDemand: {
		{"demanda_calef", func(e *domain.Enclosure) float64 { return e.HeatingDemand }, true},
		{"demanda_ref", func(e *domain.Enclosure) float64 { return e.CoolingDemand }, true},
		{"demanda_ilum", func(e *domain.Enclosure) float64 { return e.LightingDemand }, true},
		{"demanda_total", func(e *domain.Enclosure) float64 { return e.TotalDemand }, true},
	},
	KindConsumption: {
		{"scop_calef", func(e *domain.Enclosure) float64 { return e.SCOP }, true},
		{"seer_ref", func(e *domain.Enclosure) float64 { return e.SEER }, true},
		{"consumo_calef", func(e *domain.Enclosure) float64 { return e.HeatingConsumption }, true},
		{"consumo_ref", func(e *domain.Enclosure) float64 { return e.CoolingConsumption }, true},
		{"consumo_total", func(e *domain.Enclosure) float64 { return e.TotalConsumption }, true},
		{"consumo_energia_primaria_calef", func(e *domain.Enclosure) float64 { return e.HeatingPrimaryEnergy }, true},
		{"consumo_energia_primaria_ref", func(e *domain.Enclosure) float64 { return e.CoolingPrimaryEnergy }, true},
		{"consumo_energia_primaria_total", func(e *domain.Enclosure) float64 { return e.TotalPrimaryEnergy }, true},
	},
	KindEmissions: {
		{"co2_eq_calef", func(e *domain.Enclosure) float64 { return e.HeatingCO2 }, false},
		{"co2_eq_ref", func(e *domain.Enclosure) float64 { return e.CoolingCO2 }, false},
		{"co2_eq_ilum", func(e *domain.Enclosure) float64 { return e.LightingCO2 }, false},
		{"co2_eq_total", func(e *domain.Enclosure) float64 { return e.TotalCO2 }, false},
	},
	KindDiscomfort: {
		{"horas_disconfort_calef", func(e *domain.Enclosure) float64 { return e.HeatingDiscomfortHours }, false},
		{"horas_disconfort_ref", func(e *domain.Enclosure) float64 { return e.CoolingDiscomfortHours }, false},
		{"horas_disconfort_total", func(e *domain.Enclosure) float64 { return e.TotalDiscomfortHours }, false},
	},
	KindBase: {
		{"caso_base_demanda_calef", func(e *domain.Enclosure) float64 { return e.BaseHeatingDemand }, true},
		{"caso_base_demanda_ref", func(e *domain.Enclosure) float64 { return e.BaseCoolingDemand }, true},
		{"caso_base_demanda_ilum", func(e *domain.Enclosure) float64 { return e.BaseLightingDemand }, true},
		{"caso_base_consumo_calef", func(e *domain.Enclosure) float64 { return e.BaseHeatingConsumption }, true},
		{"caso_base_consumo_ref", func(e *domain.Enclosure) float64 { return e.BaseCoolingConsumption }, true},
		{"caso_base_consumo_total", func(e *domain.Enclosure) float64 { return e.BaseTotalConsumption }, true},
		{"caso_base_co2_eq_total", func(e *domain.Enclosure) float64 { return e.BaseTotalCO2 }, false},
		{"caso_base_horas_disconfort_total", func(e *domain.Enclosure) float64 { return e.BaseTotalDiscomfortHours }, false},
	},
}

// Build renders report kind from one snapshot. Per-area columns are totalled
// as an area-weighted mean, absolute columns as a plain sum.
func Build(kind Kind, snap *dataset.Snapshot) (*Report, error) {
	cols, ok := layouts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownReport, kind)
	}

	r := &Report{
		Kind:            kind,
		SnapshotVersion: snap.Version,
		Columns:         make([]string, len(cols)),
		Rows:            make([]Row, 0, snap.Len()),
		Totals:          make(map[string]float64, len(cols)),
	}
	for i, c := range cols {
		r.Columns[i] = c.name
	}

	sums := make([]decimal.Decimal, len(cols))
	area := decimal.Zero
	for _, e := range snap.Enclosures() {
		e := e
		row := Row{
			EnclosureID: e.ID,
			Name:        e.Name,
			Surface:     round(decimal.NewFromFloat(finite(e.Surface))),
			Values:      make(map[string]float64, len(cols)),
		}

		surface := decimal.Zero
		if finite(e.Surface) > 0 {
			surface = decimal.NewFromFloat(e.Surface)
		}
		area = area.Add(surface)

		for i, c := range cols {
			v := decimal.NewFromFloat(finite(c.get(&e)))
			row.Values[c.name] = round(v)
			if c.perArea {
				v = v.Mul(surface)
			}
			sums[i] = sums[i].Add(v)
		}
		r.Rows = append(r.Rows, row)
	}

	for i, c := range cols {
		total := sums[i]
		if c.perArea {
			if area.IsZero() {
				total = decimal.Zero
			} else {
				total = total.Div(area)
			}
		}
		r.Totals[c.name] = round(total)
	}

	return r, nil
}

func round(d decimal.Decimal) float64 {
	return d.Round(precision).InexactFloat64()
}

// finite guards decimal.NewFromFloat, which panics on NaN and infinities.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
