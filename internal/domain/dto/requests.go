package dto

import (
	"github.com/ougirez/certenergy/internal/domain"
)

type ProjectPath struct {
	ProjectID string `param:"project_id" validate:"required,uuid"`
}

type SelectionRequest struct {
	ProjectID   string `param:"project_id" validate:"required,uuid"`
	EnclosureID int64  `param:"enclosure_id" validate:"required"`
	Axis        string `json:"axis" validate:"required,oneof=heating_fuel heating_performance heating_distribution heating_control cooling_fuel cooling_performance cooling_distribution cooling_control"`
	Code        string `json:"code" validate:"max=64"`
}

type BaselineFuelRequest struct {
	ProjectID string `param:"project_id" validate:"required,uuid"`
	FuelCode  string `json:"fuel_code" validate:"required,max=64"`
}

type IngestRequest struct {
	ProjectID string `param:"project_id" validate:"required,uuid"`
	domain.SimulationResults
}

type ReportRequest struct {
	ProjectID string `param:"project_id" validate:"required,uuid"`
	Kind      string `param:"kind" validate:"required,oneof=demand consumption emissions discomfort base"`
}

type SnapshotResponse struct {
	SnapshotID  string             `json:"snapshot_id"`
	Version     uint64             `json:"version"`
	PublishedAt string             `json:"published_at"`
	Enclosures  []domain.Enclosure `json:"enclosures"`
}

type LoginAdminRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type LoginAdminResponse struct {
	AuthToken string `json:"auth_token"`
}
