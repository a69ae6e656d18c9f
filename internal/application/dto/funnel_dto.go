package dto

import "time"

// CreateFunnelRequest entrada para crear un embudo con sus etapas ordenadas.
// Las etapas reciben ordinales densos 1..n según el orden de la lista.
type CreateFunnelRequest struct {
	Name        string               `json:"name" validate:"required,max=200"`
	Description string               `json:"description" validate:"omitempty,max=500"`
	Stages      []CreateStageRequest `json:"stages" validate:"required,min=1,dive"`
}

// CreateStageRequest una etapa dentro de la creación de un embudo.
type CreateStageRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=300"`
}

// StageResponse salida de una etapa.
type StageResponse struct {
	ID          int    `json:"id"`
	FunnelID    string `json:"funnel_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FunnelResponse salida de un embudo con sus etapas ordenadas.
type FunnelResponse struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"business_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Stages      []StageResponse `json:"stages,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FunnelListResponse listado paginado de embudos.
type FunnelListResponse struct {
	Items []FunnelResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
