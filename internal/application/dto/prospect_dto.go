package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProspectRequest entrada para crear un prospecto en un embudo.
// Si StageID es cero entra en la primera etapa del embudo.
type CreateProspectRequest struct {
	FunnelID      string          `json:"funnel_id" validate:"required,uuid"`
	StageID       int             `json:"stage_id" validate:"omitempty,min=1"`
	ClientID      string          `json:"client_id" validate:"omitempty,uuid"`
	Value         decimal.Decimal `json:"value"`
	ExpectedClose *time.Time      `json:"expected_close,omitempty"`
	Notes         string          `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateProspectRequest edición manual de campos (no mueve de etapa).
type UpdateProspectRequest struct {
	ClientID      string          `json:"client_id" validate:"omitempty,uuid"`
	Value         decimal.Decimal `json:"value"`
	ExpectedClose *time.Time      `json:"expected_close,omitempty"`
	Notes         string          `json:"notes" validate:"omitempty,max=2000"`
}

// MoveStageRequest entrada del PUT de etapa: destino explícito.
type MoveStageRequest struct {
	StageID   int    `json:"stage" validate:"required,min=1"`
	StageName string `json:"stage_name" validate:"omitempty,max=100"`
}

// DragRequest entrada del gesto de arrastre sobre la tarjeta.
// Threshold cero usa el umbral por defecto (100 px).
type DragRequest struct {
	DeltaX    float64 `json:"delta_x"`
	Threshold float64 `json:"threshold" validate:"omitempty,min=0"`
}

// DragResponse resultado del arrastre: moved=false cuando el desplazamiento
// no supera el umbral o el prospecto ya está en una etapa límite.
type DragResponse struct {
	Moved     bool   `json:"moved"`
	StageID   int    `json:"stage_id"`
	StageName string `json:"stage_name"`
}

// ProspectResponse salida de un prospecto.
type ProspectResponse struct {
	ID            string          `json:"id"`
	BusinessID    string          `json:"business_id"`
	FunnelID      string          `json:"funnel_id"`
	StageID       int             `json:"stage_id"`
	StageName     string          `json:"stage_name"`
	ClientID      string          `json:"client_id,omitempty"`
	Value         decimal.Decimal `json:"value"`
	ExpectedClose *time.Time      `json:"expected_close,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProspectListResponse listado paginado de prospectos.
type ProspectListResponse struct {
	Items []ProspectResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
