package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prospect representa un lead que avanza por las etapas de exactamente un embudo.
// StageID debe referenciar una etapa del mismo embudo; esa invariante se valida
// al escribir, no se asume.
type Prospect struct {
	ID            string
	BusinessID    string
	FunnelID      string
	StageID       int
	StageName     string // snapshot del nombre de la etapa para listados
	ClientID      string // opcional, ficha de cliente asociada
	Value         decimal.Decimal
	ExpectedClose *time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
