package entity

import "time"

// Funnel representa un pipeline de ventas con una lista ordenada de etapas.
type Funnel struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	Stages      []Stage // ordenadas ascendente por ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stage representa una fase nombrada dentro de un embudo. El ID es un ordinal
// denso dentro del embudo (1..n) y define el orden para buscar vecinos
// (anterior/siguiente). Las etapas son inmutables una vez creado el embudo.
type Stage struct {
	ID          int
	FunnelID    string
	Name        string
	Description string
}
