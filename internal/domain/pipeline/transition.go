// Package pipeline contiene la lógica pura del motor de etapas: dado un arrastre
// horizontal sobre la tarjeta de un prospecto, decidir si avanza o retrocede
// exactamente una etapa dentro de la lista ordenada de su embudo.
package pipeline

import (
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
)

// DefaultThreshold desplazamiento mínimo en píxeles para disparar una transición.
const DefaultThreshold = 100

// Target es la etapa destino de una transición.
type Target struct {
	StageID   int
	StageName string
}

// TargetStage calcula la etapa destino de un arrastre.
//
// stages debe ser la lista completa de etapas del embudo, ordenada ascendente por ID.
// Si deltaX supera threshold y existe etapa siguiente, el destino es la siguiente;
// si deltaX es menor que -threshold y existe etapa anterior, el destino es la anterior.
// En cualquier otro caso no hay transición y se devuelve (nil, nil): un arrastre
// más allá de la primera o la última etapa es un no-op, no un error.
//
// Que currentStageID no aparezca en la lista significa que el prospecto referencia
// una etapa fuera de su embudo: violación de invariante, se devuelve
// domain.ErrStageNotInFunnel en vez de ignorarlo.
func TargetStage(currentStageID int, stages []entity.Stage, deltaX, threshold float64) (*Target, error) {
	idx := -1
	for i, s := range stages {
		if s.ID == currentStageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrStageNotInFunnel
	}

	switch {
	case deltaX > threshold && idx+1 < len(stages):
		next := stages[idx+1]
		return &Target{StageID: next.ID, StageName: next.Name}, nil
	case deltaX < -threshold && idx > 0:
		prev := stages[idx-1]
		return &Target{StageID: prev.ID, StageName: prev.Name}, nil
	default:
		return nil, nil
	}
}
