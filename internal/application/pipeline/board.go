// Package pipeline implementa el motor de transiciones del tablero Kanban:
// actualización optimista del prospecto en memoria, persistencia y rollback
// al snapshot previo si la escritura falla.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	domainpipeline "github.com/jhoicas/Embudos-api/internal/domain/pipeline"
)

// ProspectStore es la escritura mínima que necesita el motor.
type ProspectStore interface {
	UpdateStage(id string, stageID int, stageName string) error
}

// Board aplica transiciones de etapa con a lo sumo una en vuelo por prospecto.
// Una transición para un prospecto que ya tiene otra en curso se suprime
// (no se encola ni se reintenta) para evitar escrituras fuera de orden.
type Board struct {
	store ProspectStore

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewBoard construye el motor sobre el store de prospectos.
func NewBoard(store ProspectStore) *Board {
	return &Board{
		store:    store,
		inflight: make(map[string]struct{}),
	}
}

// Transition mueve el prospecto a la etapa destino.
//
// El prospecto se muta ANTES de confirmar la persistencia (actualización
// optimista); si la escritura falla se restaura el snapshot tomado antes de la
// mutación, nunca un valor re-derivado, y el error se devuelve una sola vez
// sin reintentos automáticos.
func (b *Board) Transition(p *entity.Prospect, target domainpipeline.Target) error {
	b.mu.Lock()
	if _, busy := b.inflight[p.ID]; busy {
		b.mu.Unlock()
		return domain.ErrTransitionInFlight
	}
	b.inflight[p.ID] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.inflight, p.ID)
		b.mu.Unlock()
	}()

	// Snapshot previo a la mutación optimista
	prevStageID, prevStageName := p.StageID, p.StageName

	p.StageID = target.StageID
	p.StageName = target.StageName

	if err := b.store.UpdateStage(p.ID, target.StageID, target.StageName); err != nil {
		p.StageID = prevStageID
		p.StageName = prevStageName
		return fmt.Errorf("persistir transición de etapa: %w", err)
	}
	return nil
}
