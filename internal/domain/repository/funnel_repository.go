package repository

import "github.com/jhoicas/Embudos-api/internal/domain/entity"

// FunnelRepository define el puerto de persistencia para Funnel y sus etapas.
type FunnelRepository interface {
	// Create persiste el embudo junto con sus etapas.
	Create(funnel *entity.Funnel) error
	// GetByID devuelve el embudo con sus etapas ordenadas ascendente por ID.
	GetByID(id string) (*entity.Funnel, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Funnel, error)
	// ListStages devuelve las etapas de un embudo ordenadas ascendente por ID.
	ListStages(funnelID string) ([]entity.Stage, error)
}
