package repository

import "github.com/jhoicas/Embudos-api/internal/domain/entity"

// ProspectRepository define el puerto de persistencia para Prospect.
type ProspectRepository interface {
	Create(prospect *entity.Prospect) error
	GetByID(id string) (*entity.Prospect, error)
	Update(prospect *entity.Prospect) error
	// UpdateStage persiste solo el cambio de etapa (escritura del motor de pipeline).
	UpdateStage(id string, stageID int, stageName string) error
	ListByFunnel(funnelID string, limit, offset int) ([]*entity.Prospect, error)
}
