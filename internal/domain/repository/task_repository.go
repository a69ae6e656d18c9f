package repository

import "github.com/jhoicas/Embudos-api/internal/domain/entity"

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Create(task *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	Update(task *entity.Task) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Task, error)
}
