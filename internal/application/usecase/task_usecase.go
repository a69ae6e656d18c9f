package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Embudos-api/internal/application/dto"
	"github.com/jhoicas/Embudos-api/internal/domain"
	"github.com/jhoicas/Embudos-api/internal/domain/entity"
	"github.com/jhoicas/Embudos-api/internal/domain/repository"
)

// TaskUseCase gestiona tareas de seguimiento.
type TaskUseCase struct {
	repo repository.TaskRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo}
}

// Create crea una tarea en estado pending.
func (uc *TaskUseCase) Create(businessID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	task := &entity.Task{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		AssigneeID:  in.AssigneeID,
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.TaskStatusPending,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// GetByID obtiene una tarea validando que pertenezca a la empresa.
func (uc *TaskUseCase) GetByID(businessID, id string) (*dto.TaskResponse, error) {
	task, err := uc.ownedTask(businessID, id)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// Update edita título, descripción, asignado y fecha límite.
func (uc *TaskUseCase) Update(businessID, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := uc.ownedTask(businessID, id)
	if err != nil {
		return nil, err
	}
	task.Title = in.Title
	task.Description = in.Description
	task.AssigneeID = in.AssigneeID
	task.DueDate = in.DueDate
	task.UpdatedAt = time.Now()
	if err := uc.repo.Update(task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// UpdateStatus cambia el estado de la tarea (pending, in_progress, done).
func (uc *TaskUseCase) UpdateStatus(businessID, id string, in dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error) {
	if !entity.IsValidTaskStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	task, err := uc.ownedTask(businessID, id)
	if err != nil {
		return nil, err
	}
	task.Status = in.Status
	task.UpdatedAt = time.Now()
	if err := uc.repo.Update(task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// List lista las tareas de la empresa con paginación.
func (uc *TaskUseCase) List(businessID string, limit, offset int) (*dto.TaskListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTaskResponse(t))
	}
	return &dto.TaskListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *TaskUseCase) ownedTask(businessID, id string) (*entity.Task, error) {
	task, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil || task.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		BusinessID:  t.BusinessID,
		AssigneeID:  t.AssigneeID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
