package entity

import "time"

// Estados válidos para Task.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// IsValidTaskStatus verifica si el estado es uno de los válidos.
func IsValidTaskStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusInProgress || s == TaskStatusDone
}

// Task representa una tarea de seguimiento dentro de una empresa.
type Task struct {
	ID          string
	BusinessID  string
	AssigneeID  string // opcional, cuenta asignada
	Title       string
	Description string
	Status      string // ver constantes TaskStatus*
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
