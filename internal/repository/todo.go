package repository

import (
	"context"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
)

type UpdateTodoInput struct {
	Content     *string // nil means leave unchanged
	IsCompleted *bool
}

// PendingDigest is one user's count of incomplete todos across all lists
// they are a member of. Consumed by the reminder loop.
type PendingDigest struct {
	UserID       string
	Email        string
	Name         string
	PendingCount int
}

type TodoRepository interface {
	Create(ctx context.Context, taskListID, content string) (*domain.Todo, error)
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	ListByTaskList(ctx context.Context, taskListID string) ([]*domain.Todo, error)
	Update(ctx context.Context, id string, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error

	PendingDigests(ctx context.Context) ([]*PendingDigest, error)
}
