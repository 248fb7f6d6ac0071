package repository

import (
	"context"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
)

type TaskListRepository interface {
	// Create persists a new list with userID as its sole member and returns
	// the inserted row.
	Create(ctx context.Context, title, userID string) (*domain.TaskList, error)
	FindByID(ctx context.Context, id string) (*domain.TaskList, error)
	ListByMember(ctx context.Context, userID string) ([]*domain.TaskList, error)
	UpdateTitle(ctx context.Context, id, title string) (*domain.TaskList, error)
	Delete(ctx context.Context, id string) error

	// AddMember appends userID to the list's member set in a single atomic
	// statement. Adding an existing member is a no-op; the unchanged list is
	// returned either way.
	AddMember(ctx context.Context, listID, userID string) (*domain.TaskList, error)
}
