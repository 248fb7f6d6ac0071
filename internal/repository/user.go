package repository

import (
	"context"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
)

type CreateUserInput struct {
	Email        string
	PasswordHash string
	Name         string
	Avatar       *string
}

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByIDs returns the users whose IDs are in ids, in no particular
	// order. IDs with no matching user are silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}
