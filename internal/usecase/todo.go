package usecase

import (
	"context"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/metrics"
	"github.com/ErlanBelekov/tasklist-api/internal/repository"
)

type TodoUsecase struct {
	todos repository.TodoRepository
	lists repository.TaskListRepository
}

func NewTodoUsecase(todos repository.TodoRepository, lists repository.TaskListRepository) *TodoUsecase {
	return &TodoUsecase{todos: todos, lists: lists}
}

type UpdateTodoInput struct {
	Content     *string
	IsCompleted *bool
}

func (u *TodoUsecase) CreateTodo(ctx context.Context, taskListID, content, userID string) (*domain.Todo, error) {
	if err := u.requireMember(ctx, taskListID, userID); err != nil {
		return nil, err
	}
	return u.todos.Create(ctx, taskListID, content)
}

func (u *TodoUsecase) UpdateTodo(ctx context.Context, id string, input UpdateTodoInput, userID string) (*domain.Todo, error) {
	todo, err := u.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.requireMember(ctx, todo.TaskListID, userID); err != nil {
		return nil, err
	}

	updated, err := u.todos.Update(ctx, id, repository.UpdateTodoInput{
		Content:     input.Content,
		IsCompleted: input.IsCompleted,
	})
	if err != nil {
		return nil, err
	}

	if input.IsCompleted != nil && *input.IsCompleted && !todo.IsCompleted {
		metrics.TodosCompletedTotal.Inc()
	}
	return updated, nil
}

func (u *TodoUsecase) DeleteTodo(ctx context.Context, id, userID string) error {
	todo, err := u.todos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.requireMember(ctx, todo.TaskListID, userID); err != nil {
		return err
	}
	return u.todos.Delete(ctx, id)
}

func (u *TodoUsecase) requireMember(ctx context.Context, taskListID, userID string) error {
	list, err := u.lists.FindByID(ctx, taskListID)
	if err != nil {
		return err
	}
	if !list.HasMember(userID) {
		return domain.ErrNotMember
	}
	return nil
}
