package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

const todoColumns = `id, task_list_id, content, is_completed, created_at, updated_at`

func (r *TodoRepository) Create(ctx context.Context, taskListID, content string) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (task_list_id, content)
		VALUES ($1, $2)
		RETURNING ` + todoColumns

	return scanTodo(r.pool.QueryRow(ctx, query, taskListID, content))
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	return scanTodo(r.pool.QueryRow(ctx, query, id))
}

func (r *TodoRepository) ListByTaskList(ctx context.Context, taskListID string) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE task_list_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, taskListID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, id string, input repository.UpdateTodoInput) (*domain.Todo, error) {
	query := `
		UPDATE todos
		SET content      = COALESCE($2, content),
		    is_completed = COALESCE($3, is_completed),
		    updated_at   = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns

	return scanTodo(r.pool.QueryRow(ctx, query, id, input.Content, input.IsCompleted))
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) PendingDigests(ctx context.Context) ([]*repository.PendingDigest, error) {
	query := `
		SELECT u.id, u.email, u.name, COUNT(*)
		FROM todos t
		JOIN task_lists l ON l.id = t.task_list_id
		JOIN users u      ON u.id = ANY(l.user_ids)
		WHERE NOT t.is_completed
		GROUP BY u.id, u.email, u.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pending digests: %w", err)
	}
	defer rows.Close()

	var digests []*repository.PendingDigest
	for rows.Next() {
		var d repository.PendingDigest
		if err := rows.Scan(&d.UserID, &d.Email, &d.Name, &d.PendingCount); err != nil {
			return nil, fmt.Errorf("scan pending digest: %w", err)
		}
		digests = append(digests, &d)
	}
	return digests, rows.Err()
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.TaskListID, &t.Content, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		if isInvalidUUID(err) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
