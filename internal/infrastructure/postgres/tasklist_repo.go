package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskListRepository struct {
	pool *pgxpool.Pool
}

func NewTaskListRepository(pool *pgxpool.Pool) *TaskListRepository {
	return &TaskListRepository{pool: pool}
}

const taskListColumns = `id, title, user_ids, created_at, updated_at`

func (r *TaskListRepository) Create(ctx context.Context, title, userID string) (*domain.TaskList, error) {
	query := `
		INSERT INTO task_lists (title, user_ids)
		VALUES ($1, ARRAY[$2]::uuid[])
		RETURNING ` + taskListColumns

	return scanTaskList(r.pool.QueryRow(ctx, query, title, userID))
}

func (r *TaskListRepository) FindByID(ctx context.Context, id string) (*domain.TaskList, error) {
	query := `SELECT ` + taskListColumns + ` FROM task_lists WHERE id = $1`
	return scanTaskList(r.pool.QueryRow(ctx, query, id))
}

func (r *TaskListRepository) ListByMember(ctx context.Context, userID string) ([]*domain.TaskList, error) {
	query := `
		SELECT ` + taskListColumns + `
		FROM task_lists
		WHERE $1 = ANY(user_ids)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	defer rows.Close()

	var lists []*domain.TaskList
	for rows.Next() {
		l, err := scanTaskList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *TaskListRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.TaskList, error) {
	query := `
		UPDATE task_lists
		SET title = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskListColumns

	return scanTaskList(r.pool.QueryRow(ctx, query, id, title))
}

func (r *TaskListRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM task_lists WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrTaskListNotFound
		}
		return fmt.Errorf("delete task list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskListNotFound
	}
	return nil
}

// AddMember appends userID in a single guarded UPDATE, so concurrent adds of
// the same user cannot produce a duplicate entry. When the guard does not
// match we fall back to a read to tell "already a member" apart from "no such
// list".
func (r *TaskListRepository) AddMember(ctx context.Context, listID, userID string) (*domain.TaskList, error) {
	query := `
		UPDATE task_lists
		SET user_ids = array_append(user_ids, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(user_ids))
		RETURNING ` + taskListColumns

	l, err := scanTaskList(r.pool.QueryRow(ctx, query, listID, userID))
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, domain.ErrTaskListNotFound) {
		return nil, err
	}
	// Either the list does not exist or userID is already a member.
	return r.FindByID(ctx, listID)
}

func scanTaskList(row rowScanner) (*domain.TaskList, error) {
	var l domain.TaskList
	err := row.Scan(&l.ID, &l.Title, &l.UserIDs, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskListNotFound
		}
		if isInvalidUUID(err) {
			return nil, domain.ErrTaskListNotFound
		}
		return nil, fmt.Errorf("scan task list: %w", err)
	}
	return &l, nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

// isInvalidUUID reports whether err is Postgres complaining about a value
// that does not parse as a uuid. Identifiers come straight from URL params,
// so a garbage id is a lookup miss, not a server error.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
