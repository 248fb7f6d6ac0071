package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/email"
	"github.com/ErlanBelekov/tasklist-api/internal/metrics"
	"github.com/ErlanBelekov/tasklist-api/internal/repository"
)

// TaskListView is a task list with its members and todos resolved, ready to
// be shaped into a response.
type TaskListView struct {
	List     *domain.TaskList
	Users    []*domain.User
	Todos    []*domain.Todo
	Progress float64
}

type TaskListUsecase struct {
	lists    repository.TaskListRepository
	users    repository.UserRepository
	todos    repository.TodoRepository
	email    email.Sender
	logger   *slog.Logger
	progress ProgressFunc
}

func NewTaskListUsecase(
	lists repository.TaskListRepository,
	users repository.UserRepository,
	todos repository.TodoRepository,
	emailSender email.Sender,
	logger *slog.Logger,
	progress ProgressFunc,
) *TaskListUsecase {
	if progress == nil {
		progress = CompletedRatio
	}
	return &TaskListUsecase{
		lists:    lists,
		users:    users,
		todos:    todos,
		email:    emailSender,
		logger:   logger.With("component", "tasklist_usecase"),
		progress: progress,
	}
}

// MyTaskLists returns every list the user is a member of.
func (u *TaskListUsecase) MyTaskLists(ctx context.Context, userID string) ([]*TaskListView, error) {
	lists, err := u.lists.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}

	views := make([]*TaskListView, len(lists))
	for i, l := range lists {
		v, err := u.view(ctx, l)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}

func (u *TaskListUsecase) GetTaskList(ctx context.Context, id, userID string) (*TaskListView, error) {
	list, err := u.lists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !list.HasMember(userID) {
		return nil, domain.ErrNotMember
	}
	return u.view(ctx, list)
}

func (u *TaskListUsecase) CreateTaskList(ctx context.Context, title, userID string) (*TaskListView, error) {
	list, err := u.lists.Create(ctx, title, userID)
	if err != nil {
		return nil, fmt.Errorf("create task list: %w", err)
	}

	metrics.TaskListsCreatedTotal.Inc()
	return u.view(ctx, list)
}

func (u *TaskListUsecase) UpdateTaskList(ctx context.Context, id, title, userID string) (*TaskListView, error) {
	list, err := u.lists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !list.HasMember(userID) {
		return nil, domain.ErrNotMember
	}

	updated, err := u.lists.UpdateTitle(ctx, id, title)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, updated)
}

func (u *TaskListUsecase) DeleteTaskList(ctx context.Context, id, userID string) error {
	list, err := u.lists.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !list.HasMember(userID) {
		return domain.ErrNotMember
	}
	return u.lists.Delete(ctx, id)
}

// AddUser shares the list with another user. Re-adding an existing member is
// a no-op and returns the unchanged list.
func (u *TaskListUsecase) AddUser(ctx context.Context, listID, userID, actingUserID string) (*TaskListView, error) {
	list, err := u.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.HasMember(actingUserID) {
		return nil, domain.ErrNotMember
	}

	target, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	alreadyMember := list.HasMember(userID)

	updated, err := u.lists.AddMember(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	if !alreadyMember {
		subject := fmt.Sprintf("You were added to %q", updated.Title)
		body := fmt.Sprintf(`<p>Hi %s,</p><p>You are now a member of the task list %q.</p>`, target.Name, updated.Title)
		if err := u.email.Send(ctx, target.Email, subject, body); err != nil {
			u.logger.ErrorContext(ctx, "send member notification", "list_id", listID, "user_id", userID, "error", err)
		}
	}

	return u.view(ctx, updated)
}

// view resolves members and todos for a list. Member order follows
// list.UserIDs; identifiers whose user no longer exists are dropped.
func (u *TaskListUsecase) view(ctx context.Context, list *domain.TaskList) (*TaskListView, error) {
	members, err := u.users.FindByIDs(ctx, list.UserIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve members: %w", err)
	}

	byID := make(map[string]*domain.User, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	ordered := make([]*domain.User, 0, len(list.UserIDs))
	for _, id := range list.UserIDs {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}

	todos, err := u.todos.ListByTaskList(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve todos: %w", err)
	}

	return &TaskListView{
		List:     list,
		Users:    ordered,
		Todos:    todos,
		Progress: u.progress(todos),
	}, nil
}
