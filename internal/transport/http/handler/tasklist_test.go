package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/tasklist-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeTaskListUsecase struct {
	myTaskLists    func(ctx context.Context, userID string) ([]*usecase.TaskListView, error)
	getTaskList    func(ctx context.Context, id, userID string) (*usecase.TaskListView, error)
	createTaskList func(ctx context.Context, title, userID string) (*usecase.TaskListView, error)
	updateTaskList func(ctx context.Context, id, title, userID string) (*usecase.TaskListView, error)
	deleteTaskList func(ctx context.Context, id, userID string) error
	addUser        func(ctx context.Context, listID, userID, actingUserID string) (*usecase.TaskListView, error)
}

func (f *fakeTaskListUsecase) MyTaskLists(ctx context.Context, userID string) ([]*usecase.TaskListView, error) {
	return f.myTaskLists(ctx, userID)
}

func (f *fakeTaskListUsecase) GetTaskList(ctx context.Context, id, userID string) (*usecase.TaskListView, error) {
	return f.getTaskList(ctx, id, userID)
}

func (f *fakeTaskListUsecase) CreateTaskList(ctx context.Context, title, userID string) (*usecase.TaskListView, error) {
	return f.createTaskList(ctx, title, userID)
}

func (f *fakeTaskListUsecase) UpdateTaskList(ctx context.Context, id, title, userID string) (*usecase.TaskListView, error) {
	return f.updateTaskList(ctx, id, title, userID)
}

func (f *fakeTaskListUsecase) DeleteTaskList(ctx context.Context, id, userID string) error {
	return f.deleteTaskList(ctx, id, userID)
}

func (f *fakeTaskListUsecase) AddUser(ctx context.Context, listID, userID, actingUserID string) (*usecase.TaskListView, error) {
	return f.addUser(ctx, listID, userID, actingUserID)
}

const callerID = "user-caller"

// newTaskListEngine injects callerID the way the auth middleware would.
func newTaskListEngine(uc *fakeTaskListUsecase) *gin.Engine {
	h := handler.NewTaskListHandler(uc, testLogger())
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", callerID) })
	r.GET("/tasklists", h.List)
	r.POST("/tasklists", h.Create)
	r.GET("/tasklists/:id", h.GetByID)
	r.PATCH("/tasklists/:id", h.Update)
	r.DELETE("/tasklists/:id", h.Delete)
	r.POST("/tasklists/:id/users", h.AddUser)
	return r
}

func listView(id, title string) *usecase.TaskListView {
	return &usecase.TaskListView{
		List: &domain.TaskList{ID: id, Title: title, UserIDs: []string{callerID}},
		Users: []*domain.User{
			{ID: callerID, Email: "caller@x.com", Name: "Caller"},
		},
		Todos: []*domain.Todo{
			{ID: "todo-1", TaskListID: id, Content: "Milk", IsCompleted: true},
			{ID: "todo-2", TaskListID: id, Content: "Eggs"},
		},
		Progress: 0.5,
	}
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ---- GET /tasklists/:id ----

func TestGetTaskList_Unknown_Returns404(t *testing.T) {
	uc := &fakeTaskListUsecase{
		getTaskList: func(_ context.Context, _, _ string) (*usecase.TaskListView, error) {
			return nil, domain.ErrTaskListNotFound
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodGet, "/tasklists/list-1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetTaskList_NonMember_Returns403(t *testing.T) {
	uc := &fakeTaskListUsecase{
		getTaskList: func(_ context.Context, _, _ string) (*usecase.TaskListView, error) {
			return nil, domain.ErrNotMember
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodGet, "/tasklists/list-1", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestGetTaskList_Success_ReturnsProjection(t *testing.T) {
	uc := &fakeTaskListUsecase{
		getTaskList: func(_ context.Context, id, userID string) (*usecase.TaskListView, error) {
			if userID != callerID {
				t.Errorf("userID = %q, want %q", userID, callerID)
			}
			return listView(id, "Groceries"), nil
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodGet, "/tasklists/list-1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Progress float64 `json:"progress"`
		Users    []struct {
			ID string `json:"id"`
		} `json:"users"`
		Todos []struct {
			ID          string `json:"id"`
			IsCompleted bool   `json:"is_completed"`
		} `json:"todos"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "list-1" || resp.Title != "Groceries" {
		t.Errorf("got %+v", resp)
	}
	if resp.Progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", resp.Progress)
	}
	if len(resp.Users) != 1 || resp.Users[0].ID != callerID {
		t.Errorf("users = %+v", resp.Users)
	}
	if len(resp.Todos) != 2 || !resp.Todos[0].IsCompleted || resp.Todos[1].IsCompleted {
		t.Errorf("todos = %+v", resp.Todos)
	}
}

// ---- POST /tasklists ----

func TestCreateTaskList_MissingTitle_Returns400(t *testing.T) {
	w := do(t, newTaskListEngine(&fakeTaskListUsecase{}), http.MethodPost, "/tasklists", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateTaskList_Success_Returns201(t *testing.T) {
	uc := &fakeTaskListUsecase{
		createTaskList: func(_ context.Context, title, userID string) (*usecase.TaskListView, error) {
			if title != "Groceries" || userID != callerID {
				t.Errorf("create called with %q/%q", title, userID)
			}
			return listView("list-1", title), nil
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodPost, "/tasklists", `{"title":"Groceries"}`)
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
}

// ---- DELETE /tasklists/:id ----

func TestDeleteTaskList_Success_Returns204(t *testing.T) {
	uc := &fakeTaskListUsecase{
		deleteTaskList: func(_ context.Context, id, userID string) error {
			if id != "list-1" || userID != callerID {
				t.Errorf("delete called with %q/%q", id, userID)
			}
			return nil
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodDelete, "/tasklists/list-1", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}

func TestDeleteTaskList_NonMember_Returns403(t *testing.T) {
	uc := &fakeTaskListUsecase{
		deleteTaskList: func(_ context.Context, _, _ string) error {
			return domain.ErrNotMember
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodDelete, "/tasklists/list-1", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

// ---- POST /tasklists/:id/users ----

func TestAddUser_UnknownTarget_Returns404(t *testing.T) {
	uc := &fakeTaskListUsecase{
		addUser: func(_ context.Context, _, _, _ string) (*usecase.TaskListView, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodPost, "/tasklists/list-1/users",
		`{"user_id":"user-ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAddUser_MissingBody_Returns400(t *testing.T) {
	w := do(t, newTaskListEngine(&fakeTaskListUsecase{}), http.MethodPost,
		"/tasklists/list-1/users", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAddUser_Success_Returns200(t *testing.T) {
	uc := &fakeTaskListUsecase{
		addUser: func(_ context.Context, listID, userID, actingUserID string) (*usecase.TaskListView, error) {
			if listID != "list-1" || userID != "user-bob" || actingUserID != callerID {
				t.Errorf("add user called with %q/%q/%q", listID, userID, actingUserID)
			}
			return listView(listID, "Groceries"), nil
		},
	}
	w := do(t, newTaskListEngine(uc), http.MethodPost, "/tasklists/list-1/users",
		`{"user_id":"user-bob"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
