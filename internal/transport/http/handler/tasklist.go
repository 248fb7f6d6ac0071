package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskListUsecaser interface {
	MyTaskLists(ctx context.Context, userID string) ([]*usecase.TaskListView, error)
	GetTaskList(ctx context.Context, id, userID string) (*usecase.TaskListView, error)
	CreateTaskList(ctx context.Context, title, userID string) (*usecase.TaskListView, error)
	UpdateTaskList(ctx context.Context, id, title, userID string) (*usecase.TaskListView, error)
	DeleteTaskList(ctx context.Context, id, userID string) error
	AddUser(ctx context.Context, listID, userID, actingUserID string) (*usecase.TaskListView, error)
}

type TaskListHandler struct {
	uc     taskListUsecaser
	logger *slog.Logger
}

func NewTaskListHandler(uc taskListUsecaser, logger *slog.Logger) *TaskListHandler {
	return &TaskListHandler{uc: uc, logger: logger.With("component", "tasklist_handler")}
}

type createTaskListRequest struct {
	Title string `json:"title" binding:"required,max=256"`
}

type updateTaskListRequest struct {
	Title string `json:"title" binding:"required,max=256"`
}

type addUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type taskListResponse struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Title     string         `json:"title"`
	Progress  float64        `json:"progress"`
	Users     []userResponse `json:"users"`
	Todos     []todoResponse `json:"todos"`
}

func toTaskListResponse(v *usecase.TaskListView) taskListResponse {
	users := make([]userResponse, len(v.Users))
	for i, u := range v.Users {
		users[i] = toUserResponse(u)
	}
	todos := make([]todoResponse, len(v.Todos))
	for i, t := range v.Todos {
		todos[i] = toTodoResponse(t)
	}
	return taskListResponse{
		ID:        v.List.ID,
		CreatedAt: v.List.CreatedAt,
		Title:     v.List.Title,
		Progress:  v.Progress,
		Users:     users,
		Todos:     todos,
	}
}

// GET /tasklists
func (h *TaskListHandler) List(ctx *gin.Context) {
	views, err := h.uc.MyTaskLists(ctx.Request.Context(), ctx.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "list task lists", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]taskListResponse, len(views))
	for i, v := range views {
		items[i] = toTaskListResponse(v)
	}
	ctx.JSON(http.StatusOK, gin.H{"task_lists": items})
}

// GET /tasklists/:id
func (h *TaskListHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	v, err := h.uc.GetTaskList(ctx.Request.Context(), id, ctx.GetString("userID"))
	if err != nil {
		h.respondError(ctx, err, "get task list", id)
		return
	}
	ctx.JSON(http.StatusOK, toTaskListResponse(v))
}

// POST /tasklists
func (h *TaskListHandler) Create(ctx *gin.Context) {
	var req createTaskListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.uc.CreateTaskList(ctx.Request.Context(), req.Title, ctx.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "create task list", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusCreated, toTaskListResponse(v))
}

// PATCH /tasklists/:id
func (h *TaskListHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req updateTaskListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.uc.UpdateTaskList(ctx.Request.Context(), id, req.Title, ctx.GetString("userID"))
	if err != nil {
		h.respondError(ctx, err, "update task list", id)
		return
	}
	ctx.JSON(http.StatusOK, toTaskListResponse(v))
}

// DELETE /tasklists/:id
func (h *TaskListHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.uc.DeleteTaskList(ctx.Request.Context(), id, ctx.GetString("userID")); err != nil {
		h.respondError(ctx, err, "delete task list", id)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// POST /tasklists/:id/users
func (h *TaskListHandler) AddUser(ctx *gin.Context) {
	id := ctx.Param("id")

	var req addUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.uc.AddUser(ctx.Request.Context(), id, req.UserID, ctx.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.respondError(ctx, err, "add user to task list", id)
		return
	}
	ctx.JSON(http.StatusOK, toTaskListResponse(v))
}

func (h *TaskListHandler) respondError(ctx *gin.Context, err error, op, listID string) {
	switch {
	case errors.Is(err, domain.ErrTaskListNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTaskListNotFound})
	case errors.Is(err, domain.ErrNotMember):
		ctx.JSON(http.StatusForbidden, gin.H{"error": errNotMember})
	default:
		h.logger.ErrorContext(ctx.Request.Context(), op, "list_id", listID, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
