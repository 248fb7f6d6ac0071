package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	uc     *usecase.TodoUsecase
	logger *slog.Logger
}

func NewTodoHandler(uc *usecase.TodoUsecase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{uc: uc, logger: logger.With("component", "todo_handler")}
}

type createTodoRequest struct {
	Content string `json:"content" binding:"required,max=1024"`
}

type updateTodoRequest struct {
	Content     *string `json:"content"      binding:"omitempty,max=1024"`
	IsCompleted *bool   `json:"is_completed"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Content:     t.Content,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
	}
}

// POST /tasklists/:id/todos
func (h *TodoHandler) Create(ctx *gin.Context) {
	listID := ctx.Param("id")

	var req createTodoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.uc.CreateTodo(ctx.Request.Context(), listID, req.Content, ctx.GetString("userID"))
	if err != nil {
		h.respondError(ctx, err, "create todo")
		return
	}
	ctx.JSON(http.StatusCreated, toTodoResponse(todo))
}

// PATCH /todos/:id
func (h *TodoHandler) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req updateTodoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.uc.UpdateTodo(ctx.Request.Context(), id, usecase.UpdateTodoInput{
		Content:     req.Content,
		IsCompleted: req.IsCompleted,
	}, ctx.GetString("userID"))
	if err != nil {
		h.respondError(ctx, err, "update todo")
		return
	}
	ctx.JSON(http.StatusOK, toTodoResponse(todo))
}

// DELETE /todos/:id
func (h *TodoHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.uc.DeleteTodo(ctx.Request.Context(), id, ctx.GetString("userID")); err != nil {
		h.respondError(ctx, err, "delete todo")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *TodoHandler) respondError(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
	case errors.Is(err, domain.ErrTaskListNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTaskListNotFound})
	case errors.Is(err, domain.ErrNotMember):
		ctx.JSON(http.StatusForbidden, gin.H{"error": errNotMember})
	default:
		h.logger.ErrorContext(ctx.Request.Context(), op, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
