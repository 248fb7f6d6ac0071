package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/tasklist-api/internal/repository"
	"github.com/ErlanBelekov/tasklist-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/tasklist-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	taskListHandler *handler.TaskListHandler,
	todoHandler *handler.TodoHandler,
	userRepo repository.UserRepository,
	hmacKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(hmacKey)
	requireUser := middleware.RequireUser(userRepo, logger)

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)

	// Protected task list routes
	lists := r.Group("/tasklists", authMW, requireUser)
	lists.GET("", taskListHandler.List)
	lists.POST("", taskListHandler.Create)
	lists.GET("/:id", taskListHandler.GetByID)
	lists.PATCH("/:id", taskListHandler.Update)
	lists.DELETE("/:id", taskListHandler.Delete)
	lists.POST("/:id/users", taskListHandler.AddUser)
	lists.POST("/:id/todos", todoHandler.Create)

	// Protected todo routes
	todos := r.Group("/todos", authMW, requireUser)
	todos.PATCH("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	return r
}
