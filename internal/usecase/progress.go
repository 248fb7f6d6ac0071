package usecase

import "github.com/ErlanBelekov/tasklist-api/internal/domain"

// ProgressFunc derives a task list's progress in [0, 1] from its todos.
// It is injected into TaskListUsecase so the strategy can change without
// touching the response contract.
type ProgressFunc func(todos []*domain.Todo) float64

// CompletedRatio is the default strategy: completed todos over total.
// A list with no todos reports 0.
func CompletedRatio(todos []*domain.Todo) float64 {
	if len(todos) == 0 {
		return 0
	}
	completed := 0
	for _, t := range todos {
		if t.IsCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(todos))
}
