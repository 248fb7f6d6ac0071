package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskListNotFound = errors.New("task list not found")
	ErrNotMember        = errors.New("user is not a member of this task list")
)

// TaskList is shared between its members: UserIDs is ordered (the creator is
// always the first element) and has set semantics — a user appears at most once.
type TaskList struct {
	ID        string
	Title     string
	UserIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether userID is in the list's member set.
func (l *TaskList) HasMember(userID string) bool {
	for _, id := range l.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
