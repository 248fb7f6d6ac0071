package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid credentials"
	errEmailTaken         = "Email is already registered"
	errTaskListNotFound   = "Task list not found"
	errUserNotFound       = "User not found"
	errTodoNotFound       = "Todo not found"
	errNotMember          = "You are not a member of this task list"
)
