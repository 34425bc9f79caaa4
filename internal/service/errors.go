package service

import "errors"

// Errors returned by the identity and task services. Callers match them
// with errors.Is; presentation decides how to word them.
var (
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUnknownAssignee    = errors.New("unknown assignee")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
)
