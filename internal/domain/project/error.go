package project

import (
	"errors"
)

var (
	ErrNotFound = errors.New("project not found")
	// ErrNoPersonalProject signals a broken invariant: every user has exactly
	// one personal project. Surfaced as a server error, never retried.
	ErrNoPersonalProject = errors.New("user has no personal project")
	ErrWorkflowNotFound  = errors.New("workflow not found")
)
