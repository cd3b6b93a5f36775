package service

import "errors"

var (
	ErrNotFound     = errors.New("match not found")
	ErrInvalidState = errors.New("match is not in the required state")
	ErrInvalidScore = errors.New("invalid score")
	ErrInvalidMatch = errors.New("invalid match")
	ErrUnavailable  = errors.New("storage unavailable")
)
