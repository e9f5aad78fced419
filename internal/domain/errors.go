package domain

import "errors"

var (
	ErrNoTargetsFound     = errors.New("no content items matched the assessment filters")
	ErrAlreadyRunning     = errors.New("assessment run already in progress")
	ErrCancelled          = errors.New("assessment run cancelled")
	ErrRateLimited        = errors.New("rate limit would be exceeded")
	ErrSnapshotNotFound   = errors.New("snapshot not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrEditNotFound       = errors.New("edit not found")
	ErrUnknownCheck       = errors.New("unknown check toggle")
)
