package locator

import "github.com/go-errors/errors"

// Error kinds returned by the locator. Callers branch on them with errors.Is.
var (
	ErrInvalidConfiguration = errors.New("invalid log path")
	ErrNotConfigured        = errors.New("log path not set")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNotFound             = errors.New("log file not found")
	ErrDeletionFailed       = errors.New("log file deletion failed")
)
