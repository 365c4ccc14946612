package cmd

import "errors"

var (
	// ErrToolNotFound means the executable could not be located on PATH.
	ErrToolNotFound = errors.New("tool not found")
	// ErrToolFailed means the tool ran but exited with a non-zero status.
	ErrToolFailed = errors.New("tool exited with error")
	// ErrToolLaunch covers any other launch-level fault.
	ErrToolLaunch = errors.New("tool failed to launch")
)
