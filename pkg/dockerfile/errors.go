package dockerfile

import "errors"

var (
	// ErrTemplateUnreadable means a custom Dockerfile template could not be
	// read from its configured path.
	ErrTemplateUnreadable = errors.New("dockerfile template unreadable")
)
