package boq

import "errors"

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrVersionNotFound   = errors.New("version not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidTransition = errors.New("status cannot move backwards")
)
