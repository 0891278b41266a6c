package core

import (
	"errors"
)

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrNoLoader            = errors.New("no loader registered for resource type")
	ErrUnknownResourceType = errors.New("unknown resource type")
	ErrInvalidViewport     = errors.New("invalid viewport index")
	ErrNotInitialized      = errors.New("subsystem not initialized")
	ErrStyleNotFound       = errors.New("no style available for element")
)
