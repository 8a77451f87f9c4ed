package module

import (
	"errors"
	"fmt"
)

var (
	ErrManifest            = errors.New("module: malformed manifest")
	ErrEmptyID             = errors.New("module: empty module id")
	ErrDuplicateModule     = errors.New("module: module already registered")
	ErrDuplicateDescriptor = errors.New("module: module listed twice in manifest")
	ErrUnknownModule       = errors.New("module: active module is not registered")
	ErrDuplicateAction     = errors.New("module: action already registered")
	ErrInvalidAction       = errors.New("module: action needs a name and a function")
	ErrModuleInactive      = errors.New("module: module is not active")
	ErrActionNotFound      = errors.New("module: action not found")
	ErrInitAborted         = errors.New("module: initialization aborted")
	ErrNotInitialized      = errors.New("module: manager is not initialized")
)

// InitError wraps the error returned by a module initializer.
type InitError struct {
	Err    error
	Module string
}

func (e *InitError) Error() string {
	return fmt.Sprintf("module %q: init: %v", e.Module, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }
