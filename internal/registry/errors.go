package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("model not found")
	ErrDuplicateModel          = errors.New("duplicate model id")
	ErrUnsupportedImportMode   = errors.New("unsupported import mode")
	ErrUnsupportedImportSource = errors.New("unsupported import source")
	ErrPrecondition            = errors.New("precondition violation")
)

// NotFoundError indicates a referenced model id is absent at resolve time.
type NotFoundError struct {
	ID   string
	Kind string // Empty when any kind was acceptable
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("not found: %s", e.ID)
	}
	return fmt.Sprintf("not found: $%s:%s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnsupportedImportModeError is raised for non-splat imports, which have no
// defined semantics.
type UnsupportedImportModeError struct {
	Function string
	From     string
}

func (e *UnsupportedImportModeError) Error() string {
	return fmt.Sprintf("%s: import of %s: only splat imports are supported", e.Function, e.From)
}

func (e *UnsupportedImportModeError) Is(target error) bool {
	return target == ErrUnsupportedImportMode
}

// UnsupportedImportSourceError is raised when an import names a model that
// exports no symbols.
type UnsupportedImportSourceError struct {
	Function string
	From     string
	Kind     Kind
}

func (e *UnsupportedImportSourceError) Error() string {
	return fmt.Sprintf("%s: cannot import %s model %s", e.Function, e.Kind, e.From)
}

func (e *UnsupportedImportSourceError) Is(target error) bool {
	return target == ErrUnsupportedImportSource
}

// PreconditionError reports a caller contract violation, such as pushing
// back a character twice or registering a model without an id.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }
