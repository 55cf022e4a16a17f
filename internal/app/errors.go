// Package app provides the main application structure and coordination.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the application is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrUnsavedChanges indicates there are unsaved changes.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrInitialization indicates an initialization failure.
	ErrInitialization = errors.New("initialization failed")

	// ErrShutdownTimeout indicates shutdown timed out.
	ErrShutdownTimeout = errors.New("shutdown timed out")

	// ErrInvalidOperation indicates an operation was requested that the
	// application cannot perform in its current state.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrComponentNotAvailable indicates a required component (dispatcher,
	// renderer, backend) has not been wired up yet.
	ErrComponentNotAvailable = errors.New("component not available")
)

// OperationError describes a failed application operation, identifying
// what was attempted and on what target.
type OperationError struct {
	// Op is the operation that failed (e.g. "save", "open").
	Op string
	// Target is the subject of the operation, such as a file path.
	Target string
	// Context adds detail about why the operation failed.
	Context string
	// Err is the underlying error, if any.
	Err error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext returns a copy of the error with Context set.
func (e *OperationError) WithContext(context string) *OperationError {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Context = context
	return &cp
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	s := e.Op
	if e.Target != "" {
		s += " " + e.Target
	}
	if e.Context != "" {
		s += fmt.Sprintf(" (%s)", e.Context)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target matches this error or its wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if oe, ok := target.(*OperationError); ok {
		return oe == e
	}
	return errors.Is(e.Err, target)
}

// ComponentError describes a failure attributed to a named application
// component (e.g. "dispatcher", "renderer", "backend").
type ComponentError struct {
	// Component is the name of the failing component.
	Component string
	// Action is the operation the component was performing.
	Action string
	// Err is the underlying error.
	Err error
}

// NewComponentError creates a ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

// Error implements the error interface.
func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	s := e.Component
	if e.Action != "" {
		s += ": " + e.Action
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying error.
func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target matches this error or its wrapped error.
func (e *ComponentError) Is(target error) bool {
	if e == nil {
		return false
	}
	if ce, ok := target.(*ComponentError); ok {
		return ce == e
	}
	return errors.Is(e.Err, target)
}

// RecoveredPanicError wraps a value recovered from a panic, along with
// the stack trace captured at recovery time.
type RecoveredPanicError struct {
	// Value is whatever was passed to panic().
	Value any
	// Stack is the captured stack trace.
	Stack string
}

// NewRecoveredPanicError creates a RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: stack}
}

// Error implements the error interface.
func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	s := fmt.Sprintf("panic: %v", e.Value)
	if e.Stack != "" {
		s += "\n" + e.Stack
	}
	return s
}

// ErrorList accumulates multiple errors, such as errors encountered
// while shutting down several components in sequence.
type ErrorList struct {
	errs []error
}

// NewErrorList creates an empty ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends err to the list. Nil errors are ignored.
func (l *ErrorList) Add(err error) {
	if err == nil {
		return
	}
	l.errs = append(l.errs, err)
}

// Len returns the number of accumulated errors.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// HasErrors reports whether any errors have been added.
func (l *ErrorList) HasErrors() bool {
	return len(l.errs) > 0
}

// Errors returns a copy of the accumulated errors.
func (l *ErrorList) Errors() []error {
	if len(l.errs) == 0 {
		return nil
	}
	cp := make([]error, len(l.errs))
	copy(cp, l.errs)
	return cp
}

// First returns the first accumulated error, or nil if the list is empty.
func (l *ErrorList) First() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[0]
}

// Error implements the error interface.
func (l *ErrorList) Error() string {
	if l == nil || len(l.errs) == 0 {
		return ""
	}
	if len(l.errs) == 1 {
		return l.errs[0].Error()
	}
	return fmt.Sprintf("%d errors: first: %s", len(l.errs), l.errs[0].Error())
}

// AsError returns the list as an error, or nil if it has no entries.
func (l *ErrorList) AsError() error {
	if l == nil || len(l.errs) == 0 {
		return nil
	}
	return l
}

// WrapError wraps err with a formatted message, returning nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
