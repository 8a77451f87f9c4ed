package internal

import (
	"errors"
	"fmt"
)

var (
	ErrConfig = errors.New("console: invalid configuration")
	ErrPanic  = errors.New("console: panic recovered")
)

// ConfigError reports an environment the bootstrap cannot run in.
// It happens before a response exists.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is matches ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// PanicError wraps a value recovered from a panicking stage.
// When the value is an error it is exposed through Unwrap, so a panic
// carrying a storage error is still classified as one.
type PanicError struct {
	Value any
	Line  string
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Is matches ErrPanic.
func (e *PanicError) Is(target error) bool { return target == ErrPanic }

// IsPanicError reports whether err carries a recovered panic.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
