package router

import (
	"errors"
	"fmt"
)

var (
	ErrRouteTable    = errors.New("router: malformed route table")
	ErrRouteNotFound = errors.New("router: no route matches")

	ErrEmptyPattern   = errors.New("router: empty pattern")
	ErrInvalidMethod  = errors.New("router: invalid method")
	ErrInvalidPattern = errors.New("router: invalid pattern")
	ErrMissingTarget  = errors.New("router: rule has no module or action")
	ErrNoRules        = errors.New("router: route table is empty")
)

// RouteTableError reports a malformed route table. It is fatal at bootstrap.
type RouteTableError struct {
	Err    error
	Source string
	Index  int
}

func (e *RouteTableError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("route table %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("route table %s: rule %d: %v", e.Source, e.Index, e.Err)
}

func (e *RouteTableError) Unwrap() error { return e.Err }

// Is matches ErrRouteTable.
func (e *RouteTableError) Is(target error) bool { return target == ErrRouteTable }

// RouteNotFoundError is returned by Route when no rule matches.
type RouteNotFoundError struct {
	Method string
	Path   string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route for %s %s", e.Method, e.Path)
}

// Is matches ErrRouteNotFound.
func (e *RouteNotFoundError) Is(target error) bool { return target == ErrRouteNotFound }
