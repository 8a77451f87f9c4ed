package cache

import "errors"

var (
	ErrNotFound  = errors.New("cache: entry not found")
	ErrClosed    = errors.New("cache: closed")
	ErrMarshal   = errors.New("cache: failed to marshal value")
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")

	ErrCacheExists  = errors.New("cache: name already registered")
	ErrUnknownCache = errors.New("cache: unknown cache")
	ErrNilCache     = errors.New("cache: nil cache")
)
