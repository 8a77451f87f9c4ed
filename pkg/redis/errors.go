package redis

import "errors"

// Errors returned while opening the settings cache backend.
var (
	ErrMissingURL        = errors.New("redis: cache.redis.url is not set")
	ErrInvalidURL        = errors.New("redis: invalid cache.redis.url")
	ErrUnreachable       = errors.New("redis: server unreachable")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
