package health

import "errors"

// ErrCheckFailed is returned by Report.Err when one or more checks fail.
var ErrCheckFailed = errors.New("health: check failed")
