package message

import "errors"

var ErrAlreadyEmitted = errors.New("message: response body already emitted")
