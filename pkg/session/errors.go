package session

import "errors"

var (
	ErrNilSession  = errors.New("session: nil session")
	ErrEmptyUserID = errors.New("session: empty user id")
)
