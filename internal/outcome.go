package internal

import (
	"errors"

	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/dispatch"
	"github.com/dmitrymomot/console/pkg/router"
	"github.com/dmitrymomot/console/pkg/sanitizer"
)

// Kind tags how a run ended.
type Kind int

const (
	OutcomeOK Kind = iota
	OutcomeNotFound
	OutcomeDispatchError
	OutcomeStorageFailure
	OutcomeCritical
)

// Body prefixes of the failure payloads.
const (
	PrefixStorage  = "Database error: "
	PrefixCritical = "Critical error: "
	PrefixNotFound = "Not found: "
	PrefixDispatch = "Dispatch error: "
)

func (k Kind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeDispatchError:
		return "dispatch_error"
	case OutcomeStorageFailure:
		return "storage_failure"
	case OutcomeCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ExitCode is 1 for storage and critical failures, 0 otherwise.
// Not-found and dispatch errors are rendered answers, not process failures.
func (k Kind) ExitCode() int {
	if k == OutcomeStorageFailure || k == OutcomeCritical {
		return 1
	}
	return 0
}

// Fatal reports whether the kind is logged as a critical entry.
func (k Kind) Fatal() bool {
	return k.ExitCode() != 0
}

// Outcome is the result of one bootstrap run.
type Outcome struct {
	Err       error
	Body      string
	RequestID string
	Language  string
	Target    string
	Kind      Kind
	Stage     Stage
	ExitCode  int
}

// Classify maps a stage error to an outcome kind. A nil error is OutcomeOK.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return OutcomeOK
	case db.IsStorageError(err):
		return OutcomeStorageFailure
	case errors.Is(err, router.ErrRouteNotFound):
		return OutcomeNotFound
	case errors.Is(err, dispatch.ErrTarget):
		return OutcomeDispatchError
	default:
		return OutcomeCritical
	}
}

// payload returns the user-visible text for a failed run.
// Markup is stripped from the variable part.
func payload(kind Kind, err error, path string) string {
	switch kind {
	case OutcomeNotFound:
		return PrefixNotFound + sanitizer.StripTags(path)
	case OutcomeDispatchError:
		return PrefixDispatch + sanitizer.StripTags(err.Error())
	case OutcomeStorageFailure:
		return PrefixStorage + sanitizer.StripTags(err.Error())
	default:
		msg := "unknown failure"
		if err != nil {
			msg = err.Error()
		}
		return PrefixCritical + sanitizer.StripTags(msg)
	}
}
