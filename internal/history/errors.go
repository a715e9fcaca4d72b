package history

import "fmt"

// ErrNoSession is the message used when no session is active.
const ErrNoSession = "no active session"

// HistoryError is a failed history fetch or lookup. It is non-fatal: the last
// successfully fetched entries stay available.
type HistoryError struct {
	Op      string
	Message string
	Cause   error
}

func (e *HistoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("history %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("history %s: %s", e.Op, e.Message)
}

func (e *HistoryError) Unwrap() error {
	return e.Cause
}
