// Package service contains the multi-step content operations that span more
// than one repository call: category set replacement, checklist ordering,
// article save/delete orchestration and event publishing.  The store gives
// no cross-row transactionality, so these operations are sequences of
// independent calls that report partial completion instead of pretending to
// roll back.
package service

import (
	"errors"
	"fmt"
)

// PartialFailureError marks a multi-step operation that completed some but
// not all of its steps.  The already-applied steps are not rolled back; the
// caller decides whether to retry the remainder or alert for manual
// reconciliation.  Handlers must surface this distinctly from a clean
// failure.
type PartialFailureError struct {
	Op   string // the operation, e.g. "replace article categories"
	Step string // the step that failed, e.g. "insert category 2 of 3"
	Err  error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: partial failure at %s: %v", e.Op, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// ErrInvalidDirection is returned by MoveItem for directions other than
// "up" and "down".
var ErrInvalidDirection = errors.New("direction must be up or down")
