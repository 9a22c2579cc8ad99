package runmode

import (
	"errors"
	"fmt"
)

var (
	// ErrSkipConfirmationRequired is returned when a forward move would
	// pass an incomplete committed week. The move is held as pending.
	ErrSkipConfirmationRequired = errors.New("earlier weeks are incomplete; confirm to skip ahead")
	ErrNoPendingSkip            = errors.New("no skip is pending")
	// ErrTypeChangeNeedsConfirmation guards resetting an exercise that
	// already has logged progress.
	ErrTypeChangeNeedsConfirmation = errors.New("exercise has logged progress; changing its type clears every set")
	ErrOutOfRange                  = errors.New("index out of range")
	ErrExerciseNameRequired        = errors.New("exercise name is required")
	ErrSaveIntegrity               = errors.New("save verification failed")
	// ErrNoRunnableWeeks is returned by Open for a block whose weeks hold
	// no days to train.
	ErrNoRunnableWeeks = errors.New("block has no days to train")
)

// SaveIntegrityError reports run metrics that changed across a write and
// reload. The run stays open; callers should retry Close.
type SaveIntegrityError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *SaveIntegrityError) Error() string {
	return fmt.Sprintf("save verification failed: %s expected %d, reloaded %d", e.Field, e.Expected, e.Actual)
}

func (e *SaveIntegrityError) Is(target error) bool {
	return target == ErrSaveIntegrity
}

func outOfRange(what string, i, n int) error {
	return fmt.Errorf("%s %d of %d: %w", what, i, n, ErrOutOfRange)
}
