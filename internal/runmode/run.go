// Package runmode holds the live state of a block being trained: the week
// navigation gate, completion events, mid-run structural edits, and the
// verified save on close. Week, day, exercise and set positions are
// 0-based throughout.
package runmode

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/session"
)

// SessionStore persists the sessions of one block.
type SessionStore interface {
	SessionsForBlock(ctx context.Context, blockID string) ([]domain.WorkoutSession, error)
	ReplaceSessions(ctx context.Context, blockID string, sessions []domain.WorkoutSession) error
}

// BlockStore receives template write-backs from propagated exercises.
type BlockStore interface {
	Update(ctx context.Context, b *domain.Block) error
}

type Option func(*Run)

// WithClock overrides the time source used for completion stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Run) { r.now = now }
}

// Run is one open training block. It is not safe for concurrent use.
type Run struct {
	block    *domain.Block
	sessions []domain.WorkoutSession
	weeks    []domain.RunWeekState

	active        int
	lastCommitted int
	pendingSkip   int
	hasPending    bool

	blocks BlockStore
	store  SessionStore
	now    func() time.Time
}

// Open loads the block's sessions, generating and persisting them only
// when none exist yet. The active week starts at the first incomplete one.
func Open(ctx context.Context, block *domain.Block, blocks BlockStore, store SessionStore, opts ...Option) (*Run, error) {
	r := &Run{block: block, blocks: blocks, store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	sessions, err := store.SessionsForBlock(ctx, block.ID)
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	if len(sessions) == 0 {
		sessions = session.Generate(block, r.now())
		if err := store.ReplaceSessions(ctx, block.ID, sessions); err != nil {
			return nil, fmt.Errorf("saving generated sessions: %w", err)
		}
	}
	r.sessions = sessions
	r.weeks = session.SessionsToRunWeeks(block, sessions)
	if len(r.weeks) == 0 {
		return nil, ErrNoRunnableWeeks
	}
	r.active = r.firstIncompleteWeek()
	r.lastCommitted = r.active
	return r, nil
}

func (r *Run) firstIncompleteWeek() int {
	for i := range r.weeks {
		if !r.weeks[i].IsCompleted() {
			return i
		}
	}
	if len(r.weeks) == 0 {
		return 0
	}
	return len(r.weeks) - 1
}

func (r *Run) Block() *domain.Block { return r.block }

// Weeks returns a copy of the current run state.
func (r *Run) Weeks() []domain.RunWeekState { return domain.CloneWeeks(r.weeks) }

func (r *Run) Sessions() []domain.WorkoutSession { return r.sessions }

func (r *Run) ActiveWeek() int { return r.active }

func (r *Run) LastCommittedWeek() int { return r.lastCommitted }

// WeekPosition maps a 0-based block week index to its position in Weeks.
// Weeks without sessions have no position.
func (r *Run) WeekPosition(index int) (int, error) {
	for i := range r.weeks {
		if r.weeks[i].Index == index {
			return i, nil
		}
	}
	return 0, fmt.Errorf("week %d has no sessions: %w", index+1, ErrOutOfRange)
}

// WeekIndex returns the 0-based block week index of the week at pos.
func (r *Run) WeekIndex(pos int) int { return r.weeks[pos].Index }

// PendingSkip returns the week a blocked forward move was aiming for.
func (r *Run) PendingSkip() (int, bool) { return r.pendingSkip, r.hasPending }

// SelectWeek moves the active week. Moving forward past the committed week
// while any week up to it is incomplete leaves the active week unchanged,
// records the target as pending, and returns ErrSkipConfirmationRequired.
// Any other move commits the target.
func (r *Run) SelectWeek(target int) error {
	if target < 0 || target >= len(r.weeks) {
		return outOfRange("week", target, len(r.weeks))
	}
	if target > r.lastCommitted && r.incompleteThrough(r.lastCommitted) {
		r.pendingSkip = target
		r.hasPending = true
		return ErrSkipConfirmationRequired
	}
	r.hasPending = false
	r.active = target
	r.lastCommitted = target
	return nil
}

func (r *Run) incompleteThrough(last int) bool {
	for i := 0; i <= last && i < len(r.weeks); i++ {
		if !r.weeks[i].IsCompleted() {
			return true
		}
	}
	return false
}

// ConfirmSkip completes the pending forward move.
func (r *Run) ConfirmSkip() error {
	if !r.hasPending {
		return ErrNoPendingSkip
	}
	r.active = r.pendingSkip
	r.lastCommitted = r.pendingSkip
	r.hasPending = false
	return nil
}

func (r *Run) CancelSkip() {
	r.hasPending = false
}

// mutate applies fn to the run state, saves immediately, and reports the
// completion transition the change caused. When fn or the save fails the
// run state is restored to what it was before.
func (r *Run) mutate(ctx context.Context, fn func(now time.Time) error) (Transition, error) {
	prev := domain.CloneWeeks(r.weeks)
	if err := fn(r.now().UTC()); err != nil {
		r.weeks = prev
		return Transition{}, err
	}
	if err := r.save(ctx); err != nil {
		r.weeks = prev
		return Transition{}, err
	}
	return DetectTransition(prev, r.weeks), nil
}

func (r *Run) save(ctx context.Context) error {
	sessions := session.RunWeeksToSessions(r.block, r.weeks, r.sessions, r.now())
	if err := r.store.ReplaceSessions(ctx, r.block.ID, sessions); err != nil {
		return fmt.Errorf("saving sessions: %w", err)
	}
	r.sessions = sessions
	r.weeks = session.SessionsToRunWeeks(r.block, sessions)
	return nil
}

// Close writes the run state, reloads it, and checks that week and set
// counts survived. A mismatch returns a *SaveIntegrityError.
func (r *Run) Close(ctx context.Context) error {
	want := session.ComputeMetrics(r.weeks)
	if err := r.save(ctx); err != nil {
		return err
	}

	reloaded, err := r.store.SessionsForBlock(ctx, r.block.ID)
	if err != nil {
		return fmt.Errorf("reloading sessions: %w", err)
	}
	got := session.ComputeMetrics(session.SessionsToRunWeeks(r.block, reloaded))

	switch {
	case got.Weeks != want.Weeks:
		return &SaveIntegrityError{Field: "week count", Expected: want.Weeks, Actual: got.Weeks}
	case got.CompletedSets != want.CompletedSets:
		return &SaveIntegrityError{Field: "completed sets", Expected: want.CompletedSets, Actual: got.CompletedSets}
	case got.TotalSets != want.TotalSets:
		return &SaveIntegrityError{Field: "total sets", Expected: want.TotalSets, Actual: got.TotalSets}
	}
	return nil
}
