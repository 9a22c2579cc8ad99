package runmode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/session"
	"github.com/google/uuid"
)

// ExerciseRef addresses one exercise in run state.
type ExerciseRef struct {
	Week     int
	Day      int
	Exercise int
}

// SetRef addresses one set in run state.
type SetRef struct {
	ExerciseRef
	Set int
}

// SegmentRef addresses one segment in run state.
type SegmentRef struct {
	Week    int
	Day     int
	Segment int
}

// SetUpdate carries the fields to change on a set; nil fields are left
// as they are.
type SetUpdate struct {
	Reps        *int
	Weight      *float64
	Time        *int
	Distance    *float64
	Calories    *float64
	Rounds      *int
	RPE         *float64
	RIR         *float64
	Tempo       *string
	RestSeconds *int
	Notes       *string
	Completed   *bool
}

// NewExercise describes an exercise added mid-run.
type NewExercise struct {
	Name            string
	Type            domain.ExerciseType
	Sets            int
	Reps            *int
	Weight          *float64
	DurationSeconds *int
}

func (r *Run) day(week, day int) (*domain.RunDayState, error) {
	if week < 0 || week >= len(r.weeks) {
		return nil, outOfRange("week", week, len(r.weeks))
	}
	days := r.weeks[week].Days
	if day < 0 || day >= len(days) {
		return nil, outOfRange("day", day, len(days))
	}
	return &days[day], nil
}

func (r *Run) exercise(ref ExerciseRef) (*domain.RunExerciseState, error) {
	d, err := r.day(ref.Week, ref.Day)
	if err != nil {
		return nil, err
	}
	if ref.Exercise < 0 || ref.Exercise >= len(d.Exercises) {
		return nil, outOfRange("exercise", ref.Exercise, len(d.Exercises))
	}
	return &d.Exercises[ref.Exercise], nil
}

func (r *Run) set(ref SetRef) (*domain.RunSetState, error) {
	ex, err := r.exercise(ref.ExerciseRef)
	if err != nil {
		return nil, err
	}
	if ref.Set < 0 || ref.Set >= len(ex.Sets) {
		return nil, outOfRange("set", ref.Set, len(ex.Sets))
	}
	return &ex.Sets[ref.Set], nil
}

// UpdateSet applies u to one set and saves.
func (r *Run) UpdateSet(ctx context.Context, ref SetRef, u SetUpdate) (Transition, error) {
	return r.mutate(ctx, func(now time.Time) error {
		s, err := r.set(ref)
		if err != nil {
			return err
		}
		applyUpdate(s, u, now)
		return nil
	})
}

func applyUpdate(s *domain.RunSetState, u SetUpdate, now time.Time) {
	if u.Reps != nil {
		s.Reps = domain.CopyInt(u.Reps)
	}
	if u.Weight != nil {
		s.Weight = domain.CopyFloat(u.Weight)
	}
	if u.Time != nil {
		s.Time = domain.CopyInt(u.Time)
	}
	if u.Distance != nil {
		s.Distance = domain.CopyFloat(u.Distance)
	}
	if u.Calories != nil {
		s.Calories = domain.CopyFloat(u.Calories)
	}
	if u.Rounds != nil {
		s.Rounds = domain.CopyInt(u.Rounds)
	}
	if u.RPE != nil {
		s.RPE = domain.CopyFloat(u.RPE)
	}
	if u.RIR != nil {
		s.RIR = domain.CopyFloat(u.RIR)
	}
	if u.Tempo != nil {
		s.Tempo = *u.Tempo
	}
	if u.RestSeconds != nil {
		s.RestSeconds = domain.CopyInt(u.RestSeconds)
	}
	if u.Notes != nil {
		s.Notes = *u.Notes
	}
	if u.Completed != nil {
		markSet(s, *u.Completed, now)
	}
}

func markSet(s *domain.RunSetState, done bool, now time.Time) {
	if s.IsCompleted == done {
		return
	}
	s.IsCompleted = done
	if done {
		at := now
		s.CompletedAt = &at
	} else {
		s.CompletedAt = nil
	}
}

// ToggleSet flips a set's completion and saves.
func (r *Run) ToggleSet(ctx context.Context, ref SetRef) (Transition, error) {
	return r.mutate(ctx, func(now time.Time) error {
		s, err := r.set(ref)
		if err != nil {
			return err
		}
		markSet(s, !s.IsCompleted, now)
		return nil
	})
}

// CompleteSegment sets a segment's completion and saves.
func (r *Run) CompleteSegment(ctx context.Context, ref SegmentRef, done bool) (Transition, error) {
	return r.mutate(ctx, func(now time.Time) error {
		d, err := r.day(ref.Week, ref.Day)
		if err != nil {
			return err
		}
		if ref.Segment < 0 || ref.Segment >= len(d.Segments) {
			return outOfRange("segment", ref.Segment, len(d.Segments))
		}
		seg := &d.Segments[ref.Segment]
		if seg.IsCompleted == done {
			return nil
		}
		seg.IsCompleted = done
		if done {
			at := now
			seg.CompletedAt = &at
		} else {
			seg.CompletedAt = nil
		}
		return nil
	})
}

// MarkWeekComplete sets the manual completion override for a week.
func (r *Run) MarkWeekComplete(ctx context.Context, week int) (Transition, error) {
	return r.mutate(ctx, func(now time.Time) error {
		if week < 0 || week >= len(r.weeks) {
			return outOfRange("week", week, len(r.weeks))
		}
		if r.weeks[week].WeekCompletedAt == nil {
			at := now
			r.weeks[week].WeekCompletedAt = &at
		}
		return nil
	})
}

// ClearWeekOverride drops the manual override so completion is computed
// from the sets again.
func (r *Run) ClearWeekOverride(ctx context.Context, week int) (Transition, error) {
	return r.mutate(ctx, func(time.Time) error {
		if week < 0 || week >= len(r.weeks) {
			return outOfRange("week", week, len(r.weeks))
		}
		r.weeks[week].WeekCompletedAt = nil
		return nil
	})
}

// AddExercise appends an exercise to one day. With propagate set and
// later weeks present, the exercise is also written into the block's day
// template and backfilled into every later week's generated session for
// the same day position, skipping weeks that already hold it. Sessions
// are saved before the template; if either write fails nothing changes.
func (r *Run) AddExercise(ctx context.Context, week, day int, ne NewExercise, propagate bool) (Transition, error) {
	if strings.TrimSpace(ne.Name) == "" {
		return Transition{}, ErrExerciseNameRequired
	}
	if _, err := r.day(week, day); err != nil {
		return Transition{}, err
	}
	if ne.Type == "" {
		ne.Type = domain.ExerciseStrength
	}
	if !propagate || week >= len(r.weeks)-1 {
		return r.mutate(ctx, func(time.Time) error {
			d := &r.weeks[week].Days[day]
			d.Exercises = append(d.Exercises, runExercise(ne, ""))
			return nil
		})
	}

	next := r.block.Clone()
	tmpl, err := addTemplate(next, r.weeks[week].Index, day, ne)
	if err != nil {
		return Transition{}, err
	}

	prevBlock, prevSessions, prevWeeks := r.block, r.sessions, domain.CloneWeeks(r.weeks)
	r.block = next
	t, err := r.mutate(ctx, func(time.Time) error {
		d := &r.weeks[week].Days[day]
		d.Exercises = append(d.Exercises, runExercise(ne, tmpl.ID))
		r.backfill(week, day, ne, tmpl.ID)
		return nil
	})
	if err != nil {
		r.block = prevBlock
		return Transition{}, err
	}

	next.UpdatedAt = r.now().UTC()
	if err := r.blocks.Update(ctx, next); err != nil {
		err = fmt.Errorf("updating block template: %w", err)
		if rbErr := r.store.ReplaceSessions(ctx, prevBlock.ID, prevSessions); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("restoring sessions: %w", rbErr))
		}
		r.block, r.sessions, r.weeks = prevBlock, prevSessions, prevWeeks
		return Transition{}, err
	}
	return t, nil
}

// backfill adds the exercise to every later week's generated session at
// the same day position and returns how many weeks received it.
func (r *Run) backfill(week, day int, ne NewExercise, tmplID string) int {
	added := 0
	for w := week + 1; w < len(r.weeks); w++ {
		if day >= len(r.weeks[w].Days) {
			continue
		}
		future := &r.weeks[w].Days[day]
		if future.SessionID == "" || hasExercise(future, ne.Name, tmplID) {
			continue
		}
		future.Exercises = append(future.Exercises, runExercise(ne, tmplID))
		added++
	}
	return added
}

// addTemplate appends a template for ne to the day at position day of the
// block week with the given index.
func addTemplate(block *domain.Block, weekIndex, day int, ne NewExercise) (*domain.ExerciseTemplate, error) {
	days := block.DaysForWeek(weekIndex)
	if day >= len(days) {
		return nil, outOfRange("day", day, len(days))
	}
	tmpl := domain.ExerciseTemplate{
		ID:         uuid.New().String(),
		CustomName: strings.TrimSpace(ne.Name),
		Type:       ne.Type,
	}
	if ne.Type == domain.ExerciseConditioning {
		tmpl.ConditioningSets = domain.BlankConditioningSets(setCount(ne.Sets))
		for i := range tmpl.ConditioningSets {
			tmpl.ConditioningSets[i].DurationSeconds = domain.CopyInt(ne.DurationSeconds)
		}
	} else {
		tmpl.StrengthSets = domain.BlankStrengthSets(setCount(ne.Sets))
		for i := range tmpl.StrengthSets {
			tmpl.StrengthSets[i].Reps = domain.CopyInt(ne.Reps)
			tmpl.StrengthSets[i].Weight = domain.CopyFloat(ne.Weight)
		}
	}
	days[day].Exercises = append(days[day].Exercises, tmpl)
	return &tmpl, nil
}

func hasExercise(d *domain.RunDayState, name, tmplID string) bool {
	for _, ex := range d.Exercises {
		if ex.ExerciseTemplateID == tmplID && strings.EqualFold(ex.Name, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func setCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func runExercise(ne NewExercise, tmplID string) domain.RunExerciseState {
	ex := domain.RunExerciseState{
		ID:                 uuid.New().String(),
		ExerciseTemplateID: tmplID,
		Name:               strings.TrimSpace(ne.Name),
		Type:               ne.Type,
		Sets:               make([]domain.RunSetState, setCount(ne.Sets)),
	}
	for i := range ex.Sets {
		ex.Sets[i] = domain.RunSetState{ID: uuid.New().String(), Index: i}
		if ne.Type == domain.ExerciseConditioning {
			ex.Sets[i].ExpectedTime = domain.CopyInt(ne.DurationSeconds)
		} else {
			ex.Sets[i].ExpectedReps = domain.CopyInt(ne.Reps)
			ex.Sets[i].ExpectedWeight = domain.CopyFloat(ne.Weight)
		}
	}
	return ex
}

// ChangeExerciseType switches an exercise between kinds and replaces its
// sets with the same number of blank sets. An exercise with logged
// progress is only reset when confirmed is true.
func (r *Run) ChangeExerciseType(ctx context.Context, ref ExerciseRef, typ domain.ExerciseType, confirmed bool) (Transition, error) {
	ex, err := r.exercise(ref)
	if err != nil {
		return Transition{}, err
	}
	if ex.Type == typ {
		return Transition{}, nil
	}
	if ex.HasProgress() && !confirmed {
		return Transition{}, ErrTypeChangeNeedsConfirmation
	}

	return r.mutate(ctx, func(time.Time) error {
		ex, err := r.exercise(ref)
		if err != nil {
			return err
		}
		sets := make([]domain.RunSetState, setCount(len(ex.Sets)))
		for i := range sets {
			sets[i] = domain.RunSetState{ID: uuid.New().String(), Index: i}
		}
		ex.Type = typ
		ex.Sets = sets
		ex.TypeOverridden = ex.ExerciseTemplateID != "" && typ != templateType(r.block, ex.ExerciseTemplateID)
		return nil
	})
}

func templateType(block *domain.Block, id string) domain.ExerciseType {
	return session.ResolveType(block, &domain.SessionExercise{ExerciseTemplateID: id})
}
