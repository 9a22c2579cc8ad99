package testutil

import (
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/google/uuid"
)

// Block options
type BlockOption func(*domain.Block)

func WithWeeks(n int) BlockOption {
	return func(b *domain.Block) {
		b.NumberOfWeeks = n
	}
}

func WithDays(days ...domain.DayTemplate) BlockOption {
	return func(b *domain.Block) {
		b.Days = days
	}
}

func WithWeekTemplates(weeks ...[]domain.DayTemplate) BlockOption {
	return func(b *domain.Block) {
		b.WeekTemplates = weeks
	}
}

func WithSource(s domain.BlockSource) BlockOption {
	return func(b *domain.Block) {
		b.Source = s
	}
}

func WithCreatedAt(t time.Time) BlockOption {
	return func(b *domain.Block) {
		b.CreatedAt = t
		b.UpdatedAt = t
	}
}

// NewTestBlock returns a block with one strength day unless options
// replace the days.
func NewTestBlock(name string, opts ...BlockOption) *domain.Block {
	now := time.Now().UTC().Truncate(time.Second)
	b := &domain.Block{
		ID:            uuid.New().String(),
		Name:          name,
		NumberOfWeeks: 2,
		Days:          []domain.DayTemplate{NewTestDay("Lower", NewTestStrength("Back Squat", 3, 5))},
		Source:        domain.SourceUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func NewTestDay(name string, exercises ...domain.ExerciseTemplate) domain.DayTemplate {
	return domain.DayTemplate{
		ID:        uuid.New().String(),
		Name:      name,
		Exercises: exercises,
	}
}

// NewTestStrength returns a strength exercise of sets x reps.
func NewTestStrength(name string, sets, reps int) domain.ExerciseTemplate {
	ex := domain.ExerciseTemplate{
		ID:           uuid.New().String(),
		CustomName:   name,
		Type:         domain.ExerciseStrength,
		StrengthSets: domain.BlankStrengthSets(sets),
	}
	for i := range ex.StrengthSets {
		ex.StrengthSets[i].Reps = domain.IntPtr(reps)
	}
	return ex
}

// NewTestConditioning returns a conditioning exercise of sets intervals.
func NewTestConditioning(name string, sets, seconds int) domain.ExerciseTemplate {
	ex := domain.ExerciseTemplate{
		ID:               uuid.New().String(),
		CustomName:       name,
		Type:             domain.ExerciseConditioning,
		ConditioningSets: domain.BlankConditioningSets(sets),
	}
	for i := range ex.ConditioningSets {
		ex.ConditioningSets[i].DurationSeconds = domain.IntPtr(seconds)
	}
	return ex
}

func NewTestDefinition(name string, aliases ...string) *domain.ExerciseDefinition {
	return &domain.ExerciseDefinition{
		ID:      uuid.New().String(),
		Name:    name,
		Type:    domain.ExerciseStrength,
		Aliases: aliases,
	}
}
