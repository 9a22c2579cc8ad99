package autoprogram

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrNoWeeks = errors.New("program needs at least one week")
	ErrNoDays  = errors.New("program needs at least one day")
)

// MissingTrainingMaxError names a main lift with no training max.
type MissingTrainingMaxError struct {
	Lift string
}

func (e *MissingTrainingMaxError) Error() string {
	return fmt.Sprintf("missing training max for %q", e.Lift)
}

// Generate builds a block with one week template per week. It validates
// the whole config before building anything.
func Generate(cfg Config, now time.Time) (*domain.Block, error) {
	cfg.applyDefaults()
	if cfg.Weeks < 1 {
		return nil, ErrNoWeeks
	}
	if len(cfg.Days) == 0 {
		return nil, ErrNoDays
	}
	for _, day := range cfg.Days {
		for _, slot := range day.Slots {
			if strings.TrimSpace(slot.Lift) == "" {
				return nil, fmt.Errorf("day %q: slot lift is required", day.Name)
			}
			if slot.Kind != SlotMain {
				continue
			}
			if _, ok := cfg.trainingMax(slot.Lift); !ok {
				return nil, &MissingTrainingMaxError{Lift: slot.Lift}
			}
		}
	}

	now = now.UTC()
	weeks := make([][]domain.DayTemplate, cfg.Weeks)
	waveIndex := 0
	for w := range weeks {
		deload := cfg.IsDeloadWeek(w)
		step := cfg.Deload
		if !deload {
			step = cfg.Wave[waveIndex%len(cfg.Wave)]
			waveIndex++
		}
		weeks[w] = cfg.buildWeek(step, deload)
	}

	return &domain.Block{
		ID:            uuid.New().String(),
		Name:          cfg.Name,
		Description:   fmt.Sprintf("%d-week percentage wave", cfg.Weeks),
		NumberOfWeeks: cfg.Weeks,
		Days:          domain.CloneDays(weeks[0]),
		WeekTemplates: weeks,
		Source:        domain.SourceUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsDeloadWeek reports whether the 0-based week is a deload.
func (c *Config) IsDeloadWeek(week int) bool {
	return c.DeloadEvery > 0 && (week+1)%c.DeloadEvery == 0
}

func (c *Config) trainingMax(lift string) (float64, bool) {
	if tm, ok := c.TrainingMaxes[lift]; ok && tm > 0 {
		return tm, true
	}
	for name, tm := range c.TrainingMaxes {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(lift)) && tm > 0 {
			return tm, true
		}
	}
	return 0, false
}

func (c *Config) buildWeek(step WaveStep, deload bool) []domain.DayTemplate {
	days := make([]domain.DayTemplate, 0, len(c.Days))
	for _, dc := range c.Days {
		day := domain.DayTemplate{
			ID:        uuid.New().String(),
			Name:      dc.Name,
			ShortCode: dc.ShortCode,
			Exercises: make([]domain.ExerciseTemplate, 0, len(dc.Slots)),
		}
		if deload {
			goal := domain.GoalDeload
			day.Goal = &goal
		}
		for _, slot := range dc.Slots {
			day.Exercises = append(day.Exercises, c.buildExercise(slot, step, deload))
		}
		days = append(days, day)
	}
	return days
}

func (c *Config) buildExercise(slot SlotConfig, step WaveStep, deload bool) domain.ExerciseTemplate {
	ex := domain.ExerciseTemplate{
		ID:         uuid.New().String(),
		CustomName: strings.TrimSpace(slot.Lift),
		Type:       domain.ExerciseStrength,
	}

	if slot.Kind != SlotMain {
		sets := positive(slot.Sets, 3)
		if deload {
			sets = positive(sets/2, 1)
		}
		ex.StrengthSets = domain.BlankStrengthSets(sets)
		for i := range ex.StrengthSets {
			ex.StrengthSets[i].Reps = domain.IntPtr(positive(slot.Reps, 10))
		}
		return ex
	}

	tm, _ := c.trainingMax(slot.Lift)
	weight := roundToStep(tm*step.Percent/100, c.Increment)
	ex.StrengthSets = domain.BlankStrengthSets(positive(step.Sets, positive(slot.Sets, 3)))
	for i := range ex.StrengthSets {
		ex.StrengthSets[i].Reps = domain.IntPtr(positive(step.Reps, positive(slot.Reps, 5)))
		ex.StrengthSets[i].Weight = domain.FloatPtr(weight)
		ex.StrengthSets[i].PercentageOfMax = domain.FloatPtr(step.Percent / 100)
	}
	ex.Progression = domain.ProgressionRule{
		Type:       domain.ProgressionCustom,
		Parameters: map[string]string{"description": fmt.Sprintf("%g%% of training max", step.Percent)},
	}
	return ex
}

func roundToStep(weight, step float64) float64 {
	return math.Round(weight/step) * step
}

func positive(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
