// Package session expands blocks into persisted workout sessions and maps
// sessions to and from live run state.
//
// WorkoutSession.WeekIndex is 1-based; RunWeekState.Index is 0-based.
// Every crossing between the two converts explicitly.
package session

import (
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/google/uuid"
)

// Generate creates one session per week and day. Expected sets are frozen
// from the templates; logged sets start as blank copies carrying the same
// ids.
func Generate(block *domain.Block, now time.Time) []domain.WorkoutSession {
	now = now.UTC()
	var sessions []domain.WorkoutSession
	for week := 0; week < block.WeekCount(); week++ {
		for _, day := range block.DaysForWeek(week) {
			sessions = append(sessions, newSession(block.ID, week+1, day, now))
		}
	}
	return sessions
}

func newSession(blockID string, weekIndex int, day domain.DayTemplate, now time.Time) domain.WorkoutSession {
	s := domain.WorkoutSession{
		ID:            uuid.New().String(),
		BlockID:       blockID,
		WeekIndex:     weekIndex,
		DayTemplateID: day.ID,
		DayName:       day.Name,
		Status:        domain.SessionNotStarted,
		Exercises:     make([]domain.SessionExercise, 0, len(day.Exercises)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range day.Exercises {
		s.Exercises = append(s.Exercises, NewSessionExercise(&day.Exercises[i]))
	}
	for _, seg := range day.Segments {
		s.Segments = append(s.Segments, domain.SessionSegment{
			ID:              uuid.New().String(),
			Name:            seg.Name,
			SegmentType:     seg.SegmentType,
			DurationMinutes: domain.CopyInt(seg.DurationMinutes),
			Notes:           seg.Notes,
		})
	}
	return s
}

// NewSessionExercise instantiates a template for one session.
func NewSessionExercise(tmpl *domain.ExerciseTemplate) domain.SessionExercise {
	ex := domain.SessionExercise{
		ID:                   uuid.New().String(),
		ExerciseTemplateID:   tmpl.ID,
		ExerciseDefinitionID: tmpl.ExerciseDefinitionID,
		CustomName:           tmpl.CustomName,
		SetGroupID:           tmpl.SetGroupID,
		Notes:                tmpl.Notes,
		ExpectedSets:         ExpectedSets(tmpl),
	}
	ex.LoggedSets = BlankLoggedSets(ex.ExpectedSets)
	return ex
}

// ExpectedSets converts template sets into session sets with fresh ids.
func ExpectedSets(tmpl *domain.ExerciseTemplate) []domain.SessionSet {
	sets := make([]domain.SessionSet, 0, tmpl.SetCount())
	for _, s := range tmpl.StrengthSets {
		sets = append(sets, domain.SessionSet{
			ID:              uuid.New().String(),
			Index:           s.Index,
			ExpectedReps:    domain.CopyInt(s.Reps),
			ExpectedWeight:  domain.CopyFloat(s.Weight),
			ExpectedPercent: domain.CopyFloat(s.PercentageOfMax),
			ExpectedRPE:     domain.CopyFloat(s.RPE),
			ExpectedRIR:     domain.CopyFloat(s.RIR),
			Tempo:           s.Tempo,
			RestSeconds:     domain.CopyInt(s.RestSeconds),
			Notes:           s.Notes,
		})
	}
	for _, s := range tmpl.ConditioningSets {
		sets = append(sets, domain.SessionSet{
			ID:               uuid.New().String(),
			Index:            s.Index,
			ExpectedTime:     domain.CopyInt(s.DurationSeconds),
			ExpectedDistance: domain.CopyFloat(s.DistanceMeters),
			ExpectedCalories: domain.CopyFloat(s.Calories),
			ExpectedRounds:   domain.CopyInt(s.Rounds),
			ExpectedPace:     s.TargetPace,
			RestSeconds:      domain.CopyInt(s.RestSeconds),
			Notes:            s.Notes,
		})
	}
	return sets
}

// BlankLoggedSets copies expected sets with the targets kept and nothing
// logged.
func BlankLoggedSets(expected []domain.SessionSet) []domain.SessionSet {
	logged := make([]domain.SessionSet, len(expected))
	for i, s := range expected {
		logged[i] = domain.SessionSet{
			ID:               s.ID,
			Index:            s.Index,
			ExpectedReps:     domain.CopyInt(s.ExpectedReps),
			ExpectedWeight:   domain.CopyFloat(s.ExpectedWeight),
			ExpectedPercent:  domain.CopyFloat(s.ExpectedPercent),
			ExpectedTime:     domain.CopyInt(s.ExpectedTime),
			ExpectedDistance: domain.CopyFloat(s.ExpectedDistance),
			ExpectedCalories: domain.CopyFloat(s.ExpectedCalories),
			ExpectedRounds:   domain.CopyInt(s.ExpectedRounds),
			ExpectedRPE:      domain.CopyFloat(s.ExpectedRPE),
			ExpectedRIR:      domain.CopyFloat(s.ExpectedRIR),
			ExpectedPace:     s.ExpectedPace,
			Tempo:            s.Tempo,
			RestSeconds:      domain.CopyInt(s.RestSeconds),
			Notes:            s.Notes,
		}
	}
	return logged
}
