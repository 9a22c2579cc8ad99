package domain

import "time"

// RunWeekState is the live state of one week in run mode. Index is
// 0-based, unlike WorkoutSession.WeekIndex.
type RunWeekState struct {
	Index           int           `json:"index"`
	Days            []RunDayState `json:"days"`
	WeekCompletedAt *time.Time    `json:"weekCompletedAt,omitempty"`
}

type RunDayState struct {
	DayTemplateID string             `json:"dayTemplateId"`
	SessionID     string             `json:"sessionId,omitempty"`
	Name          string             `json:"name"`
	ShortCode     string             `json:"shortCode,omitempty"`
	Exercises     []RunExerciseState `json:"exercises"`
	Segments      []RunSegmentState  `json:"segments,omitempty"`
}

type RunExerciseState struct {
	ID                 string        `json:"id"`
	ExerciseTemplateID string        `json:"exerciseTemplateId,omitempty"`
	Name               string        `json:"name"`
	Type               ExerciseType  `json:"type"`
	SetGroupID         string        `json:"setGroupId,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	Sets               []RunSetState `json:"sets"`
	// TypeOverridden marks a type that no longer matches the template.
	TypeOverridden bool `json:"typeOverridden,omitempty"`
}

type RunSetState struct {
	ID    string `json:"id"`
	Index int    `json:"index"`

	ExpectedReps     *int     `json:"expectedReps,omitempty"`
	ExpectedWeight   *float64 `json:"expectedWeight,omitempty"`
	ExpectedPercent  *float64 `json:"expectedPercent,omitempty"`
	ExpectedTime     *int     `json:"expectedTime,omitempty"`
	ExpectedDistance *float64 `json:"expectedDistance,omitempty"`
	ExpectedCalories *float64 `json:"expectedCalories,omitempty"`
	ExpectedRounds   *int     `json:"expectedRounds,omitempty"`
	ExpectedRPE      *float64 `json:"expectedRpe,omitempty"`
	ExpectedRIR      *float64 `json:"expectedRir,omitempty"`
	ExpectedPace     string   `json:"expectedPace,omitempty"`

	Reps     *int     `json:"reps,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Time     *int     `json:"time,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
	Rounds   *int     `json:"rounds,omitempty"`

	RPE         *float64   `json:"rpe,omitempty"`
	RIR         *float64   `json:"rir,omitempty"`
	Tempo       string     `json:"tempo,omitempty"`
	RestSeconds *int       `json:"restSeconds,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type RunSegmentState struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	SegmentType     SegmentType `json:"segmentType"`
	DurationMinutes *int        `json:"durationMinutes,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	IsCompleted     bool        `json:"isCompleted"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
}

// ComputedCompleted reports whether every set and segment of the week is
// complete. A week with nothing to do is not complete.
func (w *RunWeekState) ComputedCompleted() bool {
	items := 0
	for _, d := range w.Days {
		for _, ex := range d.Exercises {
			for _, s := range ex.Sets {
				items++
				if !s.IsCompleted {
					return false
				}
			}
		}
		for _, seg := range d.Segments {
			items++
			if !seg.IsCompleted {
				return false
			}
		}
	}
	return items > 0
}

// IsCompleted honors a manual completion override before the computed value.
func (w *RunWeekState) IsCompleted() bool {
	if w.WeekCompletedAt != nil {
		return true
	}
	return w.ComputedCompleted()
}

// HasProgress reports whether any set has a completion flag or a logged value.
func (e *RunExerciseState) HasProgress() bool {
	for _, s := range e.Sets {
		if s.IsCompleted || s.Reps != nil || s.Weight != nil || s.Time != nil ||
			s.Distance != nil || s.Calories != nil || s.Rounds != nil {
			return true
		}
	}
	return false
}

// CloneWeeks deep-copies run state so a snapshot can be diffed after mutation.
func CloneWeeks(weeks []RunWeekState) []RunWeekState {
	out := make([]RunWeekState, len(weeks))
	for i, w := range weeks {
		out[i] = w
		out[i].Days = make([]RunDayState, len(w.Days))
		for d, day := range w.Days {
			out[i].Days[d] = day
			out[i].Days[d].Exercises = make([]RunExerciseState, len(day.Exercises))
			for e, ex := range day.Exercises {
				out[i].Days[d].Exercises[e] = ex
				out[i].Days[d].Exercises[e].Sets = append([]RunSetState(nil), ex.Sets...)
			}
			out[i].Days[d].Segments = append([]RunSegmentState(nil), day.Segments...)
		}
	}
	return out
}
