package domain

import "time"

// WorkoutSession is the persisted instance of one day in one week.
// WeekIndex is 1-based.
type WorkoutSession struct {
	ID            string            `json:"id"`
	BlockID       string            `json:"blockId"`
	WeekIndex     int               `json:"weekIndex"`
	DayTemplateID string            `json:"dayTemplateId"`
	DayName       string            `json:"dayName,omitempty"`
	Date          *time.Time        `json:"date,omitempty"`
	Status        SessionStatus     `json:"status"`
	Exercises     []SessionExercise `json:"exercises"`
	Segments      []SessionSegment  `json:"segments,omitempty"`
	// WeekCompletedAt mirrors the manual week completion override onto
	// every session of the week.
	WeekCompletedAt *time.Time `json:"weekCompletedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SessionExercise holds parallel expected and logged set lists.
// ExpectedSets is frozen at generation time; LoggedSets is mutated while
// the session runs.
type SessionExercise struct {
	ID                   string `json:"id"`
	ExerciseTemplateID   string `json:"exerciseTemplateId,omitempty"`
	ExerciseDefinitionID string `json:"exerciseDefinitionId,omitempty"`
	CustomName           string `json:"customName,omitempty"`
	// Type is only set when the session diverges from its template (type
	// changed in run mode, or an exercise added without a template).
	Type         ExerciseType `json:"type,omitempty"`
	SetGroupID   string       `json:"setGroupId,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	ExpectedSets []SessionSet `json:"expectedSets"`
	LoggedSets   []SessionSet `json:"loggedSets"`
}

type SessionSet struct {
	ID    string `json:"id"`
	Index int    `json:"index"`

	ExpectedReps     *int     `json:"expectedReps,omitempty"`
	ExpectedWeight   *float64 `json:"expectedWeight,omitempty"`
	ExpectedPercent  *float64 `json:"expectedPercent,omitempty"`
	ExpectedTime     *int     `json:"expectedTime,omitempty"` // seconds
	ExpectedDistance *float64 `json:"expectedDistance,omitempty"`
	ExpectedCalories *float64 `json:"expectedCalories,omitempty"`
	ExpectedRounds   *int     `json:"expectedRounds,omitempty"`
	ExpectedRPE      *float64 `json:"expectedRpe,omitempty"`
	ExpectedRIR      *float64 `json:"expectedRir,omitempty"`
	ExpectedPace     string   `json:"expectedPace,omitempty"`

	LoggedReps     *int     `json:"loggedReps,omitempty"`
	LoggedWeight   *float64 `json:"loggedWeight,omitempty"`
	LoggedTime     *int     `json:"loggedTime,omitempty"`
	LoggedDistance *float64 `json:"loggedDistance,omitempty"`
	LoggedCalories *float64 `json:"loggedCalories,omitempty"`
	LoggedRounds   *int     `json:"loggedRounds,omitempty"`

	RPE         *float64   `json:"rpe,omitempty"`
	RIR         *float64   `json:"rir,omitempty"`
	Tempo       string     `json:"tempo,omitempty"`
	RestSeconds *int       `json:"restSeconds,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type SessionSegment struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	SegmentType     SegmentType `json:"segmentType"`
	DurationMinutes *int        `json:"durationMinutes,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	IsCompleted     bool        `json:"isCompleted"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
}

// SetCounts returns the total and completed logged set counts plus the
// completed segment count.
func (s *WorkoutSession) SetCounts() (total, completed int) {
	for _, ex := range s.Exercises {
		for _, set := range ex.LoggedSets {
			total++
			if set.IsCompleted {
				completed++
			}
		}
	}
	for _, seg := range s.Segments {
		total++
		if seg.IsCompleted {
			completed++
		}
	}
	return total, completed
}

// RecomputeStatus derives the status from set and segment completion:
// completed iff everything is done, in progress iff anything is.
func (s *WorkoutSession) RecomputeStatus() {
	total, completed := s.SetCounts()
	switch {
	case total > 0 && completed == total:
		s.Status = SessionCompleted
	case completed > 0:
		s.Status = SessionInProgress
	default:
		s.Status = SessionNotStarted
	}
}

// HasProgress reports whether the set has been completed or carries any logged value.
func (s *SessionSet) HasProgress() bool {
	return s.IsCompleted || s.LoggedReps != nil || s.LoggedWeight != nil || s.LoggedTime != nil ||
		s.LoggedDistance != nil || s.LoggedCalories != nil || s.LoggedRounds != nil
}
