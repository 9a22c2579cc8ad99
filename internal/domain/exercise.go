package domain

// ExerciseTemplate is one planned exercise within a day.
type ExerciseTemplate struct {
	ID                   string                    `json:"id"`
	ExerciseDefinitionID string                    `json:"exerciseDefinitionId,omitempty"`
	CustomName           string                    `json:"customName,omitempty"`
	Type                 ExerciseType              `json:"type"`
	Category             ExerciseCategory          `json:"category,omitempty"`
	ConditioningType     ConditioningType          `json:"conditioningType,omitempty"`
	Notes                string                    `json:"notes,omitempty"`
	SetGroupID           string                    `json:"setGroupId,omitempty"`
	StrengthSets         []StrengthSetTemplate     `json:"strengthSets,omitempty"`
	ConditioningSets     []ConditioningSetTemplate `json:"conditioningSets,omitempty"`
	Progression          ProgressionRule           `json:"progression"`
}

// Name is the display name of the exercise.
func (e *ExerciseTemplate) Name() string {
	if e.CustomName != "" {
		return e.CustomName
	}
	return "Exercise"
}

// SetCount is the number of planned sets of either kind.
func (e *ExerciseTemplate) SetCount() int {
	return len(e.StrengthSets) + len(e.ConditioningSets)
}

type StrengthSetTemplate struct {
	Index           int      `json:"index"`
	Reps            *int     `json:"reps,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	PercentageOfMax *float64 `json:"percentageOfMax,omitempty"` // 0–1 fraction
	RPE             *float64 `json:"rpe,omitempty"`
	RIR             *float64 `json:"rir,omitempty"`
	Tempo           string   `json:"tempo,omitempty"`
	RestSeconds     *int     `json:"restSeconds,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

type ConditioningSetTemplate struct {
	Index            int      `json:"index"`
	DurationSeconds  *int     `json:"durationSeconds,omitempty"`
	DistanceMeters   *float64 `json:"distanceMeters,omitempty"`
	Calories         *float64 `json:"calories,omitempty"`
	Rounds           *int     `json:"rounds,omitempty"`
	TargetPace       string   `json:"targetPace,omitempty"`
	EffortDescriptor string   `json:"effortDescriptor,omitempty"`
	RestSeconds      *int     `json:"restSeconds,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// ExerciseDefinition is an entry in the global exercise library.
type ExerciseDefinition struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     ExerciseType     `json:"type"`
	Category ExerciseCategory `json:"category,omitempty"`
	Aliases  []string         `json:"aliases,omitempty"`
}

// BlankStrengthSets returns n strength sets with no targets.
func BlankStrengthSets(n int) []StrengthSetTemplate {
	sets := make([]StrengthSetTemplate, n)
	for i := range sets {
		sets[i].Index = i
	}
	return sets
}

// BlankConditioningSets returns n conditioning sets with no targets.
func BlankConditioningSets(n int) []ConditioningSetTemplate {
	sets := make([]ConditioningSetTemplate, n)
	for i := range sets {
		sets[i].Index = i
	}
	return sets
}
