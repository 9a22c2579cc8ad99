package domain

import "strings"

// enumTable resolves user-supplied enum strings regardless of casing and
// separators, so "pressHorizontal", "press_horizontal", "Press Horizontal"
// and "presshorizontal" all land on the same value.
type enumTable[T ~string] map[string]T

func newEnumTable[T ~string](values []T, aliases map[string]T) enumTable[T] {
	t := make(enumTable[T], len(values)+len(aliases))
	for _, v := range values {
		t[normalizeEnumKey(string(v))] = v
	}
	for alias, v := range aliases {
		t[normalizeEnumKey(alias)] = v
	}
	return t
}

func (t enumTable[T]) lookup(s string) (T, bool) {
	v, ok := t[normalizeEnumKey(s)]
	return v, ok
}

// normalizeEnumKey lowercases s and drops everything that is not a letter or digit.
func normalizeEnumKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var exerciseTypes = newEnumTable(
	[]ExerciseType{ExerciseStrength, ExerciseConditioning, ExerciseMixed, ExerciseOther},
	map[string]ExerciseType{
		"lifting": ExerciseStrength, "weights": ExerciseStrength, "resistance": ExerciseStrength,
		"cardio": ExerciseConditioning, "metcon": ExerciseConditioning, "endurance": ExerciseConditioning,
		"hybrid": ExerciseMixed,
	},
)

var exerciseCategories = newEnumTable(
	[]ExerciseCategory{
		CategorySquat, CategoryHinge, CategoryPressHorizontal, CategoryPressVertical,
		CategoryPullHorizontal, CategoryPullVertical, CategoryCarry, CategoryCore,
		CategoryOlympic, CategoryConditioning, CategoryMobility, CategoryMixed, CategoryOther,
	},
	map[string]ExerciseCategory{
		"horizontal press": CategoryPressHorizontal, "bench": CategoryPressHorizontal,
		"vertical press": CategoryPressVertical, "overhead": CategoryPressVertical,
		"horizontal pull": CategoryPullHorizontal, "row": CategoryPullHorizontal,
		"vertical pull": CategoryPullVertical,
		"deadlift": CategoryHinge, "olympic lift": CategoryOlympic, "oly": CategoryOlympic,
		"abs": CategoryCore, "accessory": CategoryOther,
	},
)

var conditioningTypes = newEnumTable(
	[]ConditioningType{
		ConditioningMonostructural, ConditioningMixedModal, ConditioningIntervals,
		ConditioningEMOM, ConditioningAMRAP, ConditioningForTime, ConditioningSteadyState,
		ConditioningTabata, ConditioningOther,
	},
	map[string]ConditioningType{
		"mono": ConditioningMonostructural, "interval": ConditioningIntervals,
		"hiit": ConditioningIntervals, "ft": ConditioningForTime, "rft": ConditioningForTime,
		"liss": ConditioningSteadyState, "zone2": ConditioningSteadyState, "steady": ConditioningSteadyState,
		"chipper": ConditioningMixedModal, "mixed": ConditioningMixedModal,
	},
)

var segmentTypes = newEnumTable(
	[]SegmentType{
		SegmentWarmup, SegmentMobility, SegmentTechnique, SegmentDrill, SegmentPositionalSpar,
		SegmentRolling, SegmentCooldown, SegmentLecture, SegmentBreathwork, SegmentPractice,
		SegmentPresentation, SegmentReview, SegmentDemonstration, SegmentOther,
	},
	map[string]SegmentType{
		"warm-up": SegmentWarmup, "warm up": SegmentWarmup,
		"positional sparring": SegmentPositionalSpar, "spar": SegmentPositionalSpar,
		"sparring": SegmentRolling, "live": SegmentRolling, "randori": SegmentRolling,
		"cool-down": SegmentCooldown, "talk": SegmentLecture, "breathing": SegmentBreathwork,
		"flow": SegmentPractice, "demo": SegmentDemonstration,
	},
)

// ParseExerciseType resolves s to an ExerciseType.
func ParseExerciseType(s string) (ExerciseType, bool) { return exerciseTypes.lookup(s) }

// ParseExerciseCategory resolves s to an ExerciseCategory.
func ParseExerciseCategory(s string) (ExerciseCategory, bool) { return exerciseCategories.lookup(s) }

// ParseConditioningType resolves s to a ConditioningType.
func ParseConditioningType(s string) (ConditioningType, bool) { return conditioningTypes.lookup(s) }

// ParseSegmentType resolves s to a SegmentType.
func ParseSegmentType(s string) (SegmentType, bool) { return segmentTypes.lookup(s) }

// ExerciseTypeOrDefault resolves s, falling back to strength.
func ExerciseTypeOrDefault(s string) ExerciseType {
	if t, ok := ParseExerciseType(s); ok {
		return t
	}
	return ExerciseStrength
}

// SegmentTypeOrDefault resolves s, falling back to other.
func SegmentTypeOrDefault(s string) SegmentType {
	if t, ok := ParseSegmentType(s); ok {
		return t
	}
	return SegmentOther
}

// goalKeywords is checked in order; the first keyword contained in the
// lowercased input decides the goal.
var goalKeywords = []struct {
	keyword string
	goal    TrainingGoal
}{
	{"deload", GoalDeload},
	{"recovery", GoalDeload},
	{"peak", GoalPeaking},
	{"hypertrophy", GoalHypertrophy},
	{"muscle", GoalHypertrophy},
	{"size", GoalHypertrophy},
	{"power", GoalPower},
	{"explosive", GoalPower},
	{"strength", GoalStrength},
	{"strong", GoalStrength},
	{"endurance", GoalEndurance},
	{"conditioning", GoalConditioning},
	{"cardio", GoalConditioning},
	{"fat loss", GoalConditioning},
	{"metcon", GoalConditioning},
	{"mobility", GoalMobility},
	{"flexibility", GoalMobility},
	{"hybrid", GoalMixed},
	{"mixed", GoalMixed},
	{"general", GoalMixed},
}

// MatchTrainingGoal finds a goal by case-insensitive substring. Unmatched
// input yields false, never an error.
func MatchTrainingGoal(s string) (TrainingGoal, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return "", false
	}
	for _, kw := range goalKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.goal, true
		}
	}
	return "", false
}
