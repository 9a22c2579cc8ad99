package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExerciseCategory_SeparatorVariants(t *testing.T) {
	for _, in := range []string{"pressHorizontal", "press_horizontal", "presshorizontal", "Press Horizontal", "PRESS-HORIZONTAL"} {
		got, ok := ParseExerciseCategory(in)
		assert.True(t, ok, in)
		assert.Equal(t, CategoryPressHorizontal, got, in)
	}
}

func TestParseExerciseCategory_Unknown(t *testing.T) {
	_, ok := ParseExerciseCategory("juggling")
	assert.False(t, ok)
}

func TestParseExerciseType(t *testing.T) {
	cases := map[string]ExerciseType{
		"strength":     ExerciseStrength,
		"Conditioning": ExerciseConditioning,
		"cardio":       ExerciseConditioning,
		"MIXED":        ExerciseMixed,
		"other":        ExerciseOther,
	}
	for in, want := range cases {
		got, ok := ParseExerciseType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	assert.Equal(t, ExerciseStrength, ExerciseTypeOrDefault("???"))
}

func TestParseConditioningType(t *testing.T) {
	got, ok := ParseConditioningType("for_time")
	assert.True(t, ok)
	assert.Equal(t, ConditioningForTime, got)

	got, ok = ParseConditioningType("Steady State")
	assert.True(t, ok)
	assert.Equal(t, ConditioningSteadyState, got)
}

func TestParseSegmentType(t *testing.T) {
	got, ok := ParseSegmentType("positional_spar")
	assert.True(t, ok)
	assert.Equal(t, SegmentPositionalSpar, got)

	got, ok = ParseSegmentType("Warm-Up")
	assert.True(t, ok)
	assert.Equal(t, SegmentWarmup, got)

	assert.Equal(t, SegmentOther, SegmentTypeOrDefault("interpretive dance"))
}

func TestMatchTrainingGoal(t *testing.T) {
	cases := []struct {
		in   string
		want TrainingGoal
		ok   bool
	}{
		{"Hypertrophy focus", GoalHypertrophy, true},
		{"build MUSCLE", GoalHypertrophy, true},
		{"Max strength", GoalStrength, true},
		{"fat loss + cardio", GoalConditioning, true},
		{"Deload week", GoalDeload, true},
		{"", "", false},
		{"feel awesome", "", false},
	}
	for _, tc := range cases {
		got, ok := MatchTrainingGoal(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
