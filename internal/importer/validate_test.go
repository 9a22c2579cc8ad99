package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func TestValidateAuthoring_Clean(t *testing.T) {
	ab := decode(t, `{"Title": "T", "NumberOfWeeks": 2, "Weeks": [
		[{"name": "A", "exercises": [{"name": "Squat"}]}],
		[{"name": "A", "exercises": [{"name": "Squat"}]}]
	]}`)
	assert.Empty(t, ValidateAuthoring(ab))
}

func TestValidateAuthoring_WeekCountMismatch(t *testing.T) {
	ab := decode(t, `{"Title": "T", "NumberOfWeeks": 4, "Weeks": [
		[{"name": "A", "exercises": [{"name": "Squat"}]}]
	]}`)
	msgs := errorStrings(ValidateAuthoring(ab))
	assert.Contains(t, msgs, "NumberOfWeeks (4) does not match len(Weeks) (1)")
}

func TestValidateAuthoring_DayWithoutWork(t *testing.T) {
	ab := decode(t, `{"Title": "T", "Days": [
		{"name": "Rest"},
		{"exercises": [{"name": ""}], "segments": [{"segmentType": "drill"}]}
	]}`)
	msgs := errorStrings(ValidateAuthoring(ab))
	assert.Contains(t, msgs, "Days[0] has neither exercises nor segments")
	assert.Contains(t, msgs, "Days[1].name is required")
	assert.Contains(t, msgs, "Days[1].exercises[0].name is required")
	assert.Contains(t, msgs, "Days[1].segments[0].name is required")
}

func TestValidateAuthoring_UnevenWeeks(t *testing.T) {
	ab := decode(t, `{"Title": "T", "Weeks": [
		[{"name": "A", "exercises": [{"name": "Squat"}]}, {"name": "B", "exercises": [{"name": "Row"}]}],
		[{"name": "A", "exercises": [{"name": "Squat"}]}],
		[]
	]}`)
	msgs := errorStrings(ValidateAuthoring(ab))
	assert.Contains(t, msgs, "Weeks[1] has 1 days, Weeks[0] has 2")
	assert.Contains(t, msgs, "Weeks[2] has no days")
}

func TestValidateAuthoring_ShadowedContent(t *testing.T) {
	ab := decode(t, `{"Title": "T", "Days": [{"name": "A", "exercises": [{"name": "Squat", "sets": 0}]}], "Exercises": [{"name": "X"}]}`)
	msgs := errorStrings(ValidateAuthoring(ab))
	assert.Contains(t, msgs, "Days is set; Exercises is ignored")
	assert.Contains(t, msgs, "Days[0].exercises[0].sets must be positive")
}

func TestValidateAuthoring_EmptyExercises(t *testing.T) {
	ab := decode(t, `{"Title": "T", "Exercises": []}`)
	errs := ValidateAuthoring(ab)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "Exercises is empty")
}
