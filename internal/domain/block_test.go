package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_WeekCountAtLeastOne(t *testing.T) {
	assert.Equal(t, 1, (&Block{}).WeekCount())
	assert.Equal(t, 1, (&Block{NumberOfWeeks: -3}).WeekCount())
	assert.Equal(t, 6, (&Block{NumberOfWeeks: 6}).WeekCount())
}

func TestBlock_DaysForWeek_CyclesWeekTemplates(t *testing.T) {
	b := &Block{
		NumberOfWeeks: 5,
		Days:          []DayTemplate{{ID: "canon"}},
		WeekTemplates: [][]DayTemplate{{{ID: "a"}}, {{ID: "b"}}},
	}
	var got []string
	for w := 0; w < b.WeekCount(); w++ {
		got = append(got, b.DaysForWeek(w)[0].ID)
	}
	assert.Equal(t, []string{"a", "b", "a", "b", "a"}, got)
}

func TestBlock_DaysForWeek_TruncatesLongTemplates(t *testing.T) {
	b := &Block{
		NumberOfWeeks: 2,
		WeekTemplates: [][]DayTemplate{{{ID: "a"}}, {{ID: "b"}}, {{ID: "c"}}},
	}
	assert.Equal(t, 0, b.WeekTemplateIndex(0))
	assert.Equal(t, 1, b.WeekTemplateIndex(1))
	assert.Equal(t, "b", b.DaysForWeek(b.WeekCount() - 1)[0].ID)
}

func TestBlock_DaysForWeek_FallsBackToDays(t *testing.T) {
	b := &Block{NumberOfWeeks: 3, Days: []DayTemplate{{ID: "canon"}}}
	assert.Equal(t, -1, b.WeekTemplateIndex(1))
	assert.Equal(t, "canon", b.DaysForWeek(2)[0].ID)
}

func TestBlock_FindExercise(t *testing.T) {
	b := &Block{
		Days: []DayTemplate{{Exercises: []ExerciseTemplate{{ID: "e1", CustomName: "Squat"}}}},
		WeekTemplates: [][]DayTemplate{
			{{Exercises: []ExerciseTemplate{{ID: "e2", CustomName: "Row", Type: ExerciseConditioning}}}},
		},
	}
	ex, ok := b.FindExercise("e2")
	require.True(t, ok)
	assert.Equal(t, ExerciseConditioning, ex.Type)

	_, ok = b.FindExercise("")
	assert.False(t, ok)
	_, ok = b.FindExercise("missing")
	assert.False(t, ok)
}

func TestBlock_CloneIsIndependent(t *testing.T) {
	b := &Block{
		ID:            "b",
		Days:          []DayTemplate{{ID: "d", Exercises: []ExerciseTemplate{{ID: "e1"}}}},
		WeekTemplates: [][]DayTemplate{{{ID: "w", Exercises: []ExerciseTemplate{{ID: "e2"}}}}},
	}
	c := b.Clone()
	c.Days[0].Exercises = append(c.Days[0].Exercises, ExerciseTemplate{ID: "x"})
	c.WeekTemplates[0][0].Exercises = append(c.WeekTemplates[0][0].Exercises, ExerciseTemplate{ID: "y"})

	assert.Equal(t, "b", c.ID)
	assert.Len(t, b.Days[0].Exercises, 1)
	assert.Len(t, b.WeekTemplates[0][0].Exercises, 1)
}
