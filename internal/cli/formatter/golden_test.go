package formatter

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/unified"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping before golden comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// goldenTest compares got against testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenDir := filepath.Join("testdata")
	goldenPath := filepath.Join(goldenDir, name+".golden")

	stripped := stripANSI(got)

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.MkdirAll(goldenDir, 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(stripped), 0644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with GOLDEN_UPDATE=1 to create it", goldenPath)
	}
	require.NoError(t, err)

	assert.Equal(t, string(expected), stripped,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

func upperLowerDays() []unified.UnifiedDay {
	bench := unified.UnifiedSet{Reps: domain.IntPtr(8), Weight: domain.FloatPtr(135), RestSeconds: domain.IntPtr(90)}
	return []unified.UnifiedDay{
		{
			Name: "Upper", ShortCode: "U", Goal: "strength",
			Exercises: []unified.UnifiedExercise{
				{Name: "Bench Press", Progression: "+5 / week", Sets: []unified.UnifiedSet{bench, bench, bench}},
				{Name: "Row", Sets: []unified.UnifiedSet{
					{Reps: domain.IntPtr(10)}, {Reps: domain.IntPtr(10)}, {Reps: domain.IntPtr(8)},
				}},
			},
		},
		{
			Name: "Lower",
			Exercises: []unified.UnifiedExercise{
				{Name: "Back Squat", Sets: []unified.UnifiedSet{
					{Reps: domain.IntPtr(5), Weight: domain.FloatPtr(225), RPE: domain.FloatPtr(8)},
				}},
			},
			Segments: []unified.UnifiedSegment{
				{Name: "Warmup", SegmentType: "warmup", DurationMinutes: domain.IntPtr(10), Objective: "Open the hips"},
			},
		},
	}
}

func TestFormatWhiteboard_Golden_SharedWeeks(t *testing.T) {
	days := upperLowerDays()
	ub := &unified.UnifiedBlock{
		Title:     "Upper Lower",
		WeekCount: 3,
		Weeks:     [][]unified.UnifiedDay{days, days, days},
	}
	goldenTest(t, "whiteboard_shared", FormatWhiteboard(ub, "lb"))
}

func TestFormatWhiteboard_Golden_WeekTemplates(t *testing.T) {
	heavy := []unified.UnifiedDay{{
		Name: "Heavy",
		Exercises: []unified.UnifiedExercise{{Name: "Deadlift", Sets: []unified.UnifiedSet{
			{Reps: domain.IntPtr(3), PercentageOfMax: domain.FloatPtr(0.75)},
			{Reps: domain.IntPtr(3), PercentageOfMax: domain.FloatPtr(0.75)},
		}}},
	}}
	light := []unified.UnifiedDay{{
		Name: "Light",
		Exercises: []unified.UnifiedExercise{{Name: "Run", Sets: []unified.UnifiedSet{
			{DurationSeconds: domain.IntPtr(1200), Effort: "easy"},
		}}},
	}}
	ub := &unified.UnifiedBlock{
		Title:           "Wave",
		WeekCount:       3,
		Weeks:           [][]unified.UnifiedDay{heavy, light, heavy},
		TemplateIndices: []int{0, 1, 0},
	}
	goldenTest(t, "whiteboard_templates", FormatWhiteboard(ub, "kg"))
}

func TestFormatRunWeek_Golden(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	week := domain.RunWeekState{
		Index: 0,
		Days: []domain.RunDayState{
			{
				Name: "Upper", ShortCode: "U",
				Exercises: []domain.RunExerciseState{
					{Name: "Bench Press", Type: domain.ExerciseStrength, Sets: []domain.RunSetState{
						{ExpectedReps: domain.IntPtr(8), ExpectedWeight: domain.FloatPtr(135),
							Reps: domain.IntPtr(8), Weight: domain.FloatPtr(135), IsCompleted: true, CompletedAt: &now},
						{ExpectedReps: domain.IntPtr(8), ExpectedWeight: domain.FloatPtr(135)},
					}},
					{Name: "Bike", Type: domain.ExerciseConditioning, TypeOverridden: true, Sets: []domain.RunSetState{
						{ExpectedTime: domain.IntPtr(600)},
					}},
				},
				Segments: []domain.RunSegmentState{
					{Name: "Cooldown", SegmentType: domain.SegmentCooldown, DurationMinutes: domain.IntPtr(5)},
				},
			},
			{Name: "Rest"},
		},
	}
	goldenTest(t, "run_week", FormatRunWeek("Upper Lower", week, 3, "lb"))
}

func TestFormatBlockList_Golden(t *testing.T) {
	created := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	blocks := []*domain.Block{
		{
			ID:   "3f2a9c1e-0000-4000-8000-000000000001", Name: "Upper Lower", NumberOfWeeks: 4,
			Days: make([]domain.DayTemplate, 4), Source: domain.SourceUser, CreatedAt: created,
		},
		{
			ID:   "9b7d04aa-0000-4000-8000-000000000002", Name: "Conditioning Base", NumberOfWeeks: 6,
			Days: make([]domain.DayTemplate, 3), Source: domain.SourceAI, CreatedAt: created.AddDate(0, 1, 0),
		},
	}
	goldenTest(t, "block_list", FormatBlockList(blocks))
}
