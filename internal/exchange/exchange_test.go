package exchange

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return Snapshot{
		Blocks: []domain.Block{{
			ID: "b1", Name: "Base", NumberOfWeeks: 1, Source: domain.SourceUser,
			Days:      []domain.DayTemplate{{ID: "d1", Name: "A", Exercises: []domain.ExerciseTemplate{}}},
			CreatedAt: created, UpdatedAt: created,
		}},
		Sessions: []domain.WorkoutSession{{
			ID: "s1", BlockID: "b1", WeekIndex: 1, DayTemplateID: "d1", Status: domain.SessionNotStarted,
			Exercises: []domain.SessionExercise{}, CreatedAt: created, UpdatedAt: created,
		}},
		Exercises: []domain.ExerciseDefinition{{ID: "e1", Name: "Back Squat", Type: domain.ExerciseStrength}},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	env := New(sampleSnapshot(), now)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, env))
	assert.Contains(t, buf.String(), `"exportedAt": "2026-10-14T10:00:00Z"`)
	assert.Contains(t, buf.String(), "\n  \"blocks\": [")

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, got.Version)
	assert.True(t, got.ExportedAt.Equal(now))
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "Base", got.Blocks[0].Name)
	assert.Equal(t, "s1", got.Sessions[0].ID)
	assert.Equal(t, "Back Squat", got.Exercises[0].Name)
}

func TestNew_EmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New(Snapshot{}, time.Now())))
	assert.Contains(t, buf.String(), `"blocks": []`)
	assert.Contains(t, buf.String(), `"sessions": []`)
}

func TestDecode_RejectsUnknownVersions(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version": 99, "blocks": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(strings.NewReader(`{"blocks": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(strings.NewReader(`not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding export")
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("Replace")
	require.NoError(t, err)
	assert.Equal(t, StrategyReplace, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyMerge, s)

	_, err = ParseStrategy("overwrite")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestPlanImport_Replace(t *testing.T) {
	existing := sampleSnapshot()
	incoming := &Envelope{
		Version: CurrentVersion,
		Blocks:  []domain.Block{{ID: "b2", Name: "New"}},
		Sessions: []domain.WorkoutSession{
			{ID: "s2", BlockID: "b2"},
			{ID: "s3", BlockID: "b1"},
		},
		Exercises: []domain.ExerciseDefinition{
			{ID: "e1", Name: "Back Squat"},
			{ID: "e9", Name: "back squat"},
			{ID: "e2", Name: "Deadlift"},
		},
	}

	plan, err := PlanImport(existing, incoming, StrategyReplace)
	require.NoError(t, err)

	assert.Equal(t, []string{"b1"}, plan.DeleteBlockIDs)
	require.Len(t, plan.AddBlocks, 1)
	assert.Equal(t, "b2", plan.AddBlocks[0].ID)
	require.Len(t, plan.AddSessions, 1, "sessions of replaced blocks are orphans")
	assert.Equal(t, "s2", plan.AddSessions[0].ID)
	require.Len(t, plan.AddExercises, 1, "the library is preserved, only new definitions added")
	assert.Equal(t, "e2", plan.AddExercises[0].ID)
	assert.Equal(t, 3, plan.Skipped)
}

func TestPlanImport_Merge(t *testing.T) {
	existing := sampleSnapshot()
	incoming := &Envelope{
		Version: CurrentVersion,
		Blocks:  []domain.Block{{ID: "b1", Name: "Dup"}, {ID: "b2", Name: "New"}},
		Sessions: []domain.WorkoutSession{
			{ID: "s1", BlockID: "b1"},
			{ID: "s4", BlockID: "b1"},
			{ID: "s5", BlockID: "b2"},
			{ID: "s6", BlockID: "ghost"},
		},
	}

	plan, err := PlanImport(existing, incoming, StrategyMerge)
	require.NoError(t, err)

	assert.Empty(t, plan.DeleteBlockIDs)
	require.Len(t, plan.AddBlocks, 1)
	assert.Equal(t, "b2", plan.AddBlocks[0].ID)

	var ids []string
	for _, s := range plan.AddSessions {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s4", "s5"}, ids)
	assert.Equal(t, 3, plan.Skipped)
}

func TestPlanImport_UnknownStrategy(t *testing.T) {
	_, err := PlanImport(Snapshot{}, &Envelope{}, Strategy("yolo"))
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
