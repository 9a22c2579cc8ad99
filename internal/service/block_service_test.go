package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/ironplan/internal/autoprogram"
	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/importer"
	"github.com/alexanderramin/ironplan/internal/intelligence"
	"github.com/alexanderramin/ironplan/internal/llm"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatBlock = `Sure, here's your plan.

JSON: {
  "Title": "Upper Lower",
  "NumberOfWeeks": 3,
  "Days": [
    {"name": "Upper", "exercises": [{"name": "bench press", "sets": 3, "reps": 8}]},
    {"name": "Lower", "exercises": [{"name": "Back Squat", "sets": 4, "reps": 5}]}
  ]
}`

func newBlockService(r testRepos, drafter intelligence.BlockDraftService, obs ...UseCaseObserver) BlockService {
	return NewBlockService(r.blocks, r.library, r.uow, drafter, obs...)
}

func TestBlockService_ImportTextSavesAndLinks(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	bench := testutil.NewTestDefinition("Bench Press")
	require.NoError(t, r.library.Add(ctx, bench))

	obs := &recordingObserver{}
	svc := newBlockService(r, nil, obs)

	result, err := svc.ImportText(ctx, chatBlock, importer.OriginChat)
	require.NoError(t, err)
	assert.Equal(t, importer.StrategyJSONSection, result.Strategy)
	assert.Equal(t, 1, result.Linked)

	stored, err := r.blocks.Get(ctx, result.Block.ID)
	require.NoError(t, err)
	assert.Equal(t, "Upper Lower", stored.Name)
	assert.Equal(t, 3, stored.NumberOfWeeks)
	assert.Equal(t, domain.SourceAI, stored.Source)
	assert.Equal(t, bench.ID, stored.Days[0].Exercises[0].ExerciseDefinitionID)

	ev := obs.last()
	assert.Equal(t, "import-block", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, "json_section", ev.Fields["strategy"])
}

func TestBlockService_ImportTextFailureSavesNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := newBlockService(r, nil, obs)

	_, err := svc.ImportText(ctx, "JSON: {\"Title\": \"Broken\"", importer.OriginChat)
	require.Error(t, err)
	perr, ok := importer.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, importer.KindDecodeFailed, perr.Kind)

	blocks, err := r.blocks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blocks)
	assert.False(t, obs.last().Success)
}

func TestBlockService_ImportFile(t *testing.T) {
	r := setupRepos(t)
	path := filepath.Join(t.TempDir(), "block.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Title": "File Block", "Exercises": [{"name": "Row", "sets": 3, "reps": 10}]}`), 0o644))

	result, err := newBlockService(r, nil).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, importer.StrategyRawJSON, result.Strategy)
	assert.Equal(t, "File Block", result.Block.Name)
}

func TestBlockService_ParseDoesNotSave(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newBlockService(r, nil)

	imported, err := svc.Parse(ctx, chatBlock, importer.OriginChat)
	require.NoError(t, err)
	assert.Equal(t, "Upper Lower", imported.Block.Name)

	blocks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestBlockService_Generate(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newBlockService(r, nil)

	cfg := autoprogram.Config{
		Weeks:         4,
		DeloadEvery:   4,
		TrainingMaxes: map[string]float64{"Squat": 300},
		Days:          []autoprogram.DayConfig{{Name: "Squat", Slots: []autoprogram.SlotConfig{{Lift: "Squat"}}}},
	}
	block, err := svc.Generate(ctx, cfg)
	require.NoError(t, err)

	stored, err := svc.Get(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.NumberOfWeeks)
	assert.Len(t, stored.WeekTemplates, 4)
}

func TestBlockService_GenerateMissingMaxSavesNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newBlockService(r, nil)

	cfg := autoprogram.Config{
		Weeks: 3,
		Days:  []autoprogram.DayConfig{{Name: "Bench", Slots: []autoprogram.SlotConfig{{Lift: "Bench"}}}},
	}
	_, err := svc.Generate(ctx, cfg)
	var missing *autoprogram.MissingTrainingMaxError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Bench", missing.Lift)

	blocks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

type stubDrafter struct {
	draft *intelligence.BlockDraft
	err   error
}

func (s stubDrafter) Draft(context.Context, string) (*intelligence.BlockDraft, error) {
	return s.draft, s.err
}

func TestBlockService_Draft(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	imported, err := importer.Import(chatBlock, importer.OriginChat)
	require.NoError(t, err)
	svc := newBlockService(r, stubDrafter{draft: &intelligence.BlockDraft{Imported: imported, Model: "m"}})

	result, err := svc.Draft(ctx, "upper lower")
	require.NoError(t, err)

	_, err = r.blocks.Get(ctx, result.Block.ID)
	require.NoError(t, err)
}

func TestBlockService_DraftDisabled(t *testing.T) {
	_, err := newBlockService(setupRepos(t), nil).Draft(context.Background(), "anything")
	assert.ErrorIs(t, err, llm.ErrDisabled)
}

func TestBlockService_DraftError(t *testing.T) {
	svc := newBlockService(setupRepos(t), stubDrafter{err: llm.ErrTimeout})
	_, err := svc.Draft(context.Background(), "anything")
	assert.ErrorIs(t, err, llm.ErrTimeout)
}

func TestBlockService_DeleteCascadesSessions(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	block := testutil.NewTestBlock("Doomed", testutil.WithWeeks(3))
	require.NoError(t, r.blocks.Add(ctx, block))

	_, err := NewRunService(r.blocks, r.sessions).Open(ctx, block.ID)
	require.NoError(t, err)
	require.Equal(t, 3, countSessions(t, r.db, block.ID))

	svc := newBlockService(r, nil)
	require.NoError(t, svc.Delete(ctx, block.ID))

	assert.Equal(t, 0, countSessions(t, r.db, block.ID))
	_, err = svc.Get(ctx, block.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBlockService_DeleteMissing(t *testing.T) {
	err := newBlockService(setupRepos(t), nil).Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBlockService_Whiteboard(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	upper := []domain.DayTemplate{testutil.NewTestDay("Heavy", testutil.NewTestStrength("Squat", 5, 3))}
	lower := []domain.DayTemplate{testutil.NewTestDay("Light", testutil.NewTestStrength("Squat", 3, 8))}
	block := testutil.NewTestBlock("Wave", testutil.WithWeeks(3), testutil.WithWeekTemplates(upper, lower))
	require.NoError(t, r.blocks.Add(ctx, block))

	ub, err := newBlockService(r, nil).Whiteboard(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, ub.WeekCount)
	require.Len(t, ub.Weeks, 3)
	assert.Equal(t, "Heavy", ub.Weeks[0][0].Name)
	assert.Equal(t, "Light", ub.Weeks[1][0].Name)
	assert.Equal(t, "Heavy", ub.Weeks[2][0].Name)
}
