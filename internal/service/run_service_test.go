package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/runmode"
	"github.com/alexanderramin/ironplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunService_OpenGeneratesOnce(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	block := testutil.NewTestBlock("Base", testutil.WithWeeks(2))
	require.NoError(t, r.blocks.Add(ctx, block))
	svc := NewRunService(r.blocks, r.sessions)

	first, err := svc.Open(ctx, block.ID)
	require.NoError(t, err)
	require.Len(t, first.Sessions(), 2)

	second, err := svc.Open(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Sessions()[0].ID, second.Sessions()[0].ID)
	assert.Equal(t, 2, countSessions(t, r.db, block.ID))
}

func TestRunService_MutationsPersistAcrossOpens(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	block := testutil.NewTestBlock("Base", testutil.WithWeeks(2))
	require.NoError(t, r.blocks.Add(ctx, block))
	svc := NewRunService(r.blocks, r.sessions)

	run, err := svc.Open(ctx, block.ID)
	require.NoError(t, err)
	reps, weight := 5, 225.0
	done := true
	for set := 0; set < 3; set++ {
		ref := runmode.SetRef{ExerciseRef: runmode.ExerciseRef{Week: 0, Day: 0, Exercise: 0}, Set: set}
		tr, err := run.UpdateSet(ctx, ref, runmode.SetUpdate{Reps: &reps, Weight: &weight, Completed: &done})
		require.NoError(t, err)
		if set == 2 {
			assert.Equal(t, runmode.Transition{Kind: runmode.TransitionWeekComplete, Week: 0}, tr)
		}
	}
	require.NoError(t, run.Close(ctx))

	reopened, err := svc.Open(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.ActiveWeek())
	weeks := reopened.Weeks()
	assert.True(t, weeks[0].IsCompleted())
	assert.Equal(t, 225.0, *weeks[0].Days[0].Exercises[0].Sets[1].Weight)
	assert.Equal(t, domain.SessionCompleted, reopened.Sessions()[0].Status)
}

func TestRunService_OpenMissingBlock(t *testing.T) {
	r := setupRepos(t)
	obs := &recordingObserver{}
	_, err := NewRunService(r.blocks, r.sessions, obs).Open(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, "open-run", obs.last().Name)
	assert.False(t, obs.last().Success)
}
