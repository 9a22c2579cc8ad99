package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/ironplan/internal/db"
	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/testutil"
)

type testRepos struct {
	db       *sql.DB
	blocks   *repository.SQLiteBlockRepo
	sessions *repository.SQLiteSessionRepo
	library  *repository.SQLiteExerciseLibrary
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		blocks:   repository.NewSQLiteBlockRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		library:  repository.NewSQLiteExerciseLibrary(database),
		uow:      testutil.NewTestUoW(database),
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func countSessions(t *testing.T, database *sql.DB, blockID string) int {
	t.Helper()
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM workout_sessions WHERE block_id = ?`, blockID).Scan(&n); err != nil {
		t.Fatalf("counting sessions: %v", err)
	}
	return n
}

func sessionAt(id, blockID, dayID string) domain.WorkoutSession {
	return domain.WorkoutSession{
		ID:            id,
		BlockID:       blockID,
		WeekIndex:     1,
		DayTemplateID: dayID,
		Status:        domain.SessionNotStarted,
		Exercises:     []domain.SessionExercise{},
	}
}
