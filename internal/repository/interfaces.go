// Package repository stores blocks, workout sessions and the exercise
// library in SQLite. Each aggregate is kept whole as a JSON document next
// to the key columns queries filter on.
package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/ironplan/internal/domain"
)

var ErrNotFound = errors.New("not found")

type BlockRepo interface {
	Add(ctx context.Context, b *domain.Block) error
	Update(ctx context.Context, b *domain.Block) error
	Get(ctx context.Context, id string) (*domain.Block, error)
	List(ctx context.Context) ([]*domain.Block, error)
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	SessionsForBlock(ctx context.Context, blockID string) ([]domain.WorkoutSession, error)
	// ReplaceSessions swaps every session of the block atomically.
	ReplaceSessions(ctx context.Context, blockID string, sessions []domain.WorkoutSession) error
	Add(ctx context.Context, s *domain.WorkoutSession) error
	DeleteSessionsForBlock(ctx context.Context, blockID string) error
	All(ctx context.Context) ([]domain.WorkoutSession, error)
}

type ExerciseLibrary interface {
	All(ctx context.Context) ([]domain.ExerciseDefinition, error)
	Add(ctx context.Context, def *domain.ExerciseDefinition) error
	FindByName(ctx context.Context, name string) (*domain.ExerciseDefinition, error)
}
