package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrExerciseNameRequired = errors.New("exercise name is required")
	ErrDuplicateExercise    = errors.New("exercise already in library")
)

type exerciseService struct {
	library  repository.ExerciseLibrary
	observer UseCaseObserver
}

func NewExerciseService(library repository.ExerciseLibrary, observers ...UseCaseObserver) ExerciseService {
	return &exerciseService{library: library, observer: useCaseObserverOrNoop(observers)}
}

func (s *exerciseService) List(ctx context.Context) ([]domain.ExerciseDefinition, error) {
	return s.library.All(ctx)
}

// Add stores a definition, rejecting a name already in the library.
func (s *exerciseService) Add(ctx context.Context, def *domain.ExerciseDefinition) (err error) {
	defer observe(ctx, s.observer, "add-exercise", map[string]any{"name": def.Name})(&err)

	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return ErrExerciseNameRequired
	}
	existing, err := s.library.FindByName(ctx, def.Name)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %q", ErrDuplicateExercise, existing.Name)
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	if def.ID == "" {
		def.ID = uuid.New().String()
	}
	if def.Type == "" {
		def.Type = domain.ExerciseStrength
	}
	return s.library.Add(ctx, def)
}
