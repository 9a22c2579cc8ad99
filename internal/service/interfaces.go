package service

import (
	"context"
	"io"

	"github.com/alexanderramin/ironplan/internal/autoprogram"
	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/exchange"
	"github.com/alexanderramin/ironplan/internal/importer"
	"github.com/alexanderramin/ironplan/internal/runmode"
	"github.com/alexanderramin/ironplan/internal/unified"
)

// ImportResult holds the outcome of a block import.
type ImportResult struct {
	Block    *domain.Block
	Strategy importer.Strategy
	Warnings []string
	// Linked counts exercises matched to the exercise library.
	Linked int
}

type BlockService interface {
	// Parse runs the parser without saving anything.
	Parse(ctx context.Context, text string, origin importer.Origin) (*importer.ImportedBlock, error)
	ImportText(ctx context.Context, text string, origin importer.Origin) (*ImportResult, error)
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	Generate(ctx context.Context, cfg autoprogram.Config) (*domain.Block, error)
	Draft(ctx context.Context, prompt string) (*ImportResult, error)
	Get(ctx context.Context, id string) (*domain.Block, error)
	List(ctx context.Context) ([]*domain.Block, error)
	Delete(ctx context.Context, id string) error
	Whiteboard(ctx context.Context, id string) (*unified.UnifiedBlock, error)
}

type RunService interface {
	Open(ctx context.Context, blockID string) (*runmode.Run, error)
}

type ExerciseService interface {
	List(ctx context.Context) ([]domain.ExerciseDefinition, error)
	Add(ctx context.Context, def *domain.ExerciseDefinition) error
}

// ExchangeResult counts what an export wrote or an import applied.
type ExchangeResult struct {
	Blocks        int
	Sessions      int
	Exercises     int
	DeletedBlocks int
	Skipped       int
}

type ExchangeService interface {
	Export(ctx context.Context, w io.Writer) (*ExchangeResult, error)
	Import(ctx context.Context, r io.Reader, strategy exchange.Strategy) (*ExchangeResult, error)
}
