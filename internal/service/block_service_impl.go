package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ironplan/internal/autoprogram"
	"github.com/alexanderramin/ironplan/internal/db"
	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/importer"
	"github.com/alexanderramin/ironplan/internal/intelligence"
	"github.com/alexanderramin/ironplan/internal/llm"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/unified"
)

type blockService struct {
	blocks   repository.BlockRepo
	library  repository.ExerciseLibrary
	uow      db.UnitOfWork
	drafter  intelligence.BlockDraftService
	observer UseCaseObserver
	now      func() time.Time
}

// NewBlockService wires block use cases. drafter may be nil when model
// drafting is switched off.
func NewBlockService(
	blocks repository.BlockRepo,
	library repository.ExerciseLibrary,
	uow db.UnitOfWork,
	drafter intelligence.BlockDraftService,
	observers ...UseCaseObserver,
) BlockService {
	return &blockService{
		blocks:   blocks,
		library:  library,
		uow:      uow,
		drafter:  drafter,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *blockService) Parse(ctx context.Context, text string, origin importer.Origin) (*importer.ImportedBlock, error) {
	return importer.Import(text, origin)
}

func (s *blockService) ImportText(ctx context.Context, text string, origin importer.Origin) (result *ImportResult, err error) {
	fields := map[string]any{"origin": string(origin)}
	defer observe(ctx, s.observer, "import-block", fields)(&err)

	imported, err := importer.Import(text, origin)
	if err != nil {
		return nil, err
	}
	fields["strategy"] = string(imported.Strategy)
	return s.save(ctx, imported)
}

func (s *blockService) ImportFile(ctx context.Context, path string) (result *ImportResult, err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "import-block-file", fields)(&err)

	imported, err := importer.LoadFile(path)
	if err != nil {
		return nil, err
	}
	fields["strategy"] = string(imported.Strategy)
	return s.save(ctx, imported)
}

func (s *blockService) Draft(ctx context.Context, prompt string) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "draft-block", fields)(&err)

	if s.drafter == nil {
		return nil, llm.ErrDisabled
	}
	draft, err := s.drafter.Draft(ctx, prompt)
	if err != nil {
		return nil, err
	}
	fields["model"] = draft.Model
	return s.save(ctx, draft.Imported)
}

func (s *blockService) save(ctx context.Context, imported *importer.ImportedBlock) (*ImportResult, error) {
	defs, err := s.library.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exercise library: %w", err)
	}
	linked := importer.LinkDefinitions(imported.Block, defs)

	if err := s.blocks.Add(ctx, imported.Block); err != nil {
		return nil, fmt.Errorf("saving block: %w", err)
	}
	return &ImportResult{
		Block:    imported.Block,
		Strategy: imported.Strategy,
		Warnings: imported.Warnings,
		Linked:   linked,
	}, nil
}

func (s *blockService) Generate(ctx context.Context, cfg autoprogram.Config) (block *domain.Block, err error) {
	fields := map[string]any{"weeks": cfg.Weeks, "days": len(cfg.Days)}
	defer observe(ctx, s.observer, "generate-block", fields)(&err)

	block, err = autoprogram.Generate(cfg, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.blocks.Add(ctx, block); err != nil {
		return nil, fmt.Errorf("saving block: %w", err)
	}
	return block, nil
}

func (s *blockService) Get(ctx context.Context, id string) (*domain.Block, error) {
	return s.blocks.Get(ctx, id)
}

func (s *blockService) List(ctx context.Context) ([]*domain.Block, error) {
	return s.blocks.List(ctx)
}

// Delete removes the block and its sessions in one transaction.
func (s *blockService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-block", map[string]any{"block_id": id})(&err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewTxSessionRepo(tx).DeleteSessionsForBlock(ctx, id); err != nil {
			return err
		}
		return repository.NewSQLiteBlockRepo(tx).Delete(ctx, id)
	})
}

func (s *blockService) Whiteboard(ctx context.Context, id string) (*unified.UnifiedBlock, error) {
	b, err := s.blocks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ub := unified.FromBlock(b)
	return &ub, nil
}
