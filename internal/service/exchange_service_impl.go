package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/ironplan/internal/db"
	"github.com/alexanderramin/ironplan/internal/exchange"
	"github.com/alexanderramin/ironplan/internal/repository"
)

type exchangeService struct {
	blocks   repository.BlockRepo
	sessions repository.SessionRepo
	library  repository.ExerciseLibrary
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewExchangeService(
	blocks repository.BlockRepo,
	sessions repository.SessionRepo,
	library repository.ExerciseLibrary,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ExchangeService {
	return &exchangeService{
		blocks:   blocks,
		sessions: sessions,
		library:  library,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *exchangeService) snapshot(ctx context.Context) (exchange.Snapshot, error) {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		return exchange.Snapshot{}, fmt.Errorf("listing blocks: %w", err)
	}
	sessions, err := s.sessions.All(ctx)
	if err != nil {
		return exchange.Snapshot{}, fmt.Errorf("listing sessions: %w", err)
	}
	defs, err := s.library.All(ctx)
	if err != nil {
		return exchange.Snapshot{}, fmt.Errorf("listing exercise library: %w", err)
	}
	snap := exchange.Snapshot{Sessions: sessions, Exercises: defs}
	for _, b := range blocks {
		snap.Blocks = append(snap.Blocks, *b)
	}
	return snap, nil
}

func (s *exchangeService) Export(ctx context.Context, w io.Writer) (result *ExchangeResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "export", fields)(&err)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := exchange.Encode(w, exchange.New(snap, s.now())); err != nil {
		return nil, err
	}
	result = &ExchangeResult{
		Blocks:    len(snap.Blocks),
		Sessions:  len(snap.Sessions),
		Exercises: len(snap.Exercises),
	}
	fields["blocks"] = result.Blocks
	fields["sessions"] = result.Sessions
	return result, nil
}

// Import applies an export in one transaction; nothing is written when any
// record fails.
func (s *exchangeService) Import(ctx context.Context, r io.Reader, strategy exchange.Strategy) (result *ExchangeResult, err error) {
	fields := map[string]any{"strategy": string(strategy)}
	defer observe(ctx, s.observer, "import", fields)(&err)

	env, err := exchange.Decode(r)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := exchange.PlanImport(snap, env, strategy)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return applyPlan(ctx, tx, plan)
	})
	if err != nil {
		return nil, err
	}

	result = &ExchangeResult{
		Blocks:        len(plan.AddBlocks),
		Sessions:      len(plan.AddSessions),
		Exercises:     len(plan.AddExercises),
		DeletedBlocks: len(plan.DeleteBlockIDs),
		Skipped:       plan.Skipped,
	}
	fields["blocks"] = result.Blocks
	fields["skipped"] = result.Skipped
	return result, nil
}

func applyPlan(ctx context.Context, tx db.DBTX, plan exchange.Plan) error {
	blocks := repository.NewSQLiteBlockRepo(tx)
	sessions := repository.NewTxSessionRepo(tx)
	library := repository.NewSQLiteExerciseLibrary(tx)

	for _, id := range plan.DeleteBlockIDs {
		if err := sessions.DeleteSessionsForBlock(ctx, id); err != nil {
			return err
		}
		if err := blocks.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting block %s: %w", id, err)
		}
	}
	for i := range plan.AddBlocks {
		if err := blocks.Add(ctx, &plan.AddBlocks[i]); err != nil {
			return fmt.Errorf("importing block %q: %w", plan.AddBlocks[i].Name, err)
		}
	}
	for i := range plan.AddSessions {
		if err := sessions.Add(ctx, &plan.AddSessions[i]); err != nil {
			return fmt.Errorf("importing session %s: %w", plan.AddSessions[i].ID, err)
		}
	}
	for i := range plan.AddExercises {
		if err := library.Add(ctx, &plan.AddExercises[i]); err != nil {
			return fmt.Errorf("importing exercise %q: %w", plan.AddExercises[i].Name, err)
		}
	}
	return nil
}

