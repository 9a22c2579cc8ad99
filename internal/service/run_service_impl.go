package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/runmode"
)

type runService struct {
	blocks   repository.BlockRepo
	sessions repository.SessionRepo
	observer UseCaseObserver
}

func NewRunService(blocks repository.BlockRepo, sessions repository.SessionRepo, observers ...UseCaseObserver) RunService {
	return &runService{
		blocks:   blocks,
		sessions: sessions,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Open starts run mode for a block, generating its sessions on first use.
func (s *runService) Open(ctx context.Context, blockID string) (run *runmode.Run, err error) {
	fields := map[string]any{"block_id": blockID}
	defer observe(ctx, s.observer, "open-run", fields)(&err)

	block, err := s.blocks.Get(ctx, blockID)
	if err != nil {
		return nil, fmt.Errorf("loading block: %w", err)
	}
	run, err = runmode.Open(ctx, block, s.blocks, s.sessions)
	if err != nil {
		return nil, err
	}
	fields["active_week"] = run.ActiveWeek() + 1
	fields["sessions"] = len(run.Sessions())
	return run, nil
}
