package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/ironplan/internal/cli"
	"github.com/alexanderramin/ironplan/internal/config"
	"github.com/alexanderramin/ironplan/internal/db"
	"github.com/alexanderramin/ironplan/internal/intelligence"
	"github.com/alexanderramin/ironplan/internal/llm"
	"github.com/alexanderramin/ironplan/internal/repository"
	"github.com/alexanderramin/ironplan/internal/server"
	"github.com/alexanderramin/ironplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	blockRepo := repository.NewSQLiteBlockRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	library := repository.NewSQLiteExerciseLibrary(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	// Model drafting is wired only when enabled.
	var drafter intelligence.BlockDraftService
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		drafter = intelligence.NewBlockDraftService(llm.NewOllamaClient(cfg.LLM, observer))
	}

	blocks := service.NewBlockService(blockRepo, library, uow, drafter, observers...)
	runs := service.NewRunService(blockRepo, sessionRepo, observers...)

	app := &cli.App{
		Blocks:     blocks,
		Runs:       runs,
		Exercises:  service.NewExerciseService(library, observers...),
		Exchange:   service.NewExchangeService(blockRepo, sessionRepo, library, uow, observers...),
		Addr:       cfg.HTTP.Addr,
		WeightUnit: cfg.WeightUnit(),
		Serve: func(ctx context.Context, addr string) error {
			srv := server.New(blocks, runs, logger, server.WithWeightUnit(cfg.WeightUnit()))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
