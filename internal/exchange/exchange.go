// Package exchange reads and writes full data exports and plans how an
// import is applied to existing data.
package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
)

// CurrentVersion is the envelope version written by Encode.
const CurrentVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported export version")
	ErrUnknownStrategy    = errors.New("unknown import strategy")
)

// Envelope is the export file. Dates are RFC 3339.
type Envelope struct {
	Version    int                         `json:"version"`
	ExportedAt time.Time                   `json:"exportedAt"`
	Blocks     []domain.Block              `json:"blocks"`
	Sessions   []domain.WorkoutSession     `json:"sessions"`
	Exercises  []domain.ExerciseDefinition `json:"exercises"`
}

// Snapshot is the data currently stored.
type Snapshot struct {
	Blocks    []domain.Block
	Sessions  []domain.WorkoutSession
	Exercises []domain.ExerciseDefinition
}

// New wraps a snapshot in a current-version envelope.
func New(s Snapshot, now time.Time) *Envelope {
	env := &Envelope{
		Version:    CurrentVersion,
		ExportedAt: now.UTC(),
		Blocks:     s.Blocks,
		Sessions:   s.Sessions,
		Exercises:  s.Exercises,
	}
	if env.Blocks == nil {
		env.Blocks = []domain.Block{}
	}
	if env.Sessions == nil {
		env.Sessions = []domain.WorkoutSession{}
	}
	if env.Exercises == nil {
		env.Exercises = []domain.ExerciseDefinition{}
	}
	return env
}

// Encode writes env as indented JSON.
func Encode(w io.Writer, env *Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// Decode reads an envelope, rejecting versions this build cannot read.
func Decode(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}
	if env.Version < 1 || env.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (this build reads up to %d)", ErrUnsupportedVersion, env.Version, CurrentVersion)
	}
	return &env, nil
}

// Strategy decides how an import combines with existing data.
type Strategy string

const (
	// StrategyReplace swaps blocks and sessions wholesale. The exercise
	// library is kept; incoming definitions are only added.
	StrategyReplace Strategy = "replace"
	// StrategyMerge adds records whose id is not already stored.
	StrategyMerge Strategy = "merge"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyReplace:
		return StrategyReplace, nil
	case "", StrategyMerge:
		return StrategyMerge, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Plan is the set of writes that applies an import.
type Plan struct {
	DeleteBlockIDs []string
	AddBlocks      []domain.Block
	AddSessions    []domain.WorkoutSession
	AddExercises   []domain.ExerciseDefinition
	// Skipped counts incoming records left out as duplicates or orphans.
	Skipped int
}

// PlanImport computes the writes for importing incoming over existing.
// Sessions whose block is absent after the import are dropped.
func PlanImport(existing Snapshot, incoming *Envelope, strategy Strategy) (Plan, error) {
	var plan Plan

	keptBlocks := map[string]bool{}
	switch strategy {
	case StrategyReplace:
		for _, b := range existing.Blocks {
			plan.DeleteBlockIDs = append(plan.DeleteBlockIDs, b.ID)
		}
		seen := map[string]bool{}
		for _, b := range incoming.Blocks {
			if seen[b.ID] {
				plan.Skipped++
				continue
			}
			seen[b.ID] = true
			plan.AddBlocks = append(plan.AddBlocks, b)
			keptBlocks[b.ID] = true
		}
	case StrategyMerge:
		for _, b := range existing.Blocks {
			keptBlocks[b.ID] = true
		}
		for _, b := range incoming.Blocks {
			if keptBlocks[b.ID] {
				plan.Skipped++
				continue
			}
			plan.AddBlocks = append(plan.AddBlocks, b)
			keptBlocks[b.ID] = true
		}
	default:
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	sessionIDs := map[string]bool{}
	if strategy == StrategyMerge {
		for _, s := range existing.Sessions {
			sessionIDs[s.ID] = true
		}
	}
	for _, s := range incoming.Sessions {
		if sessionIDs[s.ID] || !keptBlocks[s.BlockID] {
			plan.Skipped++
			continue
		}
		sessionIDs[s.ID] = true
		plan.AddSessions = append(plan.AddSessions, s)
	}

	defIDs := map[string]bool{}
	defNames := map[string]bool{}
	for _, d := range existing.Exercises {
		defIDs[d.ID] = true
		defNames[strings.ToLower(d.Name)] = true
	}
	for _, d := range incoming.Exercises {
		if defIDs[d.ID] || defNames[strings.ToLower(d.Name)] {
			plan.Skipped++
			continue
		}
		defIDs[d.ID] = true
		defNames[strings.ToLower(d.Name)] = true
		plan.AddExercises = append(plan.AddExercises, d)
	}

	return plan, nil
}
