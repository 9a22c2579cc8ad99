// Package unified flattens blocks from any source into one read-only
// display model used by the whiteboard.
package unified

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/exchange"
	"github.com/alexanderramin/ironplan/internal/importer"
)

// ErrBlockNotInExport is returned by FromExport for an unknown block id.
var ErrBlockNotInExport = errors.New("block not found in export")

type UnifiedBlock struct {
	Title     string         `json:"title"`
	WeekCount int            `json:"weekCount"`
	Weeks     [][]UnifiedDay `json:"weeks"`
	// TemplateIndices[i] is the week template used for week i; nil when
	// every week repeats the same day list.
	TemplateIndices []int `json:"templateIndices,omitempty"`
}

type UnifiedDay struct {
	Name      string            `json:"name"`
	ShortCode string            `json:"shortCode"`
	Goal      string            `json:"goal"`
	Notes     string            `json:"notes"`
	Exercises []UnifiedExercise `json:"exercises"`
	Segments  []UnifiedSegment  `json:"segments"`
}

type UnifiedExercise struct {
	Name             string       `json:"name"`
	Type             string       `json:"type"`
	Category         string       `json:"category"`
	ConditioningType string       `json:"conditioningType"`
	SetGroupID       string       `json:"setGroupId"`
	Notes            string       `json:"notes"`
	Progression      string       `json:"progression"`
	Sets             []UnifiedSet `json:"sets"`
}

// UnifiedSet merges strength and conditioning targets into one record.
type UnifiedSet struct {
	Index           int      `json:"index"`
	Reps            *int     `json:"reps,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	PercentageOfMax *float64 `json:"percentageOfMax,omitempty"`
	RPE             *float64 `json:"rpe,omitempty"`
	RIR             *float64 `json:"rir,omitempty"`
	Tempo           string   `json:"tempo"`
	RestSeconds     *int     `json:"restSeconds,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	DistanceMeters  *float64 `json:"distanceMeters,omitempty"`
	Calories        *float64 `json:"calories,omitempty"`
	Rounds          *int     `json:"rounds,omitempty"`
	Pace            string   `json:"pace"`
	Effort          string   `json:"effort"`
	Notes           string   `json:"notes"`
}

type UnifiedSegment struct {
	Name                 string             `json:"name"`
	SegmentType          string             `json:"segmentType"`
	Domain               string             `json:"domain"`
	DurationMinutes      *int               `json:"durationMinutes,omitempty"`
	Objective            string             `json:"objective"`
	Constraints          []string           `json:"constraints"`
	Cues                 []string           `json:"cues"`
	Positions            []string           `json:"positions"`
	Techniques           []UnifiedTechnique `json:"techniques"`
	Drills               []UnifiedDrill     `json:"drills"`
	Rounds               *int               `json:"rounds,omitempty"`
	RoundDurationSeconds *int               `json:"roundDurationSeconds,omitempty"`
	RestSeconds          *int               `json:"restSeconds,omitempty"`
	Resistance           *int               `json:"resistance,omitempty"`
	Intensity            string             `json:"intensity"`
	StartingPosition     string             `json:"startingPosition"`
	WinConditions        []string           `json:"winConditions"`
	ResetRule            string             `json:"resetRule"`
	AttackerGoal         string             `json:"attackerGoal"`
	DefenderGoal         string             `json:"defenderGoal"`
	SuccessRateTarget    *float64           `json:"successRateTarget,omitempty"`
	CleanRepsTarget      *int               `json:"cleanRepsTarget,omitempty"`
	DecisionSpeedSeconds *float64           `json:"decisionSpeedSeconds,omitempty"`
	FlowSteps            []UnifiedFlowStep  `json:"flowSteps"`
	Breathwork           string             `json:"breathwork"`
	VideoURL             string             `json:"videoUrl"`
	Contraindications    []string           `json:"contraindications"`
	StopIf               []string           `json:"stopIf"`
	IntensityCeiling     *int               `json:"intensityCeiling,omitempty"`
	Notes                string             `json:"notes"`
}

type UnifiedTechnique struct {
	Name         string   `json:"name"`
	Variant      string   `json:"variant"`
	KeyDetails   []string `json:"keyDetails"`
	CommonErrors []string `json:"commonErrors"`
	Counters     []string `json:"counters"`
	FollowUps    []string `json:"followUps"`
}

type UnifiedDrill struct {
	Name        string `json:"name"`
	WorkSeconds *int   `json:"workSeconds,omitempty"`
	RestSeconds *int   `json:"restSeconds,omitempty"`
	Reps        *int   `json:"reps,omitempty"`
	Notes       string `json:"notes"`
}

type UnifiedFlowStep struct {
	Pose        string   `json:"pose"`
	HoldSeconds *int     `json:"holdSeconds,omitempty"`
	Transition  string   `json:"transition"`
	Cues        []string `json:"cues"`
}

// FromBlock normalizes a canonical block.
func FromBlock(b *domain.Block) UnifiedBlock {
	perWeek := make([][]UnifiedDay, len(b.WeekTemplates))
	for i, days := range b.WeekTemplates {
		perWeek[i] = normalizeDays(days)
	}
	weeks, indices := expandWeeks(b.NumberOfWeeks, perWeek, normalizeDays(b.Days))
	return UnifiedBlock{
		Title:           b.Name,
		WeekCount:       len(weeks),
		Weeks:           weeks,
		TemplateIndices: indices,
	}
}

// FromAuthoring normalizes a decoded authoring block without persisting it.
func FromAuthoring(ab *importer.AuthoringBlock) (UnifiedBlock, error) {
	block, err := importer.Convert(ab)
	if err != nil {
		return UnifiedBlock{}, fmt.Errorf("normalizing authoring block: %w", err)
	}
	return FromBlock(block), nil
}

// FromExport normalizes one block of a data export.
func FromExport(env *exchange.Envelope, blockID string) (UnifiedBlock, error) {
	for i := range env.Blocks {
		if env.Blocks[i].ID == blockID {
			return FromBlock(&env.Blocks[i]), nil
		}
	}
	return UnifiedBlock{}, fmt.Errorf("%w: %s", ErrBlockNotInExport, blockID)
}

// TemplateIndices reports which week template each of targetWeeks weeks
// uses when there are templateCount templates. Short lists cycle; long
// lists are truncated.
func TemplateIndices(targetWeeks, templateCount int) []int {
	if templateCount <= 0 {
		return nil
	}
	target := max(targetWeeks, 1)
	indices := make([]int, target)
	for i := range indices {
		indices[i] = i % templateCount
	}
	return indices
}

// expandWeeks lays out exactly max(targetWeeks, 1) weeks. With per-week
// lists, week i uses perWeek[i mod len(perWeek)]; otherwise every week
// shares the single list value.
func expandWeeks[T any](targetWeeks int, perWeek [][]T, single []T) ([][]T, []int) {
	target := max(targetWeeks, 1)
	weeks := make([][]T, target)

	if len(perWeek) > 0 {
		indices := TemplateIndices(target, len(perWeek))
		for i, idx := range indices {
			weeks[i] = perWeek[idx]
		}
		return weeks, indices
	}

	for i := range weeks {
		weeks[i] = single
	}
	return weeks, nil
}
