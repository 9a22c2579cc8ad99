package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a decoded AuthoringBlock into a Block. Day structure
// follows Content: Weeks > Days > Exercises.
func Convert(ab *AuthoringBlock) (*domain.Block, error) {
	content, ok := ab.Content()
	if !ok {
		return nil, &ParseError{Kind: KindDecodeFailed, Decode: DecodeMissingKey, Key: "Exercises", Detected: true}
	}

	now := time.Now().UTC()
	block := &domain.Block{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(ab.Title),
		Description: ab.Goal.String(),
		Source:      domain.SourceUser,
		AIMetadata:  convertMetadata(ab),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	blockGoal, hasGoal := domain.MatchTrainingGoal(ab.Goal.String())

	switch c := content.(type) {
	case WeeksContent:
		if !anyDays(c.Weeks) {
			return nil, &ParseError{Kind: KindDecodeFailed, Decode: DecodeMissingKey, Key: "Weeks[].days", Detected: true}
		}
		block.WeekTemplates = make([][]domain.DayTemplate, len(c.Weeks))
		for w, days := range c.Weeks {
			block.WeekTemplates[w] = convertDays(days, blockGoal, hasGoal)
		}
		block.Days = domain.CloneDays(block.WeekTemplates[0])
		block.NumberOfWeeks = len(c.Weeks)
	case DaysContent:
		block.Days = convertDays(c.Days, blockGoal, hasGoal)
		block.NumberOfWeeks = 1
	case ExercisesContent:
		day := domain.DayTemplate{
			ID:        uuid.New().String(),
			Name:      block.Name,
			Notes:     singleDayNotes(ab),
			Exercises: make([]domain.ExerciseTemplate, 0, len(c.Exercises)),
		}
		if hasGoal {
			g := blockGoal
			day.Goal = &g
		}
		for _, ex := range c.Exercises {
			day.Exercises = append(day.Exercises, convertExercise(ex))
		}
		block.Days = []domain.DayTemplate{day}
		block.NumberOfWeeks = 1
	default:
		return nil, fmt.Errorf("unsupported block content %T", content)
	}

	if n, ok := ab.NumberOfWeeks.Int(); ok && n > 0 {
		block.NumberOfWeeks = n
	}
	return block, nil
}

func anyDays(weeks [][]AuthoringDay) bool {
	for _, days := range weeks {
		if len(days) > 0 {
			return true
		}
	}
	return false
}

func convertMetadata(ab *AuthoringBlock) *domain.AIMetadata {
	return &domain.AIMetadata{
		Goal:                  ab.Goal.String(),
		TargetAthlete:         ab.TargetAthlete.String(),
		Difficulty:            ab.Difficulty.String(),
		Equipment:             ab.Equipment.String(),
		DurationMinutes:       ab.DurationMinutes.Ptr(),
		EstimatedTotalMinutes: ab.EstimatedTotalTimeMinutes.Ptr(),
	}
}

// singleDayNotes folds the block-level text sections into the day notes,
// always in the order warm-up, finisher, notes, progression.
func singleDayNotes(ab *AuthoringBlock) string {
	sections := []struct {
		label string
		text  string
	}{
		{"Warm-up", ab.WarmUp.String()},
		{"Finisher", ab.Finisher.String()},
		{"Notes", ab.Notes.String()},
		{"Progression", ab.Progression.String()},
	}
	var parts []string
	for _, s := range sections {
		if t := strings.TrimSpace(s.text); t != "" {
			parts = append(parts, s.label+": "+t)
		}
	}
	return strings.Join(parts, "\n")
}

func convertDays(days []AuthoringDay, blockGoal domain.TrainingGoal, hasGoal bool) []domain.DayTemplate {
	out := make([]domain.DayTemplate, 0, len(days))
	for i, d := range days {
		day := domain.DayTemplate{
			ID:        uuid.New().String(),
			Name:      domain.CoalesceStr(strings.TrimSpace(d.Name), fmt.Sprintf("Day %d", i+1)),
			ShortCode: d.ShortCode,
			Notes:     d.Notes.String(),
			Exercises: make([]domain.ExerciseTemplate, 0, len(d.Exercises)),
		}
		if g, ok := domain.MatchTrainingGoal(d.Goal.String()); ok {
			day.Goal = &g
		} else if hasGoal {
			g := blockGoal
			day.Goal = &g
		}
		for _, ex := range d.Exercises {
			day.Exercises = append(day.Exercises, convertExercise(ex))
		}
		for _, seg := range d.Segments {
			day.Segments = append(day.Segments, convertSegment(seg))
		}
		out = append(out, day)
	}
	return out
}

func convertExercise(ex AuthoringExercise) domain.ExerciseTemplate {
	cue := parseIntensityCue(ex.Intensity.String())

	durationSeconds := ex.DurationSeconds.Ptr()
	if durationSeconds == nil {
		if m := ex.DurationMinutes.Ptr(); m != nil {
			s := *m * 60
			durationSeconds = &s
		}
	}
	hasConditioning := durationSeconds != nil || ex.DistanceMeters.Ptr() != nil ||
		ex.Calories.Ptr() != nil || ex.Rounds.Ptr() != nil

	typ, ok := domain.ParseExerciseType(ex.Type.String())
	if !ok {
		typ = domain.ExerciseStrength
		if hasConditioning && ex.Reps.Ptr() == nil {
			typ = domain.ExerciseConditioning
		}
	}
	category, _ := domain.ParseExerciseCategory(ex.Category.String())
	condType, _ := domain.ParseConditioningType(ex.ConditioningType.String())

	count := 1
	if n, ok := ex.Sets.Int(); ok && n > 0 {
		count = n
	}

	notes := ex.Notes.List()
	if cue.notes != "" {
		notes = append(notes, cue.notes)
	}

	tmpl := domain.ExerciseTemplate{
		ID:               uuid.New().String(),
		CustomName:       strings.TrimSpace(ex.Name),
		Type:             typ,
		Category:         category,
		ConditioningType: condType,
		Notes:            strings.Join(notes, "\n"),
		SetGroupID:       ex.SetGroupID,
		Progression:      domain.ParseProgressionRule(ex.Progression.String()),
	}

	if typ == domain.ExerciseConditioning {
		tmpl.ConditioningSets = domain.BlankConditioningSets(count)
		for i := range tmpl.ConditioningSets {
			s := &tmpl.ConditioningSets[i]
			s.DurationSeconds = domain.CopyInt(durationSeconds)
			s.DistanceMeters = ex.DistanceMeters.Ptr()
			s.Calories = ex.Calories.Ptr()
			s.Rounds = ex.Rounds.Ptr()
			s.TargetPace = ex.Pace.String()
			s.EffortDescriptor = ex.Effort.String()
			s.RestSeconds = ex.RestSeconds.Ptr()
		}
		return tmpl
	}

	percent := domain.FirstFloat(ex.PercentageOfMax.Ptr(), cue.percent)
	if percent != nil {
		f := fraction(*percent)
		percent = &f
	}
	tmpl.StrengthSets = domain.BlankStrengthSets(count)
	for i := range tmpl.StrengthSets {
		s := &tmpl.StrengthSets[i]
		s.Reps = ex.Reps.Ptr()
		s.Weight = ex.Weight.Ptr()
		s.PercentageOfMax = domain.CopyFloat(percent)
		s.RPE = domain.CopyFloat(domain.FirstFloat(ex.RPE.Ptr(), cue.rpe))
		s.RIR = domain.CopyFloat(domain.FirstFloat(ex.RIR.Ptr(), cue.rir))
		s.Tempo = ex.Tempo.String()
		s.RestSeconds = ex.RestSeconds.Ptr()
	}
	return tmpl
}

func convertSegment(seg AuthoringSegment) domain.Segment {
	out := domain.Segment{
		ID:              uuid.New().String(),
		Name:            domain.CoalesceStr(strings.TrimSpace(seg.Name), "Segment"),
		SegmentType:     domain.SegmentTypeOrDefault(seg.SegmentType.String()),
		Domain:          seg.Domain,
		DurationMinutes: seg.DurationMinutes.Ptr(),
		Objective:       seg.Objective.String(),
		Constraints:     seg.Constraints.List(),
		Cues:            seg.Cues.List(),
		Positions:       seg.Positions.List(),
		Techniques:      seg.Techniques,
		DrillPlan:       seg.DrillPlan,
		PartnerPlan:     seg.PartnerPlan,
		RoundPlan:       seg.RoundPlan,
		FlowSequence:    seg.FlowSequence,
		BreathworkPlan:  seg.Breathwork,
		Media:           seg.Media,
		Safety:          seg.Safety,
		Notes:           seg.Notes.String(),
	}
	if pp := out.PartnerPlan; pp != nil && pp.Resistance != nil {
		r := domain.ClampResistance(*pp.Resistance)
		pp.Resistance = &r
	}
	return out
}

type intensityCue struct {
	rpe     *float64
	rir     *float64
	percent *float64
	notes   string
}

var (
	rpeCuePattern     = regexp.MustCompile(`(?i)\bRPE\s*@?\s*(\d+(?:\.\d+)?)`)
	rirCuePattern     = regexp.MustCompile(`(?i)\bRIR\s*(\d+(?:\.\d+)?)`)
	percentCuePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// parseIntensityCue maps "RPE 8", "RIR 2" or "75%" to set targets. Cues it
// cannot read become notes.
func parseIntensityCue(s string) intensityCue {
	s = strings.TrimSpace(s)
	if s == "" {
		return intensityCue{}
	}
	var cue intensityCue
	if m := rpeCuePattern.FindStringSubmatch(s); m != nil {
		cue.rpe = firstFloatPtr(m[1])
	}
	if m := rirCuePattern.FindStringSubmatch(s); m != nil {
		cue.rir = firstFloatPtr(m[1])
	}
	if m := percentCuePattern.FindStringSubmatch(s); m != nil {
		cue.percent = firstFloatPtr(m[1])
	}
	if cue.rpe == nil && cue.rir == nil && cue.percent == nil {
		cue.notes = s
	}
	return cue
}

// LinkDefinitions points exercises without a definition at the library
// entry whose name or alias matches case-insensitively, filling in an
// empty category. Returns the number of exercises linked.
func LinkDefinitions(block *domain.Block, defs []domain.ExerciseDefinition) int {
	if len(defs) == 0 {
		return 0
	}
	byName := make(map[string]*domain.ExerciseDefinition, len(defs))
	for i := range defs {
		byName[definitionKey(defs[i].Name)] = &defs[i]
		for _, alias := range defs[i].Aliases {
			if key := definitionKey(alias); key != "" {
				if _, taken := byName[key]; !taken {
					byName[key] = &defs[i]
				}
			}
		}
	}

	linked := 0
	link := func(days []domain.DayTemplate) {
		for d := range days {
			for e := range days[d].Exercises {
				ex := &days[d].Exercises[e]
				if ex.ExerciseDefinitionID != "" {
					continue
				}
				def, ok := byName[definitionKey(ex.CustomName)]
				if !ok {
					continue
				}
				ex.ExerciseDefinitionID = def.ID
				if ex.Category == "" {
					ex.Category = def.Category
				}
				linked++
			}
		}
	}
	link(block.Days)
	for w := range block.WeekTemplates {
		link(block.WeekTemplates[w])
	}
	return linked
}

func definitionKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
