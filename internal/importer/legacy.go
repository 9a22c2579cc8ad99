package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/google/uuid"
)

var (
	legacyDayPattern      = regexp.MustCompile(`(?i)^DAY\s*(\d+)?\s*:\s*(.*)$`)
	legacySetsRepsPattern = regexp.MustCompile(`(?i)\b(sets|reps)\s*:\s*(\d+)`)
)

// legacyExercise accumulates fields until the exercise is closed by a new
// Exercise: line, a --- line, a new DAY, or end of input.
type legacyExercise struct {
	name            string
	typ             string
	category        string
	sets            *int
	reps            *int
	weight          *float64
	percent         *float64
	rpe             *float64
	rir             *float64
	tempo           string
	rest            *int
	duration        *int
	distance        *float64
	calories        *float64
	rounds          *int
	pace            string
	effort          string
	progression     string
	notes           []string
	hasConditioning bool
}

// ParseLegacySpec reads the BLOCK:/DAY:/--- line grammar into a Block.
// Exercises before the first DAY are dropped.
func ParseLegacySpec(text string) (*domain.Block, error) {
	now := time.Now().UTC()
	block := &domain.Block{
		ID:            uuid.New().String(),
		NumberOfWeeks: 1,
		Source:        domain.SourceUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var (
		blockGoal  *domain.TrainingGoal
		day        *domain.DayTemplate
		open       *legacyExercise
		recognized bool
	)

	closeExercise := func() {
		if open != nil && day != nil {
			day.Exercises = append(day.Exercises, open.template())
		}
		open = nil
	}
	closeDay := func() {
		closeExercise()
		if day != nil {
			block.Days = append(block.Days, *day)
		}
		day = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "---") {
			closeExercise()
			continue
		}
		if m := legacyDayPattern.FindStringSubmatch(line); m != nil {
			recognized = true
			closeDay()
			name := strings.TrimSpace(m[2])
			if name == "" {
				name = fmt.Sprintf("Day %d", len(block.Days)+1)
			}
			day = &domain.DayTemplate{ID: uuid.New().String(), Name: name, Exercises: []domain.ExerciseTemplate{}}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "block":
			recognized = true
			block.Name = value
			continue
		case "description":
			block.Description = value
			continue
		case "weeks":
			if n, ok := firstInt(value); ok && n > 0 {
				block.NumberOfWeeks = n
			}
			continue
		case "goal":
			if g, ok := domain.MatchTrainingGoal(value); ok {
				if day != nil {
					day.Goal = &g
				} else {
					blockGoal = &g
				}
			}
			continue
		case "short":
			if day != nil {
				day.ShortCode = value
			}
			continue
		case "exercise":
			recognized = true
			closeExercise()
			if day != nil {
				open = &legacyExercise{name: value}
			}
			continue
		}

		if open != nil {
			open.set(key, line, value)
		}
	}
	closeDay()

	if block.Name == "" {
		return nil, &ParseError{Kind: KindInvalidFormat, Key: "BLOCK", Detail: "missing BLOCK name", Detected: recognized}
	}
	if len(block.Days) == 0 {
		return nil, &ParseError{Kind: KindInvalidFormat, Key: "DAY", Detail: "no DAY found", Detected: true}
	}
	if blockGoal != nil {
		for i := range block.Days {
			if block.Days[i].Goal == nil {
				g := *blockGoal
				block.Days[i].Goal = &g
			}
		}
	}
	return block, nil
}

func (e *legacyExercise) set(key, line, value string) {
	switch key {
	case "type":
		e.typ = value
	case "category":
		e.category = value
	case "sets", "reps":
		for _, m := range legacySetsRepsPattern.FindAllStringSubmatch(line, -1) {
			n := firstIntPtr(m[2])
			if strings.EqualFold(m[1], "sets") {
				e.sets = n
			} else {
				e.reps = n
			}
		}
		if key == "sets" && e.sets == nil {
			e.sets = firstIntPtr(value)
		}
		if key == "reps" && e.reps == nil {
			e.reps = firstIntPtr(value)
		}
	case "weight":
		e.weight = firstFloatPtr(value)
	case "%max", "max%", "percent":
		if v, ok := firstFloat(value); ok {
			f := fraction(v)
			e.percent = &f
		}
	case "rpe":
		e.rpe = firstFloatPtr(value)
	case "rir":
		e.rir = firstFloatPtr(value)
	case "tempo":
		e.tempo = value
	case "rest":
		e.rest = restSeconds(value)
	case "duration":
		if n, ok := firstInt(value); ok {
			if !strings.Contains(strings.ToLower(value), "sec") {
				n *= 60
			}
			e.duration = &n
			e.hasConditioning = true
		}
	case "distance":
		if v, ok := firstFloat(value); ok {
			lower := strings.ToLower(value)
			switch {
			case strings.Contains(lower, "km"):
				v *= 1000
			case strings.Contains(lower, "mi"):
				v *= 1609.344
			}
			e.distance = &v
			e.hasConditioning = true
		}
	case "calories":
		e.calories = firstFloatPtr(value)
		e.hasConditioning = true
	case "rounds":
		e.rounds = firstIntPtr(value)
		e.hasConditioning = true
	case "pace":
		e.pace = value
		e.hasConditioning = true
	case "effort":
		e.effort = value
		e.hasConditioning = true
	case "progression":
		e.progression = value
	case "notes":
		e.notes = append(e.notes, value)
	}
}

func (e *legacyExercise) template() domain.ExerciseTemplate {
	typ, ok := domain.ParseExerciseType(e.typ)
	if !ok {
		typ = domain.ExerciseStrength
		if e.hasConditioning && e.reps == nil && e.weight == nil {
			typ = domain.ExerciseConditioning
		}
	}
	category, _ := domain.ParseExerciseCategory(e.category)

	count := domain.IntFromPtrWithDefault(1, e.sets)
	if count < 1 {
		count = 1
	}

	tmpl := domain.ExerciseTemplate{
		ID:          uuid.New().String(),
		CustomName:  e.name,
		Type:        typ,
		Category:    category,
		Notes:       strings.Join(e.notes, "\n"),
		Progression: domain.ParseProgressionRule(e.progression),
	}
	if typ == domain.ExerciseConditioning {
		tmpl.ConditioningSets = domain.BlankConditioningSets(count)
		for i := range tmpl.ConditioningSets {
			s := &tmpl.ConditioningSets[i]
			s.DurationSeconds = domain.CopyInt(e.duration)
			s.DistanceMeters = domain.CopyFloat(e.distance)
			s.Calories = domain.CopyFloat(e.calories)
			s.Rounds = domain.CopyInt(e.rounds)
			s.TargetPace = e.pace
			s.EffortDescriptor = e.effort
			s.RestSeconds = domain.CopyInt(e.rest)
		}
		return tmpl
	}

	tmpl.StrengthSets = domain.BlankStrengthSets(count)
	for i := range tmpl.StrengthSets {
		s := &tmpl.StrengthSets[i]
		s.Reps = domain.CopyInt(e.reps)
		s.Weight = domain.CopyFloat(e.weight)
		s.PercentageOfMax = domain.CopyFloat(e.percent)
		s.RPE = domain.CopyFloat(e.rpe)
		s.RIR = domain.CopyFloat(e.rir)
		s.Tempo = e.tempo
		s.RestSeconds = domain.CopyInt(e.rest)
	}
	return tmpl
}
