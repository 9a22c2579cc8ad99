package domain

import "time"

// Block is a multi-week training plan. Days holds the canonical day list;
// WeekTemplates, when present, overrides it per week.
type Block struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	NumberOfWeeks int             `json:"numberOfWeeks"`
	Days          []DayTemplate   `json:"days"`
	WeekTemplates [][]DayTemplate `json:"weekTemplates,omitempty"`
	Source        BlockSource     `json:"source"`
	AIMetadata    *AIMetadata     `json:"aiMetadata,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AIMetadata carries authoring details that have no structural home in the block.
type AIMetadata struct {
	Prompt                string `json:"prompt,omitempty"`
	Model                 string `json:"model,omitempty"`
	Strategy              string `json:"strategy,omitempty"`
	Goal                  string `json:"goal,omitempty"`
	TargetAthlete         string `json:"targetAthlete,omitempty"`
	Difficulty            string `json:"difficulty,omitempty"`
	Equipment             string `json:"equipment,omitempty"`
	DurationMinutes       *int   `json:"durationMinutes,omitempty"`
	EstimatedTotalMinutes *int   `json:"estimatedTotalMinutes,omitempty"`
}

// DayTemplate is one training day's planned work.
type DayTemplate struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ShortCode string             `json:"shortCode,omitempty"`
	Goal      *TrainingGoal      `json:"goal,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	Exercises []ExerciseTemplate `json:"exercises"`
	Segments  []Segment          `json:"segments,omitempty"`
}

// WeekCount is the number of weeks sessions are generated for. A block
// always spans at least one week.
func (b *Block) WeekCount() int {
	if b.NumberOfWeeks < 1 {
		return 1
	}
	return b.NumberOfWeeks
}

// HasWeekTemplates reports whether per-week day lists override Days.
func (b *Block) HasWeekTemplates() bool {
	return len(b.WeekTemplates) > 0
}

// WeekTemplateIndex maps a 0-based week to the week template it uses.
// Short template lists cycle; extra templates are never reached because
// callers only iterate WeekCount weeks. Returns -1 when there are no
// week templates.
func (b *Block) WeekTemplateIndex(week int) int {
	n := len(b.WeekTemplates)
	if n == 0 || week < 0 {
		return -1
	}
	return week % n
}

// DaysForWeek returns the day templates for a 0-based week.
func (b *Block) DaysForWeek(week int) []DayTemplate {
	if idx := b.WeekTemplateIndex(week); idx >= 0 {
		return b.WeekTemplates[idx]
	}
	return b.Days
}

// FindExercise looks up an exercise template by id in Days and every week template.
func (b *Block) FindExercise(templateID string) (*ExerciseTemplate, bool) {
	if templateID == "" {
		return nil, false
	}
	if ex, ok := findExerciseIn(b.Days, templateID); ok {
		return ex, true
	}
	for i := range b.WeekTemplates {
		if ex, ok := findExerciseIn(b.WeekTemplates[i], templateID); ok {
			return ex, true
		}
	}
	return nil, false
}

func findExerciseIn(days []DayTemplate, templateID string) (*ExerciseTemplate, bool) {
	for d := range days {
		for e := range days[d].Exercises {
			if days[d].Exercises[e].ID == templateID {
				return &days[d].Exercises[e], true
			}
		}
	}
	return nil, false
}

// TotalExercises counts exercises across the canonical day list.
func (b *Block) TotalExercises() int {
	n := 0
	for _, d := range b.Days {
		n += len(d.Exercises)
	}
	return n
}

// CloneDays copies days deeply enough that appending to or editing the
// exercise, set and segment lists of the copy leaves the original intact.
// IDs are kept.
func CloneDays(days []DayTemplate) []DayTemplate {
	if days == nil {
		return nil
	}
	out := make([]DayTemplate, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Exercises = make([]ExerciseTemplate, len(d.Exercises))
		for e, ex := range d.Exercises {
			out[i].Exercises[e] = ex
			out[i].Exercises[e].StrengthSets = append([]StrengthSetTemplate(nil), ex.StrengthSets...)
			out[i].Exercises[e].ConditioningSets = append([]ConditioningSetTemplate(nil), ex.ConditioningSets...)
		}
		out[i].Segments = append([]Segment(nil), d.Segments...)
	}
	return out
}

// Clone returns a copy of b whose day templates can be edited without
// touching b.
func (b *Block) Clone() *Block {
	out := *b
	out.Days = CloneDays(b.Days)
	if b.WeekTemplates != nil {
		out.WeekTemplates = make([][]DayTemplate, len(b.WeekTemplates))
		for i, days := range b.WeekTemplates {
			out.WeekTemplates[i] = CloneDays(days)
		}
	}
	return &out
}
