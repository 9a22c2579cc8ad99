package session

import (
	"reflect"
	"sort"
	"time"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/google/uuid"
)

// SessionsToRunWeeks builds run state from persisted sessions. Weeks come
// out sorted; each has one day per block day template, with an empty
// placeholder where no session exists.
func SessionsToRunWeeks(block *domain.Block, sessions []domain.WorkoutSession) []domain.RunWeekState {
	byWeek := map[int]map[string]*domain.WorkoutSession{}
	for i := range sessions {
		s := &sessions[i]
		if byWeek[s.WeekIndex] == nil {
			byWeek[s.WeekIndex] = map[string]*domain.WorkoutSession{}
		}
		byWeek[s.WeekIndex][s.DayTemplateID] = s
	}
	weekNumbers := make([]int, 0, len(byWeek))
	for wk := range byWeek {
		weekNumbers = append(weekNumbers, wk)
	}
	sort.Ints(weekNumbers)

	weeks := make([]domain.RunWeekState, 0, len(weekNumbers))
	for _, wk := range weekNumbers {
		week := domain.RunWeekState{Index: wk - 1}
		for _, s := range byWeek[wk] {
			if s.WeekCompletedAt != nil {
				at := *s.WeekCompletedAt
				week.WeekCompletedAt = &at
				break
			}
		}
		for _, day := range block.DaysForWeek(wk - 1) {
			s, ok := byWeek[wk][day.ID]
			if !ok {
				week.Days = append(week.Days, domain.RunDayState{
					DayTemplateID: day.ID,
					Name:          day.Name,
					ShortCode:     day.ShortCode,
					Exercises:     []domain.RunExerciseState{},
				})
				continue
			}
			week.Days = append(week.Days, runDay(block, day, s))
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func runDay(block *domain.Block, day domain.DayTemplate, s *domain.WorkoutSession) domain.RunDayState {
	rd := domain.RunDayState{
		DayTemplateID: day.ID,
		SessionID:     s.ID,
		Name:          domain.CoalesceStr(s.DayName, day.Name),
		ShortCode:     day.ShortCode,
		Exercises:     make([]domain.RunExerciseState, 0, len(s.Exercises)),
	}
	for i := range s.Exercises {
		rd.Exercises = append(rd.Exercises, runExercise(block, &s.Exercises[i]))
	}
	for _, seg := range s.Segments {
		rd.Segments = append(rd.Segments, domain.RunSegmentState{
			ID:              seg.ID,
			Name:            seg.Name,
			SegmentType:     seg.SegmentType,
			DurationMinutes: domain.CopyInt(seg.DurationMinutes),
			Notes:           seg.Notes,
			IsCompleted:     seg.IsCompleted,
			CompletedAt:     seg.CompletedAt,
		})
	}
	return rd
}

// ResolveType picks an exercise's type: the session's own override, then
// the originating template's type, then strength.
func ResolveType(block *domain.Block, ex *domain.SessionExercise) domain.ExerciseType {
	if ex.Type != "" {
		return ex.Type
	}
	return templateType(block, ex.ExerciseTemplateID)
}

func templateType(block *domain.Block, templateID string) domain.ExerciseType {
	if tmpl, ok := block.FindExercise(templateID); ok && tmpl.Type != "" {
		return tmpl.Type
	}
	return domain.ExerciseStrength
}

func runExercise(block *domain.Block, ex *domain.SessionExercise) domain.RunExerciseState {
	name := ex.CustomName
	if name == "" {
		if tmpl, ok := block.FindExercise(ex.ExerciseTemplateID); ok {
			name = tmpl.Name()
		}
	}
	typ := ResolveType(block, ex)
	re := domain.RunExerciseState{
		ID:                 ex.ID,
		ExerciseTemplateID: ex.ExerciseTemplateID,
		Name:               domain.CoalesceStr(name, "Exercise"),
		Type:               typ,
		SetGroupID:         ex.SetGroupID,
		Notes:              ex.Notes,
		Sets:               make([]domain.RunSetState, 0, len(ex.LoggedSets)),
		TypeOverridden:     ex.ExerciseTemplateID != "" && typ != templateType(block, ex.ExerciseTemplateID),
	}
	logged := ex.LoggedSets
	if len(logged) == 0 && len(ex.ExpectedSets) > 0 {
		logged = BlankLoggedSets(ex.ExpectedSets)
	}
	for _, s := range logged {
		re.Sets = append(re.Sets, runSet(s))
	}
	return re
}

func runSet(s domain.SessionSet) domain.RunSetState {
	return domain.RunSetState{
		ID:               s.ID,
		Index:            s.Index,
		ExpectedReps:     s.ExpectedReps,
		ExpectedWeight:   s.ExpectedWeight,
		ExpectedPercent:  s.ExpectedPercent,
		ExpectedTime:     s.ExpectedTime,
		ExpectedDistance: s.ExpectedDistance,
		ExpectedCalories: s.ExpectedCalories,
		ExpectedRounds:   s.ExpectedRounds,
		ExpectedRPE:      s.ExpectedRPE,
		ExpectedRIR:      s.ExpectedRIR,
		ExpectedPace:     s.ExpectedPace,
		Reps:             s.LoggedReps,
		Weight:           s.LoggedWeight,
		Time:             s.LoggedTime,
		Distance:         s.LoggedDistance,
		Calories:         s.LoggedCalories,
		Rounds:           s.LoggedRounds,
		RPE:              s.RPE,
		RIR:              s.RIR,
		Tempo:            s.Tempo,
		RestSeconds:      s.RestSeconds,
		Notes:            s.Notes,
		IsCompleted:      s.IsCompleted,
		CompletedAt:      s.CompletedAt,
	}
}

type sessionKey struct {
	week  int
	dayID string
}

// RunWeeksToSessions writes run state back into sessions and returns the
// full updated list. Only sessions matched by (week, day template) change;
// the rest pass through untouched and none are removed. A run day without
// a session gets a new one if it holds any work.
func RunWeeksToSessions(block *domain.Block, weeks []domain.RunWeekState, sessions []domain.WorkoutSession, now time.Time) []domain.WorkoutSession {
	now = now.UTC()
	out := make([]domain.WorkoutSession, len(sessions))
	copy(out, sessions)

	index := make(map[sessionKey]int, len(out))
	for i, s := range out {
		index[sessionKey{s.WeekIndex, s.DayTemplateID}] = i
	}

	for _, week := range weeks {
		weekIndex := week.Index + 1
		days := block.DaysForWeek(week.Index)
		for d, rd := range week.Days {
			if d >= len(days) {
				break
			}
			tmpl := days[d]
			i, ok := index[sessionKey{weekIndex, tmpl.ID}]
			if !ok {
				if len(rd.Exercises) == 0 && len(rd.Segments) == 0 {
					continue
				}
				s := domain.WorkoutSession{
					ID:            uuid.New().String(),
					BlockID:       block.ID,
					WeekIndex:     weekIndex,
					DayTemplateID: tmpl.ID,
					DayName:       tmpl.Name,
					Status:        domain.SessionNotStarted,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				s.WeekCompletedAt = copyTime(week.WeekCompletedAt)
				applyDay(block, &s, rd)
				s.RecomputeStatus()
				out = append(out, s)
				index[sessionKey{weekIndex, tmpl.ID}] = len(out) - 1
				continue
			}

			updated := cloneSession(out[i])
			updated.WeekCompletedAt = copyTime(week.WeekCompletedAt)
			applyDay(block, &updated, rd)
			updated.RecomputeStatus()
			if !reflect.DeepEqual(updated, out[i]) {
				updated.UpdatedAt = now
				out[i] = updated
			}
		}
	}
	return out
}

func applyDay(block *domain.Block, s *domain.WorkoutSession, rd domain.RunDayState) {
	byID := make(map[string]int, len(s.Exercises))
	for i := range s.Exercises {
		byID[s.Exercises[i].ID] = i
	}
	for _, re := range rd.Exercises {
		i, ok := byID[re.ID]
		if !ok {
			s.Exercises = append(s.Exercises, newExerciseFromRun(block, re))
			continue
		}
		applyExercise(block, &s.Exercises[i], re)
	}

	segByID := make(map[string]int, len(s.Segments))
	for i := range s.Segments {
		segByID[s.Segments[i].ID] = i
	}
	for _, rs := range rd.Segments {
		i, ok := segByID[rs.ID]
		if !ok {
			continue
		}
		seg := &s.Segments[i]
		seg.Notes = rs.Notes
		seg.IsCompleted = rs.IsCompleted
		seg.CompletedAt = rs.CompletedAt
	}
}

func newExerciseFromRun(block *domain.Block, re domain.RunExerciseState) domain.SessionExercise {
	ex := domain.SessionExercise{
		ID:                 re.ID,
		ExerciseTemplateID: re.ExerciseTemplateID,
		CustomName:         re.Name,
		SetGroupID:         re.SetGroupID,
		Notes:              re.Notes,
	}
	if re.ExerciseTemplateID == "" || re.Type != templateType(block, re.ExerciseTemplateID) {
		ex.Type = re.Type
	}
	ex.ExpectedSets, ex.LoggedSets = setsFromRun(re.Sets)
	return ex
}

func applyExercise(block *domain.Block, ex *domain.SessionExercise, re domain.RunExerciseState) {
	ex.Notes = re.Notes
	if re.Type != ResolveType(block, ex) {
		ex.Type = re.Type
	}

	if !sameSetIDs(ex.LoggedSets, re.Sets) {
		ex.ExpectedSets, ex.LoggedSets = setsFromRun(re.Sets)
		return
	}
	for i, rs := range re.Sets {
		applySet(&ex.LoggedSets[i], rs)
	}
}

func sameSetIDs(logged []domain.SessionSet, run []domain.RunSetState) bool {
	if len(logged) != len(run) {
		return false
	}
	for i := range logged {
		if logged[i].ID != run[i].ID {
			return false
		}
	}
	return true
}

func applySet(s *domain.SessionSet, rs domain.RunSetState) {
	s.LoggedReps = rs.Reps
	s.LoggedWeight = rs.Weight
	s.LoggedTime = rs.Time
	s.LoggedDistance = rs.Distance
	s.LoggedCalories = rs.Calories
	s.LoggedRounds = rs.Rounds
	s.RPE = rs.RPE
	s.RIR = rs.RIR
	s.Tempo = rs.Tempo
	s.RestSeconds = rs.RestSeconds
	s.Notes = rs.Notes
	s.IsCompleted = rs.IsCompleted
	s.CompletedAt = rs.CompletedAt
}

// setsFromRun rebuilds both set lists from run state, used when the run
// set list was regenerated.
func setsFromRun(run []domain.RunSetState) (expected, logged []domain.SessionSet) {
	expected = make([]domain.SessionSet, len(run))
	logged = make([]domain.SessionSet, len(run))
	for i, rs := range run {
		expected[i] = domain.SessionSet{
			ID:               rs.ID,
			Index:            rs.Index,
			ExpectedReps:     rs.ExpectedReps,
			ExpectedWeight:   rs.ExpectedWeight,
			ExpectedPercent:  rs.ExpectedPercent,
			ExpectedTime:     rs.ExpectedTime,
			ExpectedDistance: rs.ExpectedDistance,
			ExpectedCalories: rs.ExpectedCalories,
			ExpectedRounds:   rs.ExpectedRounds,
			ExpectedRPE:      rs.ExpectedRPE,
			ExpectedRIR:      rs.ExpectedRIR,
			ExpectedPace:     rs.ExpectedPace,
		}
		logged[i] = expected[i]
		applySet(&logged[i], rs)
	}
	return expected, logged
}

// cloneSession copies the slices applyDay writes through. Nil and empty
// slices stay distinct so an untouched session compares equal.
func cloneSession(s domain.WorkoutSession) domain.WorkoutSession {
	out := s
	out.Exercises = cloneSlice(s.Exercises)
	for i := range out.Exercises {
		out.Exercises[i].ExpectedSets = cloneSlice(out.Exercises[i].ExpectedSets)
		out.Exercises[i].LoggedSets = cloneSlice(out.Exercises[i].LoggedSets)
	}
	out.Segments = cloneSlice(s.Segments)
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Metrics summarizes run state for save verification.
type Metrics struct {
	Weeks         int
	TotalSets     int
	CompletedSets int
}

// ComputeMetrics counts weeks and sets across run state.
func ComputeMetrics(weeks []domain.RunWeekState) Metrics {
	m := Metrics{Weeks: len(weeks)}
	for _, w := range weeks {
		for _, d := range w.Days {
			for _, ex := range d.Exercises {
				for _, s := range ex.Sets {
					m.TotalSets++
					if s.IsCompleted {
						m.CompletedSets++
					}
				}
			}
		}
	}
	return m
}
