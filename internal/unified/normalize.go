package unified

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ironplan/internal/domain"
)

func normalizeDays(days []domain.DayTemplate) []UnifiedDay {
	out := make([]UnifiedDay, 0, len(days))
	for _, d := range days {
		ud := UnifiedDay{
			Name:      d.Name,
			ShortCode: d.ShortCode,
			Notes:     d.Notes,
			Exercises: make([]UnifiedExercise, 0, len(d.Exercises)),
			Segments:  make([]UnifiedSegment, 0, len(d.Segments)),
		}
		if d.Goal != nil {
			ud.Goal = string(*d.Goal)
		}
		for i := range d.Exercises {
			ud.Exercises = append(ud.Exercises, normalizeExercise(&d.Exercises[i]))
		}
		for i := range d.Segments {
			ud.Segments = append(ud.Segments, normalizeSegment(&d.Segments[i]))
		}
		out = append(out, ud)
	}
	return out
}

func normalizeExercise(ex *domain.ExerciseTemplate) UnifiedExercise {
	ue := UnifiedExercise{
		Name:             ex.Name(),
		Type:             string(domain.ExerciseTypeOrDefault(string(ex.Type))),
		Category:         string(ex.Category),
		ConditioningType: string(ex.ConditioningType),
		SetGroupID:       ex.SetGroupID,
		Notes:            ex.Notes,
		Progression:      ex.Progression.Describe(),
		Sets:             make([]UnifiedSet, 0, ex.SetCount()),
	}
	for _, s := range ex.StrengthSets {
		ue.Sets = append(ue.Sets, UnifiedSet{
			Index:           s.Index,
			Reps:            s.Reps,
			Weight:          s.Weight,
			PercentageOfMax: s.PercentageOfMax,
			RPE:             s.RPE,
			RIR:             s.RIR,
			Tempo:           s.Tempo,
			RestSeconds:     s.RestSeconds,
			Notes:           s.Notes,
		})
	}
	for _, s := range ex.ConditioningSets {
		ue.Sets = append(ue.Sets, UnifiedSet{
			Index:           s.Index,
			DurationSeconds: s.DurationSeconds,
			DistanceMeters:  s.DistanceMeters,
			Calories:        s.Calories,
			Rounds:          s.Rounds,
			Pace:            s.TargetPace,
			Effort:          s.EffortDescriptor,
			RestSeconds:     s.RestSeconds,
			Notes:           s.Notes,
		})
	}
	return ue
}

func normalizeSegment(seg *domain.Segment) UnifiedSegment {
	us := UnifiedSegment{
		Name:              seg.Name,
		SegmentType:       string(seg.SegmentType),
		Domain:            seg.Domain,
		DurationMinutes:   seg.DurationMinutes,
		Objective:         seg.Objective,
		Constraints:       domain.StringsOrEmpty(seg.Constraints),
		Cues:              domain.StringsOrEmpty(seg.Cues),
		Positions:         domain.StringsOrEmpty(seg.Positions),
		Techniques:        make([]UnifiedTechnique, 0, len(seg.Techniques)),
		Drills:            []UnifiedDrill{},
		WinConditions:     []string{},
		FlowSteps:         make([]UnifiedFlowStep, 0, len(seg.FlowSequence)),
		Contraindications: []string{},
		StopIf:            []string{},
		Notes:             seg.Notes,
	}

	for _, t := range seg.Techniques {
		us.Techniques = append(us.Techniques, UnifiedTechnique{
			Name:         t.Name,
			Variant:      t.Variant,
			KeyDetails:   domain.StringsOrEmpty(t.KeyDetails),
			CommonErrors: domain.StringsOrEmpty(t.CommonErrors),
			Counters:     domain.StringsOrEmpty(t.Counters),
			FollowUps:    domain.StringsOrEmpty(t.FollowUps),
		})
	}
	if seg.DrillPlan != nil {
		for _, item := range seg.DrillPlan.Items {
			us.Drills = append(us.Drills, UnifiedDrill{
				Name:        item.Name,
				WorkSeconds: item.WorkSeconds,
				RestSeconds: item.RestSeconds,
				Reps:        item.Reps,
				Notes:       item.Notes,
			})
		}
	}

	var round domain.RoundPlan
	if seg.RoundPlan != nil {
		round = *seg.RoundPlan
	}
	var partner domain.PartnerPlan
	if seg.PartnerPlan != nil {
		partner = *seg.PartnerPlan
	}
	us.Rounds = domain.FirstInt(round.Rounds, partner.Rounds)
	us.RoundDurationSeconds = domain.FirstInt(round.RoundDurationSeconds, partner.RoundDurationSeconds)
	us.RestSeconds = domain.FirstInt(round.RestSeconds, partner.RestSeconds)
	us.Resistance = partner.Resistance
	us.Intensity = round.Intensity
	us.StartingPosition = round.StartingPosition
	us.WinConditions = domain.StringsOrEmpty(round.WinConditions)
	us.ResetRule = round.ResetRule
	us.AttackerGoal = partner.AttackerGoal
	us.DefenderGoal = partner.DefenderGoal
	if q := partner.QualityTargets; q != nil {
		us.SuccessRateTarget = q.SuccessRateTarget
		us.CleanRepsTarget = q.CleanRepsTarget
		us.DecisionSpeedSeconds = q.DecisionSpeedSeconds
	}

	for _, step := range seg.FlowSequence {
		us.FlowSteps = append(us.FlowSteps, UnifiedFlowStep{
			Pose:        step.Pose,
			HoldSeconds: step.HoldSeconds,
			Transition:  step.Transition,
			Cues:        domain.StringsOrEmpty(step.Cues),
		})
	}
	if bw := seg.BreathworkPlan; bw != nil {
		us.Breathwork = strings.TrimSpace(strings.Join(nonEmpty(bw.Style, bw.Pattern), " "))
	}
	if seg.Media != nil {
		us.VideoURL = seg.Media.VideoURL
	}
	if s := seg.Safety; s != nil {
		us.Contraindications = domain.StringsOrEmpty(s.Contraindications)
		us.StopIf = domain.StringsOrEmpty(s.StopIf)
		us.IntensityCeiling = s.IntensityCeiling
	}
	return us
}

func nonEmpty(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Summary renders the set's targets, e.g. "5 reps @ 100 · RPE 8 · rest 90s".
func (s UnifiedSet) Summary() string {
	var parts []string
	switch {
	case s.Reps != nil && s.Weight != nil:
		parts = append(parts, fmt.Sprintf("%d reps @ %s", *s.Reps, formatNumber(*s.Weight)))
	case s.Reps != nil:
		parts = append(parts, fmt.Sprintf("%d reps", *s.Reps))
	case s.Weight != nil:
		parts = append(parts, "@ "+formatNumber(*s.Weight))
	}
	if s.PercentageOfMax != nil {
		parts = append(parts, fmt.Sprintf("%s%%", formatNumber(*s.PercentageOfMax*100)))
	}
	if s.RPE != nil {
		parts = append(parts, "RPE "+formatNumber(*s.RPE))
	}
	if s.RIR != nil {
		parts = append(parts, "RIR "+formatNumber(*s.RIR))
	}
	if s.Tempo != "" {
		parts = append(parts, "tempo "+s.Tempo)
	}
	if s.DurationSeconds != nil {
		parts = append(parts, formatDuration(*s.DurationSeconds))
	}
	if s.DistanceMeters != nil {
		parts = append(parts, formatNumber(*s.DistanceMeters)+"m")
	}
	if s.Calories != nil {
		parts = append(parts, formatNumber(*s.Calories)+" cal")
	}
	if s.Rounds != nil {
		parts = append(parts, fmt.Sprintf("%d rounds", *s.Rounds))
	}
	if s.Pace != "" {
		parts = append(parts, "pace "+s.Pace)
	}
	if s.Effort != "" {
		parts = append(parts, s.Effort)
	}
	if s.RestSeconds != nil {
		parts = append(parts, "rest "+formatDuration(*s.RestSeconds))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " · ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDuration(seconds int) string {
	if seconds >= 60 && seconds%60 == 0 {
		return fmt.Sprintf("%dmin", seconds/60)
	}
	return fmt.Sprintf("%ds", seconds)
}
