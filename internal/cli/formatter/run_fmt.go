package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/runmode"
	"github.com/alexanderramin/ironplan/internal/unified"
)

// FormatRunWeek renders one week of run state: a progress line, then a
// set table and segment list per day. Exercise, set and segment numbers
// are 1-based to match the run command flags.
func FormatRunWeek(title string, week domain.RunWeekState, totalWeeks int, unit string) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s · week %d of %d", title, week.Index+1, totalWeeks)))
	b.WriteString("\n")

	total, done := weekCounts(week)
	status := ""
	switch {
	case week.WeekCompletedAt != nil:
		status = "  " + StyleGreen.Render("✓ marked complete")
	case week.ComputedCompleted():
		status = "  " + StyleGreen.Render("✓ complete")
	}
	b.WriteString(RenderCounts(done, total, 20) + status)
	b.WriteString("\n")
	b.WriteString(Dim("loads in " + unit))
	b.WriteString("\n")

	for i, d := range week.Days {
		b.WriteString("\n")
		writeRunDay(&b, i+1, d)
	}
	return b.String()
}

func writeRunDay(b *strings.Builder, n int, d domain.RunDayState) {
	title := fmt.Sprintf("%d. %s", n, Bold(d.Name))
	if d.ShortCode != "" {
		title += Dim(" (" + d.ShortCode + ")")
	}
	b.WriteString(title + "  " + SessionStatusPill(dayStatus(d)))
	b.WriteString("\n")

	if len(d.Exercises) == 0 && len(d.Segments) == 0 {
		b.WriteString(Dim("  nothing planned"))
		b.WriteString("\n")
		return
	}

	if len(d.Exercises) > 0 {
		var rows [][]string
		for ei, ex := range d.Exercises {
			name := ex.Name
			if ex.TypeOverridden {
				name += Dim(" [" + string(ex.Type) + "]")
			}
			if len(ex.Sets) == 0 {
				rows = append(rows, []string{strconv.Itoa(ei + 1), name, "-", "-", "-", ""})
			}
			for si, s := range ex.Sets {
				num, label := "", ""
				if si == 0 {
					num, label = strconv.Itoa(ei+1), name
				}
				rows = append(rows, []string{
					num, label, strconv.Itoa(si + 1),
					TargetSummary(s), LoggedSummary(s), Check(s.IsCompleted),
				})
			}
		}
		b.WriteString(RenderTable([]string{"EX", "EXERCISE", "SET", "TARGET", "LOGGED", "DONE"}, rows))
	}

	for si, seg := range d.Segments {
		line := fmt.Sprintf("  S%d %s %s", si+1, Check(seg.IsCompleted), seg.Name) + Dim(" · "+string(seg.SegmentType))
		if seg.DurationMinutes != nil {
			line += Dim(fmt.Sprintf(" · %dmin", *seg.DurationMinutes))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// TargetSummary renders a run set's planned targets.
func TargetSummary(s domain.RunSetState) string {
	return unified.UnifiedSet{
		Reps:            s.ExpectedReps,
		Weight:          s.ExpectedWeight,
		PercentageOfMax: s.ExpectedPercent,
		RPE:             s.ExpectedRPE,
		RIR:             s.ExpectedRIR,
		Tempo:           s.Tempo,
		RestSeconds:     s.RestSeconds,
		DurationSeconds: s.ExpectedTime,
		DistanceMeters:  s.ExpectedDistance,
		Calories:        s.ExpectedCalories,
		Rounds:          s.ExpectedRounds,
		Pace:            s.ExpectedPace,
	}.Summary()
}

// LoggedSummary renders what was actually logged on a run set.
func LoggedSummary(s domain.RunSetState) string {
	return unified.UnifiedSet{
		Reps:            s.Reps,
		Weight:          s.Weight,
		RPE:             s.RPE,
		RIR:             s.RIR,
		DurationSeconds: s.Time,
		DistanceMeters:  s.Distance,
		Calories:        s.Calories,
		Rounds:          s.Rounds,
	}.Summary()
}

// FormatTransition announces a completion event; empty for none.
func FormatTransition(t runmode.Transition, totalWeeks int) string {
	switch t.Kind {
	case runmode.TransitionWeekComplete:
		return StyleGreen.Render(fmt.Sprintf("✓ Week %d complete", t.Week+1)) + "\n"
	case runmode.TransitionBlockComplete:
		return StyleGreen.Render(fmt.Sprintf("✓ Block complete: all %s done", Plural(totalWeeks, "week", "weeks"))) + "\n"
	default:
		return ""
	}
}

func weekCounts(w domain.RunWeekState) (total, done int) {
	for _, d := range w.Days {
		t, c := dayCounts(d)
		total += t
		done += c
	}
	return total, done
}

func dayCounts(d domain.RunDayState) (total, done int) {
	for _, ex := range d.Exercises {
		for _, s := range ex.Sets {
			total++
			if s.IsCompleted {
				done++
			}
		}
	}
	for _, seg := range d.Segments {
		total++
		if seg.IsCompleted {
			done++
		}
	}
	return total, done
}

func dayStatus(d domain.RunDayState) domain.SessionStatus {
	total, done := dayCounts(d)
	switch {
	case total > 0 && done == total:
		return domain.SessionCompleted
	case done > 0:
		return domain.SessionInProgress
	default:
		return domain.SessionNotStarted
	}
}
