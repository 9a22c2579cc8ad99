package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ironplan/internal/unified"
	"github.com/charmbracelet/lipgloss"
)

// FormatWhiteboard renders a normalized block week by week. Blocks
// without week templates print their shared day list once.
func FormatWhiteboard(ub *unified.UnifiedBlock, unit string) string {
	var b strings.Builder

	b.WriteString(Header(ub.Title))
	b.WriteString("\n")
	days := 0
	if len(ub.Weeks) > 0 {
		days = len(ub.Weeks[0])
	}
	b.WriteString(Dim(fmt.Sprintf("%s · %s per week · loads in %s",
		Plural(ub.WeekCount, "week", "weeks"), Plural(days, "day", "days"), unit)))
	b.WriteString("\n")

	if ub.TemplateIndices == nil {
		if len(ub.Weeks) > 0 {
			label := "Every week"
			if ub.WeekCount > 1 {
				label = fmt.Sprintf("Weeks 1-%d", ub.WeekCount)
			}
			writeWeek(&b, label, ub.Weeks[0])
		}
		return b.String()
	}

	for i, week := range ub.Weeks {
		label := fmt.Sprintf("Week %d", i+1)
		if i < len(ub.TemplateIndices) && ub.TemplateIndices[i] != i {
			label += fmt.Sprintf(" (template %d)", ub.TemplateIndices[i]+1)
		}
		writeWeek(&b, label, week)
	}
	return b.String()
}

func writeWeek(b *strings.Builder, label string, days []unified.UnifiedDay) {
	b.WriteString("\n")
	b.WriteString(Header(label))
	b.WriteString("\n")
	if len(days) == 0 {
		b.WriteString(Dim("  no training days"))
		b.WriteString("\n")
		return
	}
	for _, d := range days {
		writeDay(b, d)
	}
}

func writeDay(b *strings.Builder, d unified.UnifiedDay) {
	title := Bold(d.Name)
	if d.ShortCode != "" {
		title += Dim(" (" + d.ShortCode + ")")
	}
	if d.Goal != "" {
		title += Dim(" · " + d.Goal)
	}
	b.WriteString(title)
	b.WriteString("\n")

	nameWidth := 0
	for _, ex := range d.Exercises {
		nameWidth = max(nameWidth, lipgloss.Width(ex.Name))
	}
	for _, ex := range d.Exercises {
		name := ex.Name
		if ex.SetGroupID != "" {
			name = StylePurple.Render(name)
		}
		fmt.Fprintf(b, "  %s  %s\n", padRight(name, nameWidth), strings.Join(GroupSets(ex.Sets), ", "))
		if ex.Progression != "" {
			fmt.Fprintf(b, "    %s\n", StyleGreen.Render(ex.Progression))
		}
		if ex.Notes != "" {
			fmt.Fprintf(b, "    %s\n", Dim(ex.Notes))
		}
	}

	for _, seg := range d.Segments {
		line := "  ◆ " + seg.Name + Dim(" · "+seg.SegmentType)
		if seg.DurationMinutes != nil {
			line += Dim(fmt.Sprintf(" · %dmin", *seg.DurationMinutes))
		}
		b.WriteString(line)
		b.WriteString("\n")
		if seg.Objective != "" {
			fmt.Fprintf(b, "    %s\n", Dim(seg.Objective))
		}
	}

	if d.Notes != "" {
		fmt.Fprintf(b, "  %s\n", Dim(d.Notes))
	}
}

// GroupSets collapses runs of identical set targets into "N × target".
func GroupSets(sets []unified.UnifiedSet) []string {
	if len(sets) == 0 {
		return []string{"-"}
	}
	var out []string
	run, prev := 0, ""
	flush := func() {
		if run == 1 {
			out = append(out, prev)
		} else if run > 1 {
			out = append(out, fmt.Sprintf("%d × %s", run, prev))
		}
	}
	for _, s := range sets {
		summary := s.Summary()
		if summary == prev {
			run++
			continue
		}
		flush()
		prev, run = summary, 1
	}
	flush()
	return out
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
