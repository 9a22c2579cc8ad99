package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
)

// WeekVolume sums reps × weight over the completed sets of a week. Sets
// without both values add nothing.
func WeekVolume(w domain.RunWeekState) float64 {
	var total float64
	for _, d := range w.Days {
		for _, ex := range d.Exercises {
			for _, s := range ex.Sets {
				if !s.IsCompleted || s.Reps == nil || s.Weight == nil {
					continue
				}
				total += float64(*s.Reps) * *s.Weight
			}
		}
	}
	return total
}

// FormatBlockProgress renders one row per week and, once any week has
// logged volume, a chart of volume across the block.
func FormatBlockProgress(title string, weeks []domain.RunWeekState, unit string) string {
	var b strings.Builder
	b.WriteString(Header(title + " · progress"))
	b.WriteString("\n\n")

	volumes := make([]float64, len(weeks))
	rows := make([][]string, 0, len(weeks))
	for i, w := range weeks {
		total, done := weekCounts(w)
		volumes[i] = WeekVolume(w)

		pct := 0.0
		if total > 0 {
			pct = float64(done) / float64(total)
		}
		status := ""
		if w.IsCompleted() {
			status = StyleGreen.Render("✓")
		}
		rows = append(rows, []string{
			strconv.Itoa(w.Index + 1),
			fmt.Sprintf("%d/%d", done, total),
			humanize.Commaf(volumes[i]),
			status,
			RenderProgress(pct, 10),
		})
	}
	b.WriteString(RenderTable([]string{"WEEK", "SETS", "VOLUME", "DONE", "PROGRESS"}, rows))

	if len(weeks) < 2 || !anyPositive(volumes) {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(asciigraph.Plot(volumes,
		asciigraph.Height(8),
		asciigraph.Width(max(len(volumes)*6, 30)),
		asciigraph.Precision(0),
		asciigraph.Caption("volume per week ("+unit+")"),
	))
	b.WriteString("\n")
	return b.String()
}

func anyPositive(vs []float64) bool {
	for _, v := range vs {
		if v > 0 {
			return true
		}
	}
	return false
}
