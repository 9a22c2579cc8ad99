package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/service"
)

// FormatBlockList renders stored blocks as a table.
func FormatBlockList(blocks []*domain.Block) string {
	if len(blocks) == 0 {
		return Dim("No blocks yet. Import one with: ironplan block import FILE") + "\n"
	}
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, []string{
			TruncID(b.ID),
			b.Name,
			strconv.Itoa(b.WeekCount()),
			strconv.Itoa(len(b.Days)),
			SourceBadge(b.Source),
			ShortDate(b.CreatedAt),
		})
	}
	return RenderTable([]string{"ID", "NAME", "WEEKS", "DAYS", "SOURCE", "CREATED"}, rows)
}

// FormatBlockDetail renders a block's metadata and per-day summary.
func FormatBlockDetail(b *domain.Block) string {
	var sb strings.Builder
	sb.WriteString(Header(b.Name))
	sb.WriteString("\n")

	kv := func(k, v string) { fmt.Fprintf(&sb, "%s %s\n", Dim(padRight(k, 9)), v) }
	kv("ID", b.ID)
	kv("Weeks", strconv.Itoa(b.WeekCount()))
	kv("Source", SourceBadge(b.Source))
	kv("Created", ShortDate(b.CreatedAt))
	if b.HasWeekTemplates() {
		kv("Templates", strconv.Itoa(len(b.WeekTemplates)))
	}
	if m := b.AIMetadata; m != nil {
		if m.Goal != "" {
			kv("Goal", m.Goal)
		}
		if m.Model != "" {
			kv("Model", m.Model)
		}
	}
	if b.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(b.Description)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	rows := make([][]string, 0, len(b.Days))
	for i, d := range b.Days {
		sets := 0
		for j := range d.Exercises {
			sets += d.Exercises[j].SetCount()
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			d.Name,
			strconv.Itoa(len(d.Exercises)),
			strconv.Itoa(sets),
			strconv.Itoa(len(d.Segments)),
		})
	}
	sb.WriteString(RenderTable([]string{"#", "DAY", "EXERCISES", "SETS", "SEGMENTS"}, rows))
	return sb.String()
}

// FormatImportResult reports a saved import.
func FormatImportResult(res *service.ImportResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Imported %s %s\n", StyleGreen.Render("✓"), Bold(res.Block.Name), TruncID(res.Block.ID))
	fmt.Fprintf(&sb, "  %s · %s · parsed as %s\n",
		Plural(res.Block.WeekCount(), "week", "weeks"),
		Plural(len(res.Block.Days), "day", "days"),
		string(res.Strategy))
	if res.Linked > 0 {
		fmt.Fprintf(&sb, "  %s linked to the library\n", Plural(res.Linked, "exercise", "exercises"))
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&sb, "  %s %s\n", StyleYellow.Render("!"), w)
	}
	return sb.String()
}

// FormatExchangeResult reports export or import counts. verb is
// "Exported" or "Imported".
func FormatExchangeResult(verb string, res *service.ExchangeResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s, %s, %s\n", StyleGreen.Render("✓"), verb,
		Plural(res.Blocks, "block", "blocks"),
		Plural(res.Sessions, "session", "sessions"),
		Plural(res.Exercises, "exercise", "exercises"))
	if res.DeletedBlocks > 0 {
		fmt.Fprintf(&sb, "  replaced %s\n", Plural(res.DeletedBlocks, "block", "blocks"))
	}
	if res.Skipped > 0 {
		fmt.Fprintf(&sb, "  skipped %s already stored\n", Plural(res.Skipped, "record", "records"))
	}
	return sb.String()
}

// FormatExerciseList renders the exercise library.
func FormatExerciseList(defs []domain.ExerciseDefinition) string {
	if len(defs) == 0 {
		return Dim("The exercise library is empty.") + "\n"
	}
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		category := string(d.Category)
		if category == "" {
			category = "-"
		}
		aliases := strings.Join(d.Aliases, ", ")
		if aliases == "" {
			aliases = "-"
		}
		rows = append(rows, []string{d.Name, string(d.Type), category, aliases})
	}
	return RenderTable([]string{"NAME", "TYPE", "CATEGORY", "ALIASES"}, rows)
}
