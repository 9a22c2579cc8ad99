package importer

import (
	"regexp"
	"strings"
)

type hrLabel int

const (
	hrNone hrLabel = iota
	hrTitle
	hrGoal
	hrTargetAthlete
	hrDuration
	hrDifficulty
	hrEquipment
	hrWarmUp
	hrExercises
	hrFinisher
	hrNotes
	hrEstimatedTotalTime
	hrProgression
)

// hrLabels keys are normalized: lowercase letters only.
var hrLabels = map[string]hrLabel{
	"title":              hrTitle,
	"goal":               hrGoal,
	"targetathlete":      hrTargetAthlete,
	"duration":           hrDuration,
	"difficulty":         hrDifficulty,
	"equipment":          hrEquipment,
	"warmup":             hrWarmUp,
	"exercises":          hrExercises,
	"finisher":           hrFinisher,
	"notes":              hrNotes,
	"estimatedtotaltime": hrEstimatedTotalTime,
	"progression":        hrProgression,
}

// singleLine labels take no continuation lines.
var singleLine = map[hrLabel]bool{
	hrTitle: true, hrDuration: true, hrDifficulty: true, hrEstimatedTotalTime: true,
}

var (
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	bulletPattern        = regexp.MustCompile(`^(?:[-*•+]\s*|\d+[.)]\s*)`)
	setsRepsSeparator    = regexp.MustCompile(`[xX×]`)
)

// ParseHumanReadable reads the labeled section grammar:
//
//	Title: Upper/Lower
//	Duration (minutes): 45-60
//	Exercises:
//	- Bench Press | 4x8 | 90 | RPE 8
//
// Only Title is required.
func ParseHumanReadable(text string) (*AuthoringBlock, error) {
	block := &AuthoringBlock{Exercises: []AuthoringExercise{}}
	fields := map[hrLabel][]string{}
	current := hrNone
	recognized := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if label, value, ok := splitLabel(line); ok {
			current = label
			recognized = true
			if value != "" && label != hrExercises {
				fields[label] = append(fields[label], value)
			}
			if singleLine[label] {
				current = hrNone
			}
			continue
		}

		switch current {
		case hrExercises:
			if ex, ok := parseExerciseRow(line); ok {
				block.Exercises = append(block.Exercises, ex)
			}
		case hrNone:
		default:
			fields[current] = append(fields[current], stripBullet(line))
		}
	}

	joined := func(l hrLabel) string { return strings.Join(fields[l], "\n") }

	block.Title = joined(hrTitle)
	if block.Title == "" {
		return nil, &ParseError{
			Kind:     KindHumanReadableFailed,
			Key:      "Title",
			Detail:   "missing Title",
			Detected: recognized,
		}
	}
	block.Goal = NewFlexString(joined(hrGoal))
	block.TargetAthlete = NewFlexString(joined(hrTargetAthlete))
	block.Difficulty = NewFlexString(joined(hrDifficulty))
	block.Equipment = NewFlexString(joined(hrEquipment))
	block.WarmUp = NewFlexString(joined(hrWarmUp))
	block.Finisher = NewFlexString(joined(hrFinisher))
	block.Notes = NewFlexString(joined(hrNotes))
	block.Progression = NewFlexString(joined(hrProgression))
	if n, ok := firstInt(joined(hrDuration)); ok {
		block.DurationMinutes = NewFlexInt(n)
	}
	if n, ok := firstInt(joined(hrEstimatedTotalTime)); ok {
		block.EstimatedTotalTimeMinutes = NewFlexInt(n)
	}
	return block, nil
}

// splitLabel recognizes "Label: value" for the known labels, ignoring
// markdown emphasis and parenthetical suffixes such as "(minutes)".
func splitLabel(line string) (hrLabel, string, bool) {
	idx := strings.IndexByte(line, ':')
	if idx <= 0 || idx > 40 {
		return hrNone, "", false
	}
	name := parentheticalPattern.ReplaceAllString(line[:idx], "")
	label, ok := hrLabels[lettersOnly(name)]
	if !ok {
		return hrNone, "", false
	}
	value := strings.TrimSpace(strings.Trim(strings.TrimSpace(line[idx+1:]), "*_"))
	return label, value, true
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))
}

// parseExerciseRow reads "Name | SetsxReps | RestSeconds | IntensityCue".
// Rows need at least three fields and a numeric sets column, which skips
// markdown table headers and separators.
func parseExerciseRow(line string) (AuthoringExercise, bool) {
	line = strings.Trim(stripBullet(line), "|")
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return AuthoringExercise{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	name := strings.Trim(parts[0], "*_ ")
	if name == "" {
		return AuthoringExercise{}, false
	}

	setsReps := setsRepsSeparator.Split(parts[1], 2)
	sets, ok := firstInt(setsReps[0])
	if !ok {
		return AuthoringExercise{}, false
	}

	ex := AuthoringExercise{Name: name, Sets: NewFlexInt(sets)}
	if len(setsReps) == 2 {
		if reps, ok := firstInt(setsReps[1]); ok {
			ex.Reps = NewFlexInt(reps)
		}
	}
	if rest := restSeconds(parts[2]); rest != nil {
		ex.RestSeconds = NewFlexInt(*rest)
	}
	if len(parts) > 3 {
		ex.Intensity = NewFlexString(strings.Join(parts[3:], " | "))
	}
	return ex, true
}
