package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// ProgressionRule describes week-over-week change for an exercise.
type ProgressionRule struct {
	Type        ProgressionType   `json:"type"`
	DeltaWeight *float64          `json:"deltaWeight,omitempty"`
	DeltaSets   *int              `json:"deltaSets,omitempty"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

var firstNumberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseProgressionRule classifies free text such as "+5 lbs" or "+1 set".
// The first numeric token is the delta; "set"/"sets" makes it a volume
// rule, any other number a weight rule, and text without a number a custom
// rule with no deltas.
func ParseProgressionRule(text string) ProgressionRule {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ProgressionRule{Type: ProgressionCustom}
	}

	match := firstNumberPattern.FindString(trimmed)
	if match == "" {
		return ProgressionRule{Type: ProgressionCustom, Parameters: map[string]string{"description": trimmed}}
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return ProgressionRule{Type: ProgressionCustom, Parameters: map[string]string{"description": trimmed}}
	}

	if mentionsSets(trimmed) {
		sets := int(value)
		return ProgressionRule{Type: ProgressionVolume, DeltaSets: &sets}
	}
	return ProgressionRule{Type: ProgressionWeight, DeltaWeight: &value}
}

func mentionsSets(s string) bool {
	for _, word := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	}) {
		if word == "set" || word == "sets" {
			return true
		}
	}
	return false
}

// Describe renders the rule back to short human text.
func (p ProgressionRule) Describe() string {
	switch p.Type {
	case ProgressionWeight:
		if p.DeltaWeight != nil {
			return "+" + strconv.FormatFloat(*p.DeltaWeight, 'f', -1, 64) + " / week"
		}
	case ProgressionVolume:
		if p.DeltaSets != nil {
			if *p.DeltaSets == 1 {
				return "+1 set / week"
			}
			return "+" + strconv.Itoa(*p.DeltaSets) + " sets / week"
		}
	}
	if d := p.Parameters["description"]; d != "" {
		return d
	}
	return ""
}
