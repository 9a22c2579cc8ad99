package importer

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/alexanderramin/ironplan/internal/domain"
)

// AuthoringBlock is the AI/manual JSON input format. Keys match
// case-insensitively. Exactly one of Weeks, Days or Exercises is used;
// see Content.
type AuthoringBlock struct {
	Title                     string              `json:"Title"`
	Goal                      FlexString          `json:"Goal"`
	TargetAthlete             FlexString          `json:"TargetAthlete"`
	DurationMinutes           FlexInt             `json:"DurationMinutes"`
	Difficulty                FlexString          `json:"Difficulty"`
	Equipment                 FlexString          `json:"Equipment"`
	WarmUp                    FlexString          `json:"WarmUp"`
	Exercises                 []AuthoringExercise `json:"Exercises,omitempty"`
	Days                      []AuthoringDay      `json:"Days,omitempty"`
	Weeks                     [][]AuthoringDay    `json:"Weeks,omitempty"`
	Finisher                  FlexString          `json:"Finisher"`
	Notes                     FlexString          `json:"Notes"`
	EstimatedTotalTimeMinutes FlexInt             `json:"EstimatedTotalTimeMinutes"`
	Progression               FlexString          `json:"Progression"`
	NumberOfWeeks             FlexInt             `json:"NumberOfWeeks"`
}

type AuthoringDay struct {
	Name      string              `json:"name"`
	ShortCode string              `json:"shortCode,omitempty"`
	Goal      FlexString          `json:"goal"`
	Notes     FlexString          `json:"notes"`
	Exercises []AuthoringExercise `json:"exercises,omitempty"`
	Segments  []AuthoringSegment  `json:"segments,omitempty"`
}

type AuthoringExercise struct {
	Name             string     `json:"name"`
	Type             FlexString `json:"type"`
	Category         FlexString `json:"category"`
	ConditioningType FlexString `json:"conditioningType"`
	SetGroupID       string     `json:"setGroupId,omitempty"`
	Sets             FlexInt    `json:"sets"`
	Reps             FlexInt    `json:"reps"`
	Weight           FlexFloat  `json:"weight"`
	PercentageOfMax  FlexFloat  `json:"percentageOfMax"`
	RPE              FlexFloat  `json:"rpe"`
	RIR              FlexFloat  `json:"rir"`
	Tempo            FlexString `json:"tempo"`
	RestSeconds      FlexInt    `json:"restSeconds"`
	// Intensity is a free cue such as "RPE 8", "RIR 2" or "75%".
	Intensity       FlexString `json:"intensity"`
	DurationSeconds FlexInt    `json:"durationSeconds"`
	DurationMinutes FlexInt    `json:"durationMinutes"`
	DistanceMeters  FlexFloat  `json:"distanceMeters"`
	Calories        FlexFloat  `json:"calories"`
	Rounds          FlexInt    `json:"rounds"`
	Pace            FlexString `json:"pace"`
	Effort          FlexString `json:"effort"`
	Notes           FlexString `json:"notes"`
	Progression     FlexString `json:"progression"`
}

type AuthoringSegment struct {
	Name            string                 `json:"name"`
	SegmentType     FlexString             `json:"segmentType"`
	Domain          string                 `json:"domain,omitempty"`
	DurationMinutes FlexInt                `json:"durationMinutes"`
	Objective       FlexString             `json:"objective"`
	Constraints     FlexString             `json:"constraints"`
	Cues            FlexString             `json:"cues"`
	Positions       FlexString             `json:"positions"`
	Techniques      []domain.Technique     `json:"techniques,omitempty"`
	DrillPlan       *domain.DrillPlan      `json:"drillPlan,omitempty"`
	PartnerPlan     *domain.PartnerPlan    `json:"partnerPlan,omitempty"`
	RoundPlan       *domain.RoundPlan      `json:"roundPlan,omitempty"`
	FlowSequence    []domain.FlowStep      `json:"flowSequence,omitempty"`
	Breathwork      *domain.BreathworkPlan `json:"breathwork,omitempty"`
	Media           *domain.Media          `json:"media,omitempty"`
	Safety          *domain.Safety         `json:"safety,omitempty"`
	Notes           FlexString             `json:"notes"`
}

// Content is the block's day structure: one of WeeksContent, DaysContent
// or ExercisesContent.
type Content interface {
	isContent()
}

type WeeksContent struct{ Weeks [][]AuthoringDay }

type DaysContent struct{ Days []AuthoringDay }

// ExercisesContent is a single flat exercise list (a one-day block).
type ExercisesContent struct{ Exercises []AuthoringExercise }

func (WeeksContent) isContent()     {}
func (DaysContent) isContent()      {}
func (ExercisesContent) isContent() {}

// Content picks the day structure with priority Weeks > Days > Exercises.
// An explicitly empty Exercises list still counts as content.
func (b *AuthoringBlock) Content() (Content, bool) {
	switch {
	case len(b.Weeks) > 0:
		return WeeksContent{Weeks: b.Weeks}, true
	case len(b.Days) > 0:
		return DaysContent{Days: b.Days}, true
	case b.Exercises != nil:
		return ExercisesContent{Exercises: b.Exercises}, true
	}
	return nil, false
}

// FlexInt accepts a JSON number or a numeric string. Strings keep their
// first integer, so "8-12" reads as 8; strings without digits leave the
// value unset.
type FlexInt struct {
	value int
	set   bool
}

func NewFlexInt(v int) FlexInt { return FlexInt{value: v, set: true} }

func (f FlexInt) Int() (int, bool) { return f.value, f.set }

// Ptr returns nil when unset.
func (f FlexInt) Ptr() *int {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = FlexInt{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, ok := firstInt(s)
		*f = FlexInt{value: n, set: ok}
		return nil
	}
	num, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf(0)}
	}
	*f = FlexInt{value: int(num), set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.value)), nil
}

// FlexFloat is FlexInt for decimals.
type FlexFloat struct {
	value float64
	set   bool
}

func NewFlexFloat(v float64) FlexFloat { return FlexFloat{value: v, set: true} }

func (f FlexFloat) Ptr() *float64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = FlexFloat{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, ok := firstFloat(s)
		*f = FlexFloat{value: v, set: ok}
		return nil
	}
	num, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf(0.0)}
	}
	*f = FlexFloat{value: num, set: true}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.value, 'f', -1, 64)), nil
}

// FlexString accepts a string, a number, or a list of those.
type FlexString struct {
	parts []string
}

func NewFlexString(parts ...string) FlexString { return FlexString{parts: parts} }

// String joins list values with ", ".
func (f FlexString) String() string { return strings.Join(f.parts, ", ") }

// List returns the non-empty parts.
func (f FlexString) List() []string {
	var out []string
	for _, p := range f.parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexString{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString{parts: []string{s}}
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parts := make([]string, 0, len(raw))
		for _, r := range raw {
			var item FlexString
			if err := item.UnmarshalJSON(r); err != nil {
				return err
			}
			parts = append(parts, item.parts...)
		}
		*f = FlexString{parts: parts}
		return nil
	case '{', 't', 'f':
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: reflect.TypeOf("")}
	}
	*f = FlexString{parts: []string{string(data)}}
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func jsonKind(data []byte) string {
	if len(data) == 0 {
		return "empty"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	case '"':
		return "string"
	}
	return "number"
}
