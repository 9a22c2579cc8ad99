package domain

// Segment is a unit of a skill or technique session (martial arts, yoga,
// practice) as opposed to a gym exercise.
type Segment struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SegmentType     SegmentType     `json:"segmentType"`
	Domain          string          `json:"domain,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	Objective       string          `json:"objective,omitempty"`
	Constraints     []string        `json:"constraints,omitempty"`
	Cues            []string        `json:"cues,omitempty"`
	Positions       []string        `json:"positions,omitempty"`
	Techniques      []Technique     `json:"techniques,omitempty"`
	DrillPlan       *DrillPlan      `json:"drillPlan,omitempty"`
	PartnerPlan     *PartnerPlan    `json:"partnerPlan,omitempty"`
	RoundPlan       *RoundPlan      `json:"roundPlan,omitempty"`
	FlowSequence    []FlowStep      `json:"flowSequence,omitempty"`
	BreathworkPlan  *BreathworkPlan `json:"breathwork,omitempty"`
	Media           *Media          `json:"media,omitempty"`
	Safety          *Safety         `json:"safety,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type Technique struct {
	Name         string   `json:"name"`
	Variant      string   `json:"variant,omitempty"`
	KeyDetails   []string `json:"keyDetails,omitempty"`
	CommonErrors []string `json:"commonErrors,omitempty"`
	Counters     []string `json:"counters,omitempty"`
	FollowUps    []string `json:"followUps,omitempty"`
}

type DrillPlan struct {
	Items []DrillItem `json:"items"`
}

type DrillItem struct {
	Name        string `json:"name"`
	WorkSeconds *int   `json:"workSeconds,omitempty"`
	RestSeconds *int   `json:"restSeconds,omitempty"`
	Reps        *int   `json:"reps,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type PartnerPlan struct {
	Rounds               *int            `json:"rounds,omitempty"`
	RoundDurationSeconds *int            `json:"roundDurationSeconds,omitempty"`
	RestSeconds          *int            `json:"restSeconds,omitempty"`
	Resistance           *int            `json:"resistance,omitempty"` // 0–100
	AttackerGoal         string          `json:"attackerGoal,omitempty"`
	DefenderGoal         string          `json:"defenderGoal,omitempty"`
	QualityTargets       *QualityTargets `json:"qualityTargets,omitempty"`
}

type QualityTargets struct {
	SuccessRateTarget    *float64 `json:"successRateTarget,omitempty"`
	CleanRepsTarget      *int     `json:"cleanRepsTarget,omitempty"`
	DecisionSpeedSeconds *float64 `json:"decisionSpeedSeconds,omitempty"`
}

type RoundPlan struct {
	Rounds               *int     `json:"rounds,omitempty"`
	RoundDurationSeconds *int     `json:"roundDurationSeconds,omitempty"`
	RestSeconds          *int     `json:"restSeconds,omitempty"`
	Intensity            string   `json:"intensity,omitempty"`
	StartingPosition     string   `json:"startingPosition,omitempty"`
	WinConditions        []string `json:"winConditions,omitempty"`
	ResetRule            string   `json:"resetRule,omitempty"`
}

type FlowStep struct {
	Pose        string   `json:"pose"`
	HoldSeconds *int     `json:"holdSeconds,omitempty"`
	Transition  string   `json:"transition,omitempty"`
	Cues        []string `json:"cues,omitempty"`
}

type BreathworkPlan struct {
	Style           string `json:"style,omitempty"`
	Pattern         string `json:"pattern,omitempty"`
	DurationSeconds *int   `json:"durationSeconds,omitempty"`
	Rounds          *int   `json:"rounds,omitempty"`
}

type Media struct {
	VideoURL       string `json:"videoUrl,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	DiagramAssetID string `json:"diagramAssetId,omitempty"`
}

type Safety struct {
	Contraindications []string `json:"contraindications,omitempty"`
	StopIf            []string `json:"stopIf,omitempty"`
	IntensityCeiling  *int     `json:"intensityCeiling,omitempty"`
}

// ClampResistance bounds a partner resistance value to 0–100.
func ClampResistance(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
