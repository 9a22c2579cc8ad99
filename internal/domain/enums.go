package domain

type BlockSource string

const (
	SourceUser BlockSource = "user"
	SourceAI   BlockSource = "ai"
)

type ExerciseType string

const (
	ExerciseStrength     ExerciseType = "strength"
	ExerciseConditioning ExerciseType = "conditioning"
	ExerciseMixed        ExerciseType = "mixed"
	ExerciseOther        ExerciseType = "other"
)

type ExerciseCategory string

const (
	CategorySquat           ExerciseCategory = "squat"
	CategoryHinge           ExerciseCategory = "hinge"
	CategoryPressHorizontal ExerciseCategory = "pressHorizontal"
	CategoryPressVertical   ExerciseCategory = "pressVertical"
	CategoryPullHorizontal  ExerciseCategory = "pullHorizontal"
	CategoryPullVertical    ExerciseCategory = "pullVertical"
	CategoryCarry           ExerciseCategory = "carry"
	CategoryCore            ExerciseCategory = "core"
	CategoryOlympic         ExerciseCategory = "olympic"
	CategoryConditioning    ExerciseCategory = "conditioning"
	CategoryMobility        ExerciseCategory = "mobility"
	CategoryMixed           ExerciseCategory = "mixed"
	CategoryOther           ExerciseCategory = "other"
)

type ConditioningType string

const (
	ConditioningMonostructural ConditioningType = "monostructural"
	ConditioningMixedModal     ConditioningType = "mixedModal"
	ConditioningIntervals      ConditioningType = "intervals"
	ConditioningEMOM           ConditioningType = "emom"
	ConditioningAMRAP          ConditioningType = "amrap"
	ConditioningForTime        ConditioningType = "forTime"
	ConditioningSteadyState    ConditioningType = "steadyState"
	ConditioningTabata         ConditioningType = "tabata"
	ConditioningOther          ConditioningType = "other"
)

type SegmentType string

const (
	SegmentWarmup         SegmentType = "warmup"
	SegmentMobility       SegmentType = "mobility"
	SegmentTechnique      SegmentType = "technique"
	SegmentDrill          SegmentType = "drill"
	SegmentPositionalSpar SegmentType = "positionalSpar"
	SegmentRolling        SegmentType = "rolling"
	SegmentCooldown       SegmentType = "cooldown"
	SegmentLecture        SegmentType = "lecture"
	SegmentBreathwork     SegmentType = "breathwork"
	SegmentPractice       SegmentType = "practice"
	SegmentPresentation   SegmentType = "presentation"
	SegmentReview         SegmentType = "review"
	SegmentDemonstration  SegmentType = "demonstration"
	SegmentOther          SegmentType = "other"
)

type ProgressionType string

const (
	ProgressionWeight ProgressionType = "weight"
	ProgressionVolume ProgressionType = "volume"
	ProgressionCustom ProgressionType = "custom"
)

type SessionStatus string

const (
	SessionNotStarted SessionStatus = "notStarted"
	SessionInProgress SessionStatus = "inProgress"
	SessionCompleted  SessionStatus = "completed"
)

type TrainingGoal string

const (
	GoalStrength     TrainingGoal = "strength"
	GoalHypertrophy  TrainingGoal = "hypertrophy"
	GoalPower        TrainingGoal = "power"
	GoalConditioning TrainingGoal = "conditioning"
	GoalEndurance    TrainingGoal = "endurance"
	GoalMobility     TrainingGoal = "mobility"
	GoalPeaking      TrainingGoal = "peaking"
	GoalDeload       TrainingGoal = "deload"
	GoalMixed        TrainingGoal = "mixed"
)
