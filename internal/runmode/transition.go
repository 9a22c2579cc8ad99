package runmode

import "github.com/alexanderramin/ironplan/internal/domain"

// TransitionKind is the completion event raised by a save.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionWeekComplete
	TransitionBlockComplete
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionWeekComplete:
		return "week_complete"
	case TransitionBlockComplete:
		return "block_complete"
	default:
		return "none"
	}
}

type Transition struct {
	Kind TransitionKind
	// Week is the 0-based index of the week that flipped to complete.
	Week int
}

// DetectTransition compares week completion before and after a save. Only
// the first week to flip from incomplete to complete is reported, and it
// is reported as a block completion when every week is now complete.
func DetectTransition(prev, curr []domain.RunWeekState) Transition {
	for i := range curr {
		wasDone := i < len(prev) && prev[i].IsCompleted()
		if wasDone || !curr[i].IsCompleted() {
			continue
		}
		if allCompleted(curr) {
			return Transition{Kind: TransitionBlockComplete, Week: curr[i].Index}
		}
		return Transition{Kind: TransitionWeekComplete, Week: curr[i].Index}
	}
	return Transition{Kind: TransitionNone}
}

func allCompleted(weeks []domain.RunWeekState) bool {
	if len(weeks) == 0 {
		return false
	}
	for i := range weeks {
		if !weeks[i].IsCompleted() {
			return false
		}
	}
	return true
}
