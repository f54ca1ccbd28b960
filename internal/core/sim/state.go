package sim

type State uint8

const (
	StateMenu State = iota
	StateGenerating
	StatePreview
	StatePlaying
	StatePaused
	StateWon
	StateDead
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateGenerating:
		return "generating"
	case StatePreview:
		return "preview"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateWon:
		return "won"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// transitions lists the legal moves of the session lifecycle. Generating
// may be entered from anywhere but itself.
var transitions = map[State][]State{
	StateMenu:       {StateGenerating},
	StateGenerating: {StatePreview, StateMenu},
	StatePreview:    {StateGenerating, StatePlaying},
	StatePlaying:    {StateGenerating, StatePaused, StateWon, StateDead},
	StatePaused:     {StateGenerating, StatePlaying},
	StateWon:        {StateGenerating, StatePlaying},
	StateDead:       {StateGenerating, StatePlaying},
}

func (s State) canMoveTo(next State) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Finished reports whether the session has ended in a win or a death.
func (s State) Finished() bool { return s == StateWon || s == StateDead }
