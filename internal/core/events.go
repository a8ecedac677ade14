package core

// EventKind identifies a side-effect signal emitted by the simulation.
type EventKind int

const (
	EventMusicStart EventKind = iota + 1
	EventJump
	EventLanding
	EventScoreChanged
	EventNewBest
	EventGameOver
	EventMusicStop
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMusicStart:
		return "MusicStart"
	case EventJump:
		return "Jump"
	case EventLanding:
		return "Landing"
	case EventScoreChanged:
		return "ScoreChanged"
	case EventNewBest:
		return "NewBest"
	case EventGameOver:
		return "GameOver"
	case EventMusicStop:
		return "MusicStop"
	default:
		return "Unknown"
	}
}

// Event is a fire-and-forget signal. Score carries the relevant score for
// ScoreChanged, NewBest and GameOver; it is zero otherwise.
type Event struct {
	Kind  EventKind
	Score int
}

