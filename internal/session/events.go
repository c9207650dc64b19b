package session

import "github.com/verte-zerg/tuispell/internal/metrics"

// Event is a state-change notification for renderers.
type Event interface {
	isEvent()
}

// Listener receives events synchronously on the caller's goroutine.
type Listener func(Event)

// WordsLoaded announces a fresh word list.
type WordsLoaded struct {
	Words []string
}

// LetterStatusChanged reports a new status for one letter.
type LetterStatusChanged struct {
	Word   int
	Letter int
	Status Status
}

// CaretMoved reports where the caret should be drawn. Word equals the
// word count once the session is exhausted.
type CaretMoved struct {
	Word   int
	Letter int
}

// MetricsUpdated carries a recomputed metrics snapshot.
type MetricsUpdated struct {
	metrics.Snapshot
}

// PhaseChanged reports a lifecycle transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

func (WordsLoaded) isEvent()         {}
func (LetterStatusChanged) isEvent() {}
func (CaretMoved) isEvent()          {}
func (MetricsUpdated) isEvent()      {}
func (PhaseChanged) isEvent()        {}
