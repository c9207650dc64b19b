// Package session implements the typing session state machine.
package session

import "errors"

// ErrEmptyWordList is returned by Load when there is nothing to type.
var ErrEmptyWordList = errors.New("empty word list")

// ErrSessionActive is returned by Load while a session is being typed.
var ErrSessionActive = errors.New("session is active")

// Phase is the session lifecycle stage.
type Phase int

// Session phases.
const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseActive
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Status is the typed state of a single letter.
type Status int

// Letter statuses.
const (
	StatusDefault Status = iota
	StatusCorrect
	StatusIncorrect
)

func (s Status) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	default:
		return "default"
	}
}

// KeyKind classifies a keystroke before dispatch.
type KeyKind int

// Key kinds.
const (
	KeyIgnored KeyKind = iota
	KeyRune
	KeySpace
	KeyBackspace
)

// Key is a filtered keystroke.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey classifies a typed rune.
func RuneKey(r rune) Key {
	switch {
	case r == ' ':
		return Key{Kind: KeySpace, Rune: r}
	case r < ' ' || r == 0x7f:
		return Key{Kind: KeyIgnored}
	default:
		return Key{Kind: KeyRune, Rune: r}
	}
}

// Backspace returns the backspace key.
func Backspace() Key {
	return Key{Kind: KeyBackspace}
}

// Cursor points at the next expected letter.
type Cursor struct {
	Word   int
	Letter int
}
