package session

import (
	"context"
	"strings"
	"time"

	"github.com/verte-zerg/tuispell/internal/metrics"
)

// Recorder receives spelling mismatches.
type Recorder interface {
	Record(ctx context.Context, word string, expected, typed rune, position int)
}

// Machine owns one practice run. It is not safe for concurrent use; all
// calls are expected from a single event loop.
type Machine struct {
	recorder  Recorder
	listeners []Listener
	now       func() time.Time

	words    []string
	letters  [][]rune
	statuses [][]Status
	cursor   Cursor
	phase    Phase

	startedAt time.Time
	endedAt   time.Time
	correct   int
	incorrect int
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// New returns an idle Machine. A nil recorder disables error telemetry.
func New(recorder Recorder, opts ...Option) *Machine {
	m := &Machine{recorder: recorder, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers a listener for all future events.
func (m *Machine) Subscribe(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

// Load installs a word list and moves to Ready. Entries are split on
// whitespace so every word is space-free.
func (m *Machine) Load(words []string) error {
	if m.phase == PhaseActive {
		return ErrSessionActive
	}
	var cleaned []string
	for _, w := range words {
		cleaned = append(cleaned, strings.Fields(w)...)
	}
	if len(cleaned) == 0 {
		return ErrEmptyWordList
	}

	m.clear()
	m.words = cleaned
	m.letters = make([][]rune, len(cleaned))
	m.statuses = make([][]Status, len(cleaned))
	for i, w := range cleaned {
		m.letters[i] = []rune(w)
		m.statuses[i] = make([]Status, len(m.letters[i]))
	}

	m.emit(WordsLoaded{Words: m.Words()})
	m.emit(CaretMoved{})
	m.setPhase(PhaseReady)
	return nil
}

// HandleKey dispatches one keystroke.
func (m *Machine) HandleKey(ctx context.Context, key Key) {
	switch m.phase {
	case PhaseReady:
		if key.Kind != KeyRune {
			return
		}
		if m.cursor.Letter >= len(m.letters[m.cursor.Word]) {
			return
		}
		m.startedAt = m.now()
		m.setPhase(PhaseActive)
	case PhaseActive:
	default:
		return
	}

	switch key.Kind {
	case KeyRune:
		m.typeRune(ctx, key.Rune)
	case KeySpace:
		m.space()
	case KeyBackspace:
		m.backspace()
	}
}

func (m *Machine) typeRune(ctx context.Context, r rune) {
	w, l := m.cursor.Word, m.cursor.Letter
	word := m.letters[w]
	if l >= len(word) {
		return
	}
	expected := word[l]
	status := StatusCorrect
	if r == expected {
		m.correct++
	} else {
		status = StatusIncorrect
		m.incorrect++
		if m.recorder != nil {
			m.recorder.Record(ctx, m.words[w], expected, r, l)
		}
	}
	m.statuses[w][l] = status
	m.emit(LetterStatusChanged{Word: w, Letter: l, Status: status})

	m.cursor.Letter++
	if m.cursor.Letter == len(word) && w == len(m.letters)-1 {
		m.advance()
		return
	}
	m.emitCaret()
	m.emit(MetricsUpdated{Snapshot: m.Snapshot()})
}

func (m *Machine) space() {
	if m.cursor.Letter < len(m.letters[m.cursor.Word]) {
		return
	}
	m.advance()
}

func (m *Machine) advance() {
	m.cursor.Word++
	m.cursor.Letter = 0
	m.emitCaret()
	if m.cursor.Word >= len(m.letters) {
		m.finish()
	}
}

func (m *Machine) backspace() {
	if m.cursor.Letter == 0 {
		return
	}
	m.cursor.Letter--
	w, l := m.cursor.Word, m.cursor.Letter
	m.statuses[w][l] = StatusDefault
	m.emit(LetterStatusChanged{Word: w, Letter: l, Status: StatusDefault})
	m.emitCaret()
}

// Tick recomputes metrics while active. It reports whether the session is
// still running, so callers know whether to schedule another tick.
func (m *Machine) Tick() bool {
	if m.phase != PhaseActive {
		return false
	}
	m.emit(MetricsUpdated{Snapshot: m.Snapshot()})
	return true
}

// Stop ends an active session early.
func (m *Machine) Stop() {
	if m.phase != PhaseActive {
		return
	}
	m.finish()
}

// Reset discards everything and returns to Idle.
func (m *Machine) Reset() {
	m.clear()
	m.setPhase(PhaseIdle)
}

func (m *Machine) clear() {
	m.words = nil
	m.letters = nil
	m.statuses = nil
	m.cursor = Cursor{}
	m.startedAt = time.Time{}
	m.endedAt = time.Time{}
	m.correct = 0
	m.incorrect = 0
}

func (m *Machine) finish() {
	m.endedAt = m.now()
	m.setPhase(PhaseFinished)
	m.emit(MetricsUpdated{Snapshot: m.Snapshot()})
}

func (m *Machine) setPhase(p Phase) {
	if m.phase == p {
		return
	}
	from := m.phase
	m.phase = p
	m.emit(PhaseChanged{From: from, To: p})
}

// emitCaret keeps the caret on the last letter of a fully typed word.
func (m *Machine) emitCaret() {
	c := m.cursor
	if c.Word < len(m.letters) && c.Letter > 0 && c.Letter == len(m.letters[c.Word]) {
		c.Letter--
	}
	m.emit(CaretMoved{Word: c.Word, Letter: c.Letter})
}

func (m *Machine) emit(ev Event) {
	for _, l := range m.listeners {
		l(ev)
	}
}

// Snapshot computes metrics now, or at the finish time once finished.
func (m *Machine) Snapshot() metrics.Snapshot {
	at := m.now()
	if m.phase == PhaseFinished && !m.endedAt.IsZero() {
		at = m.endedAt
	}
	return metrics.Compute(m.startedAt, at, m.correct, m.incorrect)
}

// Phase returns the current lifecycle stage.
func (m *Machine) Phase() Phase { return m.phase }

// Cursor returns the logical cursor.
func (m *Machine) Cursor() Cursor { return m.cursor }

// Counts returns the correct and incorrect keystroke totals.
func (m *Machine) Counts() (correct, incorrect int) { return m.correct, m.incorrect }

// StartedAt is zero until the first counted keystroke.
func (m *Machine) StartedAt() time.Time { return m.startedAt }

// EndedAt is zero until the session finishes.
func (m *Machine) EndedAt() time.Time { return m.endedAt }

// Words returns a copy of the loaded word list.
func (m *Machine) Words() []string {
	return append([]string(nil), m.words...)
}

// Status returns the status of one letter, default when out of range.
func (m *Machine) Status(word, letter int) Status {
	if word < 0 || word >= len(m.statuses) {
		return StatusDefault
	}
	if letter < 0 || letter >= len(m.statuses[word]) {
		return StatusDefault
	}
	return m.statuses[word][letter]
}
