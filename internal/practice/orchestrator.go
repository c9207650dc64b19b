// Package practice wires word sources, the session machine and persistence
// into one practice loop driven by Bubble Tea messages.
package practice

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/session"
	"github.com/verte-zerg/tuispell/internal/wordsource"
)

// DefaultTickInterval is the metrics refresh period while a session is active.
const DefaultTickInterval = time.Second

// ErrorLog records mismatches and exposes the accumulated map.
type ErrorLog interface {
	session.Recorder
	Snapshot(ctx context.Context) model.ErrorMap
}

// History persists finished sessions.
type History interface {
	InsertSession(ctx context.Context, stats model.SessionStats) (int64, error)
}

// Deps are the collaborators of an Orchestrator. Advisor and History may be nil.
type Deps struct {
	Source  wordsource.Source
	Advisor wordsource.Advisor
	Errors  ErrorLog
	History History
	Logger  *zap.SugaredLogger
}

// WordsMsg delivers a word fetch result.
type WordsMsg struct {
	Gen   int
	Words []string
	Err   error
}

// TickMsg drives the metrics refresh.
type TickMsg struct {
	Gen int
	ID  int
	At  time.Time
}

// SuggestionsMsg delivers post-session practice suggestions.
type SuggestionsMsg struct {
	Gen         int
	Suggestions []string
}

// Orchestrator owns the current session and its asynchronous work. Like
// session.Machine it must only be used from the Bubble Tea event loop.
type Orchestrator struct {
	cfg       model.Config
	deps      Deps
	logger    *zap.SugaredLogger
	base      context.Context
	interval  time.Duration
	now       func() time.Time
	listeners []session.Listener

	machine     *session.Machine
	gen         int
	tickID      int
	cancel      context.CancelFunc
	loading     bool
	err         error
	suggestions []string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides time.Now for the orchestrator and its machines.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.interval = d
		}
	}
}

// New builds an Orchestrator. ctx bounds every fetch it starts.
func New(ctx context.Context, cfg model.Config, deps Deps, opts ...Option) *Orchestrator {
	if cfg.Words <= 0 {
		cfg.Words = wordsource.DefaultCount
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	o := &Orchestrator{
		cfg:      cfg,
		deps:     deps,
		logger:   logger,
		base:     ctx,
		interval: DefaultTickInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.machine = o.newMachine()
	return o
}

// Subscribe registers a listener for session events. It survives restarts.
func (o *Orchestrator) Subscribe(l session.Listener) {
	if l != nil {
		o.listeners = append(o.listeners, l)
	}
}

// Start discards the current session and fetches words for a new one.
func (o *Orchestrator) Start() tea.Cmd {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.gen++
	o.tickID++
	o.machine.Reset()
	o.machine = o.newMachine()
	o.loading = true
	o.err = nil
	o.suggestions = nil

	ctx, cancel := context.WithCancel(o.base)
	o.cancel = cancel
	gen, count, source := o.gen, o.cfg.Words, o.deps.Source
	o.logger.Debugw("starting session", "gen", gen, "count", count)
	return func() tea.Msg {
		words, err := source.FetchWords(ctx, count)
		return WordsMsg{Gen: gen, Words: words, Err: err}
	}
}

// Restart is Start; it may be called in any phase.
func (o *Orchestrator) Restart() tea.Cmd {
	return o.Start()
}

// Stop finishes an active session early.
func (o *Orchestrator) Stop() tea.Cmd {
	if o.machine.Phase() != session.PhaseActive {
		return nil
	}
	o.machine.Stop()
	return o.finished()
}

// Close cancels any in-flight fetch.
func (o *Orchestrator) Close() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.tickID++
}

// HandleKey forwards a keystroke and returns follow-up work: the first tick
// when the session becomes active, or persistence and suggestions when it
// finishes.
func (o *Orchestrator) HandleKey(key session.Key) tea.Cmd {
	before := o.machine.Phase()
	o.machine.HandleKey(o.base, key)
	after := o.machine.Phase()
	if before == after {
		return nil
	}
	switch after {
	case session.PhaseActive:
		o.tickID++
		return o.scheduleTick()
	case session.PhaseFinished:
		return o.finished()
	default:
		return nil
	}
}

// Update consumes the orchestrator's own messages and ignores the rest.
func (o *Orchestrator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case WordsMsg:
		return o.handleWords(msg)
	case TickMsg:
		return o.handleTick(msg)
	case SuggestionsMsg:
		if msg.Gen != o.gen {
			return nil
		}
		o.suggestions = msg.Suggestions
		return nil
	default:
		return nil
	}
}

func (o *Orchestrator) handleWords(msg WordsMsg) tea.Cmd {
	if msg.Gen != o.gen {
		o.logger.Debugw("dropping stale word fetch", "gen", msg.Gen, "current", o.gen)
		return nil
	}
	o.loading = false
	o.cancel = nil
	if msg.Err != nil {
		o.logger.Errorw("word fetch failed", "error", msg.Err)
		o.err = msg.Err
		return nil
	}
	if err := o.machine.Load(msg.Words); err != nil {
		o.logger.Errorw("could not load words", "count", len(msg.Words), "error", err)
		o.err = err
		return nil
	}
	o.logger.Infow("session ready", "gen", o.gen, "words", len(msg.Words))
	return nil
}

func (o *Orchestrator) handleTick(msg TickMsg) tea.Cmd {
	if msg.Gen != o.gen || msg.ID != o.tickID {
		return nil
	}
	if !o.machine.Tick() {
		return nil
	}
	return o.scheduleTick()
}

func (o *Orchestrator) scheduleTick() tea.Cmd {
	gen, id := o.gen, o.tickID
	return tea.Tick(o.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, ID: id, At: t}
	})
}

func (o *Orchestrator) finished() tea.Cmd {
	o.tickID++
	o.saveSession()
	return o.fetchSuggestions()
}

func (o *Orchestrator) saveSession() {
	if o.deps.History == nil {
		return
	}
	startedAt, endedAt := o.machine.StartedAt(), o.machine.EndedAt()
	if startedAt.IsZero() {
		return
	}
	correct, incorrect := o.machine.Counts()
	stats := model.SessionStats{
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		Source:     o.cfg.Source,
		Words:      len(o.machine.Words()),
		Correct:    correct,
		Incorrect:  incorrect,
		DurationMs: endedAt.Sub(startedAt).Milliseconds(),
	}
	if _, err := o.deps.History.InsertSession(o.base, stats); err != nil {
		o.logger.Warnw("failed to save session", "error", err)
	}
}

func (o *Orchestrator) fetchSuggestions() tea.Cmd {
	if !o.cfg.Suggest || o.deps.Advisor == nil || o.deps.Errors == nil {
		return nil
	}
	errs := o.deps.Errors.Snapshot(o.base)
	if len(errs) == 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(o.base)
	o.cancel = cancel
	gen, advisor := o.gen, o.deps.Advisor
	return func() tea.Msg {
		defer cancel()
		return SuggestionsMsg{Gen: gen, Suggestions: advisor.FetchSuggestions(ctx, errs)}
	}
}

func (o *Orchestrator) newMachine() *session.Machine {
	var recorder session.Recorder
	if o.deps.Errors != nil {
		recorder = o.deps.Errors
	}
	m := session.New(recorder, session.WithClock(o.now))
	m.Subscribe(o.emit)
	return m
}

func (o *Orchestrator) emit(ev session.Event) {
	for _, l := range o.listeners {
		l(ev)
	}
}

// Machine returns the current session.
func (o *Orchestrator) Machine() *session.Machine { return o.machine }

// Generation increases on every Start.
func (o *Orchestrator) Generation() int { return o.gen }

// Loading reports whether a word fetch is in flight.
func (o *Orchestrator) Loading() bool { return o.loading }

// Err returns the last word fetch or load failure, nil once a new fetch starts.
func (o *Orchestrator) Err() error { return o.err }

// Suggestions returns the suggestions for the finished session, if any.
func (o *Orchestrator) Suggestions() []string { return o.suggestions }

// Source returns the configured word source name.
func (o *Orchestrator) Source() string { return o.cfg.Source }

// IsUpstreamFailure reports whether err came from the word source.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, wordsource.ErrUpstreamFetch)
}
