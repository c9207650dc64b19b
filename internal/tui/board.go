package tui

import (
	"time"

	"github.com/verte-zerg/tuispell/internal/metrics"
	"github.com/verte-zerg/tuispell/internal/session"
)

// board is the render-side copy of a session, built only from events.
type board struct {
	words    [][]rune
	statuses [][]session.Status
	caret    session.Cursor
	metrics  metrics.Snapshot
	phase    session.Phase
	typed    int
	total    int
}

func (b *board) reset() {
	*b = board{}
}

func (b *board) apply(ev session.Event) {
	switch ev := ev.(type) {
	case session.WordsLoaded:
		b.reset()
		b.words = make([][]rune, len(ev.Words))
		b.statuses = make([][]session.Status, len(ev.Words))
		for i, w := range ev.Words {
			b.words[i] = []rune(w)
			b.statuses[i] = make([]session.Status, len(b.words[i]))
			b.total += len(b.words[i])
		}
		b.metrics = metrics.Compute(time.Time{}, time.Time{}, 0, 0)
	case session.LetterStatusChanged:
		if ev.Word < 0 || ev.Word >= len(b.statuses) || ev.Letter < 0 || ev.Letter >= len(b.statuses[ev.Word]) {
			return
		}
		prev := b.statuses[ev.Word][ev.Letter]
		switch {
		case prev == session.StatusDefault && ev.Status != session.StatusDefault:
			b.typed++
		case prev != session.StatusDefault && ev.Status == session.StatusDefault:
			b.typed--
		}
		b.statuses[ev.Word][ev.Letter] = ev.Status
	case session.CaretMoved:
		b.caret = session.Cursor{Word: ev.Word, Letter: ev.Letter}
	case session.MetricsUpdated:
		b.metrics = ev.Snapshot
	case session.PhaseChanged:
		if ev.To == session.PhaseIdle {
			b.reset()
		}
		b.phase = ev.To
	}
}

func (b *board) progress() int {
	if b.total == 0 {
		return 0
	}
	return b.typed * 100 / b.total
}
