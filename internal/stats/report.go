package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/tuispell/internal/errorlog"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate
	Errors   model.ErrorMap
}

// BuildReport loads session history and the persisted error log.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Sessions: sessions,
		Errors:   errorlog.New(st, nil).Snapshot(ctx),
	}, nil
}

// Render writes the session summary followed by the misspelled words table.
func (r Report) Render(w io.Writer, window, topWords, width int) error {
	if err := RenderSummary(w, r.Sessions, window, width-len("WPM trend: ")); err != nil {
		return err
	}
	return RenderErrorTable(w, r.Errors, topWords, width)
}
