package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuispell/internal/errorlog"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuispell.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		id, err := st.InsertSession(ctx, model.SessionStats{
			StartedAt:  start,
			EndedAt:    end,
			Source:     model.SourceLocal,
			Words:      10,
			Correct:    50,
			Incorrect:  5,
			DurationMs: end.Sub(start).Milliseconds(),
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	errorlog.New(st, nil).Record(ctx, "cat", 'a', 'x', 1)

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if rec := report.Errors["cat"]; rec == nil || rec.Count != 1 {
		t.Fatalf("expected persisted error for cat, got %+v", report.Errors)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 5, 10, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Sessions: 2") {
		t.Fatalf("missing session count in %q", out)
	}
	// 55 chars over 30s is 22 gross WPM.
	if !strings.Contains(out, "Avg WPM: 22.00") {
		t.Fatalf("missing avg wpm in %q", out)
	}
	if !strings.Contains(out, "x→a@1") {
		t.Fatalf("missing error detail in %q", out)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil, 5, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No sessions found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("flat series: got %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("expected min and max glyphs, got %q", got)
	}
}
