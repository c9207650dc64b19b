package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuispell/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "tuispell.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestKVRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := st.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := st.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"a":2}` {
		t.Fatalf("expected last write to win, got %s", got)
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		source := model.SourceAI
		if i == 1 {
			source = model.SourceLocal
		}
		id, err := st.InsertSession(ctx, model.SessionStats{
			StartedAt:  start,
			EndedAt:    end,
			Source:     source,
			Words:      10,
			Correct:    40 + i,
			Incorrect:  2,
			DurationMs: end.Sub(start).Milliseconds(),
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}
	if all[0].SessionID != ids[0] || all[2].Correct != 42 {
		t.Fatalf("unexpected ordering: %+v", all)
	}

	ai, err := st.ListSessions(ctx, model.StatsConfig{Source: model.SourceAI})
	if err != nil {
		t.Fatalf("list ai: %v", err)
	}
	if len(ai) != 2 {
		t.Fatalf("expected 2 ai sessions, got %d", len(ai))
	}

	last, err := st.ListSessions(ctx, model.StatsConfig{Last: 1})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 1 || last[0].SessionID != ids[2] {
		t.Fatalf("expected only the newest session, got %+v", last)
	}

	since := time.Unix(0, 0).Add(120 * time.Second)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 session since cutoff, got %d", len(recent))
	}
}

func TestListSessionsOrdersWithinSecond(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(1_700_000_000, 0)
	for _, end := range []time.Time{base.Add(500 * time.Millisecond), base} {
		if _, err := st.InsertSession(ctx, model.SessionStats{
			StartedAt:  end.Add(-time.Minute),
			EndedAt:    end,
			Source:     model.SourceAI,
			Words:      5,
			Correct:    20,
			DurationMs: time.Minute.Milliseconds(),
		}); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	sessions, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].EndedAt.Equal(base) || !sessions[1].EndedAt.Equal(base.Add(500*time.Millisecond)) {
		t.Fatalf("expected chronological order, got %v then %v", sessions[0].EndedAt, sessions[1].EndedAt)
	}
}
