package errorlog

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestLog(kv KV) *Log {
	l := New(kv, nil)
	tick := int64(0)
	l.now = func() time.Time {
		tick++
		return time.UnixMilli(tick)
	}
	return l
}

func TestRecordCreatesEntry(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	l := newTestLog(kv)

	l.Record(ctx, "cat", 'a', 'x', 1)

	errs := l.Snapshot(ctx)
	rec, ok := errs["cat"]
	if !ok {
		t.Fatalf("expected entry for cat")
	}
	if rec.Count != 1 {
		t.Fatalf("expected count 1, got %d", rec.Count)
	}
	if len(rec.Details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(rec.Details))
	}
	d := rec.Details[0]
	if d.Expected != "a" || d.Typed != "x" || d.Position != 1 {
		t.Fatalf("unexpected detail: %+v", d)
	}
	if d.Timestamp != 1 {
		t.Fatalf("expected timestamp from clock, got %d", d.Timestamp)
	}
}

func TestRecordEvictsOldestDetail(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(NewMemoryKV())

	for i := 0; i < 6; i++ {
		l.Record(ctx, "dog", 'o', rune('a'+i), i)
	}

	rec := l.Snapshot(ctx)["dog"]
	if rec.Count != 6 {
		t.Fatalf("expected count 6, got %d", rec.Count)
	}
	if len(rec.Details) != MaxDetails {
		t.Fatalf("expected %d details, got %d", MaxDetails, len(rec.Details))
	}
	if rec.Details[0].Typed != "b" || rec.Details[0].Position != 1 {
		t.Fatalf("expected oldest detail evicted, first is %+v", rec.Details[0])
	}
	if rec.Details[4].Typed != "f" {
		t.Fatalf("expected newest detail last, got %+v", rec.Details[4])
	}
}

func TestRecordKeepsOtherWords(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(NewMemoryKV())
	l.Record(ctx, "one", 'o', 'p', 0)
	l.Record(ctx, "two", 'w', 'q', 1)
	l.Record(ctx, "one", 'n', 'm', 1)

	errs := l.Snapshot(ctx)
	if len(errs) != 2 {
		t.Fatalf("expected 2 words, got %d", len(errs))
	}
	if errs["one"].Count != 2 || errs["two"].Count != 1 {
		t.Fatalf("unexpected counts: one=%d two=%d", errs["one"].Count, errs["two"].Count)
	}
}

func TestRecordSwallowsStoreFailures(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	kv.GetErr = errors.New("boom")
	l := newTestLog(kv)

	l.Record(ctx, "cat", 'a', 'x', 1)
	if got := l.Snapshot(ctx); len(got) != 0 {
		t.Fatalf("expected empty snapshot on read failure, got %v", got)
	}

	kv.GetErr = nil
	kv.SetErr = errors.New("disk full")
	l.Record(ctx, "cat", 'a', 'x', 1)
	kv.SetErr = nil
	if got := l.Snapshot(ctx); len(got) != 0 {
		t.Fatalf("expected nothing persisted on write failure, got %v", got)
	}
}

func TestRecordIgnoresCorruptPayload(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := kv.Set(ctx, StoreKey, []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	l := newTestLog(kv)
	l.Record(ctx, "cat", 'a', 'x', 1)

	raw, _, _ := kv.Get(ctx, StoreKey)
	if string(raw) != "{not json" {
		t.Fatalf("expected corrupt payload left untouched, got %s", raw)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(NewMemoryKV())
	l.Record(ctx, "cat", 'a', 'x', 1)
	if err := l.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := l.Snapshot(ctx); len(got) != 0 {
		t.Fatalf("expected empty map after reset, got %v", got)
	}
}
