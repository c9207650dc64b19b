// Package errorlog records per-word spelling mistakes in a key-value store.
package errorlog

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuispell/internal/model"
)

// StoreKey is the single key the error map is persisted under.
const StoreKey = "spellingErrors"

// MaxDetails bounds the per-word detail history.
const MaxDetails = 5

// KV is the persistence collaborator. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Log is a best-effort recorder; persistence failures never reach callers.
type Log struct {
	kv     KV
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New returns a Log backed by kv.
func New(kv KV, logger *zap.SugaredLogger) *Log {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Log{kv: kv, logger: logger, now: time.Now}
}

// Record adds one mismatch for word and writes the map back.
func (l *Log) Record(ctx context.Context, word string, expected, typed rune, position int) {
	l.logger.Debugw("spelling error",
		"word", word,
		"expected", string(expected),
		"typed", string(typed),
		"position", position,
	)
	errs, err := l.load(ctx)
	if err != nil {
		l.logger.Warnw("failed to load error log; skipping record", "error", err)
		return
	}
	rec, ok := errs[word]
	if !ok || rec == nil {
		rec = &model.ErrorRecord{}
		errs[word] = rec
	}
	rec.Count++
	rec.Details = append(rec.Details, model.ErrorDetail{
		Expected:  string(expected),
		Typed:     string(typed),
		Position:  position,
		Timestamp: l.now().UnixMilli(),
	})
	if extra := len(rec.Details) - MaxDetails; extra > 0 {
		rec.Details = append([]model.ErrorDetail(nil), rec.Details[extra:]...)
	}
	if err := l.save(ctx, errs); err != nil {
		l.logger.Warnw("failed to persist error log", "word", word, "error", err)
	}
}

// Snapshot returns the full current error map. It is empty, not nil, on failure.
func (l *Log) Snapshot(ctx context.Context) model.ErrorMap {
	errs, err := l.load(ctx)
	if err != nil {
		l.logger.Warnw("failed to load error log", "error", err)
		return model.ErrorMap{}
	}
	return errs
}

// Reset clears every recorded error.
func (l *Log) Reset(ctx context.Context) error {
	return l.save(ctx, model.ErrorMap{})
}

func (l *Log) load(ctx context.Context) (model.ErrorMap, error) {
	raw, ok, err := l.kv.Get(ctx, StoreKey)
	if err != nil {
		return nil, err
	}
	errs := model.ErrorMap{}
	if !ok || len(raw) == 0 {
		return errs, nil
	}
	if err := json.Unmarshal(raw, &errs); err != nil {
		return nil, err
	}
	if errs == nil {
		errs = model.ErrorMap{}
	}
	return errs, nil
}

func (l *Log) save(ctx context.Context, errs model.ErrorMap) error {
	raw, err := json.Marshal(errs)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, StoreKey, raw)
}
