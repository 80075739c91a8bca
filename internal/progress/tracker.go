// Package progress persists which lessons a learner has completed.
package progress

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	keyPrefix = "done:"
	doneValue = "1"
)

// KV is the key-value store the tracker is backed by.
// store.KVRepo satisfies it.
type KV interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Tracker records lesson completion. Store failures are logged and never
// surfaced: a failed read reports "not done" and a failed write is dropped.
type Tracker struct {
	kv  KV
	log *zap.Logger
}

// NewTracker creates a Tracker over kv. A nil logger disables logging.
func NewTracker(kv KV, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{kv: kv, log: log}
}

// Key returns the store key for a lesson.
func Key(lessonID string) string {
	return keyPrefix + lessonID
}

// IsDone reports whether lessonID is recorded as completed.
func (t *Tracker) IsDone(lessonID string) bool {
	v, ok, err := t.kv.Get(context.Background(), Key(lessonID))
	if err != nil {
		t.log.Warn("read completion", zap.String("lesson", lessonID), zap.Error(err))
		return false
	}
	return ok && v == doneValue
}

// MarkDone records lessonID as completed. Idempotent.
func (t *Tracker) MarkDone(lessonID string) {
	if err := t.kv.Set(context.Background(), Key(lessonID), doneValue); err != nil {
		t.log.Warn("mark lesson done", zap.String("lesson", lessonID), zap.Error(err))
		return
	}
	t.log.Info("lesson completed", zap.String("lesson", lessonID))
}

// ClearDone removes the completion record of lessonID. Idempotent.
func (t *Tracker) ClearDone(lessonID string) {
	if err := t.kv.Delete(context.Background(), Key(lessonID)); err != nil {
		t.log.Warn("clear lesson done", zap.String("lesson", lessonID), zap.Error(err))
	}
}

// Completed lists the ids of all completed lessons in key order.
func (t *Tracker) Completed(ctx context.Context) ([]string, error) {
	keys, err := t.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok, err := t.kv.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if ok && v == doneValue {
			ids = append(ids, strings.TrimPrefix(k, keyPrefix))
		}
	}
	return ids, nil
}
