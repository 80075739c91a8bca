package progress

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/store"
)

type memKV struct {
	data map[string]string
	err  error
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(_ context.Context, name string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[name]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, name, value string) error {
	if m.err != nil {
		return m.err
	}
	m.data[name] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, name string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, name)
	return nil
}

func (m *memKV) Keys(_ context.Context, prefix string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func TestTracker_MarkAndClear(t *testing.T) {
	kv := newMemKV()
	tr := NewTracker(kv, nil)

	assert.False(t, tr.IsDone("l1"))

	tr.MarkDone("l1")
	tr.MarkDone("l1")
	assert.True(t, tr.IsDone("l1"))
	assert.Equal(t, "1", kv.data["done:l1"])

	tr.ClearDone("l1")
	tr.ClearDone("l1")
	assert.False(t, tr.IsDone("l1"))
}

func TestTracker_OtherValueIsNotDone(t *testing.T) {
	kv := newMemKV()
	kv.data["done:l1"] = "true"
	assert.False(t, NewTracker(kv, nil).IsDone("l1"))
}

func TestTracker_StoreErrorsSwallowed(t *testing.T) {
	kv := newMemKV()
	kv.err = errors.New("disk on fire")
	tr := NewTracker(kv, nil)

	assert.NotPanics(t, func() {
		tr.MarkDone("l1")
		tr.ClearDone("l1")
	})
	assert.False(t, tr.IsDone("l1"))

	_, err := tr.Completed(context.Background())
	assert.Error(t, err)
}

func TestTracker_Completed(t *testing.T) {
	kv := newMemKV()
	kv.data["done:b"] = "1"
	kv.data["done:a"] = "1"
	kv.data["done:c"] = "0"
	kv.data["theme"] = "dark"

	ids, err := NewTracker(kv, nil).Completed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestTracker_SQLiteStore(t *testing.T) {
	s, err := store.Open("file:tracker_sqlite?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	tr := NewTracker(s.KVRepo(), nil)
	tr.MarkDone("42")
	assert.True(t, tr.IsDone("42"))

	ids, err := tr.Completed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, ids)

	tr.ClearDone("42")
	assert.False(t, tr.IsDone("42"))
}
