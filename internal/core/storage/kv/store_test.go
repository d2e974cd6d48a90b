package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-winbus/internal/core/storage/engine"
	"github.com/dep2p/go-winbus/internal/core/storage/engine/badger"
)

func newTestEngine(t *testing.T) engine.Engine {
	t.Helper()
	eng, err := badger.New(engine.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TestStore_PrefixIsolation 测试前缀隔离
func TestStore_PrefixIsolation(t *testing.T) {
	eng := newTestEngine(t)
	a := New(eng, []byte("a/"))
	b := New(eng, []byte("b/"))

	require.NoError(t, a.Put([]byte("k"), []byte("1")))
	require.NoError(t, b.Put([]byte("k"), []byte("2")))

	v, err := a.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	raw, err := eng.Get([]byte("b/k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), raw)

	require.NoError(t, a.Delete([]byte("k")))
	ok, err := a.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = b.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestStore_JSON 测试 JSON 读写
func TestStore_JSON(t *testing.T) {
	s := New(newTestEngine(t), []byte("settings/"))

	require.NoError(t, s.PutJSON([]byte("meta"), record{Name: "x", Count: 3}))

	var got record
	require.NoError(t, s.GetJSON([]byte("meta"), &got))
	assert.Equal(t, record{Name: "x", Count: 3}, got)

	err := s.GetJSON([]byte("missing"), &got)
	assert.True(t, engine.IsNotFound(err))

	require.NoError(t, s.Put([]byte("bad"), []byte("{")))
	assert.Error(t, s.GetJSON([]byte("bad"), &got))
}

// TestStore_ScanAndBatch 测试批量写入和前缀扫描
func TestStore_ScanAndBatch(t *testing.T) {
	s := New(newTestEngine(t), []byte("settings/"))
	require.NoError(t, s.Put([]byte("profile/old"), []byte("{}")))

	batch := s.NewBatch()
	batch.Delete([]byte("profile/old"))
	require.NoError(t, batch.PutJSON([]byte("profile/b"), record{Name: "b"}))
	require.NoError(t, batch.PutJSON([]byte("profile/a"), record{Name: "a"}))
	batch.Put([]byte("meta"), []byte("{}"))
	assert.Equal(t, 4, batch.Size())
	require.NoError(t, batch.Write())
	assert.ErrorIs(t, batch.Write(), engine.ErrBatchClosed)

	keys, err := s.Keys([]byte("profile/"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("profile/a"), []byte("profile/b")}, keys)

	var names []string
	err = s.PrefixScan([]byte("profile/"), func(_, value []byte) bool {
		names = append(names, string(value))
		return false
	})
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

// TestStore_BatchCancel 测试取消批量写入
func TestStore_BatchCancel(t *testing.T) {
	s := New(newTestEngine(t), []byte("x/"))

	batch := s.NewBatch()
	batch.Put([]byte("k"), []byte("v"))
	batch.Cancel()

	ok, err := s.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}
