package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	s, e := NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	require.NoError(t, s.Put(TxJournal, []byte("key"), []byte("value")))

	v, e := s.Get(TxJournal, []byte("key"))
	require.NoError(t, e)
	assert.Equal(t, []byte("value"), v)
	assert.True(t, s.Contains(TxJournal, []byte("key")))
}

func TestResourceTypesAreIsolated(t *testing.T) {
	s, e := NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	require.NoError(t, s.Put(TxJournal, []byte("key"), []byte("a")))

	assert.False(t, s.Contains(PoolMeta, []byte("key")))
}

func TestDelete(t *testing.T) {
	s, e := NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	require.NoError(t, s.Put(TxJournal, []byte("key"), []byte("a")))
	require.NoError(t, s.Delete(TxJournal, []byte("key")))

	assert.False(t, s.Contains(TxJournal, []byte("key")))
}

func TestKeysStripTypePrefix(t *testing.T) {
	s, e := NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	require.NoError(t, s.Put(TxJournal, []byte("abc"), []byte("1")))
	require.NoError(t, s.Put(TxJournal, []byte("abd"), []byte("2")))
	require.NoError(t, s.Put(TxJournal, []byte("xyz"), []byte("3")))
	require.NoError(t, s.Put(PoolMeta, []byte("abe"), []byte("4")))

	keys := s.Keys(TxJournal, []byte("ab"))
	require.Equal(t, 2, len(keys))
	assert.Equal(t, []byte("abc"), keys[0])
	assert.Equal(t, []byte("abd"), keys[1])
}

func TestEntries(t *testing.T) {
	s, e := NewStorage("", nil)
	require.NoError(t, e)
	defer s.Close()

	require.NoError(t, s.Put(TxJournal, []byte("a"), []byte("1")))
	require.NoError(t, s.Put(TxJournal, []byte("b"), []byte("2")))
	require.NoError(t, s.Put(PoolMeta, []byte("c"), []byte("3")))

	keys, values := s.Entries(TxJournal)
	require.Equal(t, 2, len(keys))
	assert.Equal(t, []byte("a"), keys[0])
	assert.Equal(t, []byte("b"), keys[1])
	assert.Equal(t, []byte("1"), values[0])
	assert.Equal(t, []byte("2"), values[1])
}
