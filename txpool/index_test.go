package txpool

import (
	"math/big"
	"testing"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/tx"
	"github.com/stretchr/testify/assert"
)

// makeEntry builds a pooled entry for a single-byte sender with the fee as
// its priority value.
func makeEntry(sender byte, nonce uint64, fee int64, seq uint64) *Entry {
	trans := tx.CreateTransaction(common.Address{}, common.BytesToAddress([]byte{sender}), nonce, big.NewInt(0), big.NewInt(fee), nil)
	return &Entry{tx: trans, priority: trans.Fee(), seq: seq}
}

func TestSnapshotOrdersByPriorityDesc(t *testing.T) {
	index := newPriorityIndex()
	index.insert(makeEntry(0x1, 0, 10, 1))
	index.insert(makeEntry(0x2, 0, 30, 2))
	index.insert(makeEntry(0x3, 0, 20, 3))

	snap := index.snapshot()
	assert.Equal(t, 3, len(snap))
	assert.Equal(t, int64(30), snap[0].Priority().Int64())
	assert.Equal(t, int64(20), snap[1].Priority().Int64())
	assert.Equal(t, int64(10), snap[2].Priority().Int64())
}

func TestEqualPrioritiesKeepArrivalOrder(t *testing.T) {
	index := newPriorityIndex()
	second := makeEntry(0x2, 0, 10, 2)
	first := makeEntry(0x1, 0, 10, 1)
	index.insert(second)
	index.insert(first)

	snap := index.snapshot()
	assert.Equal(t, first, snap[0])
	assert.Equal(t, second, snap[1])
}

func TestMinIsNewestAmongEqualMinimum(t *testing.T) {
	index := newPriorityIndex()
	older := makeEntry(0x1, 0, 10, 1)
	newer := makeEntry(0x2, 0, 10, 2)
	top := makeEntry(0x3, 0, 50, 3)
	index.insert(older)
	index.insert(newer)
	index.insert(top)

	assert.Equal(t, newer, index.min())
}

func TestMinOnEmptyIndex(t *testing.T) {
	index := newPriorityIndex()
	assert.Nil(t, index.min())
}

func TestRemove(t *testing.T) {
	index := newPriorityIndex()
	e := makeEntry(0x1, 0, 10, 1)
	index.insert(e)
	index.remove(e)

	assert.Equal(t, 0, index.size())
}
