package txpool

import (
	"math/big"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/tx"
)

// Entry is a transaction admitted to the pool together with its cached
// priority value and the insertion sequence number used as ordering
// tie-break and as the FIFO fairness marker.
type Entry struct {
	tx       *tx.Transaction
	priority *big.Int
	seq      uint64
}

func (e *Entry) Transaction() *tx.Transaction {
	return e.tx
}

func (e *Entry) Priority() *big.Int {
	return e.priority
}

func (e *Entry) Seq() uint64 {
	return e.seq
}

func (e *Entry) Hash() common.Hash {
	return e.tx.Hash()
}

func (e *Entry) Nonce() uint64 {
	return e.tx.Nonce()
}

func (e *Entry) Sender() common.Address {
	return e.tx.From()
}

// entryComparator orders by priority descending, then by insertion sequence
// ascending. The global minimum therefore sits at the tail, and among equal
// minimum priorities the tail holds the newest arrival, which is exactly the
// eviction victim.
func entryComparator(a, b interface{}) int {
	ea := a.(*Entry)
	eb := b.(*Entry)

	if r := eb.priority.Cmp(ea.priority); r != 0 {
		return r
	}
	switch {
	case ea.seq < eb.seq:
		return -1
	case ea.seq > eb.seq:
		return 1
	default:
		return 0
	}
}
