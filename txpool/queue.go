package txpool

import (
	"math/big"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// accountQueue resolves nonce sequencing for a single sender. base is the
// sender's next expected on-chain nonce, the entry stored at base (if any)
// is the queue head and the only entry of this sender exposed to the
// priority index. Entries above base wait queued until the gap closes.
type accountQueue struct {
	txs  *treemap.Map // nonce -> *Entry
	base uint64
}

func newAccountQueue(base uint64) *accountQueue {
	return &accountQueue{
		txs:  treemap.NewWith(utils.UInt64Comparator),
		base: base,
	}
}

func (q *accountQueue) get(nonce uint64) *Entry {
	v, f := q.txs.Get(nonce)
	if !f {
		return nil
	}
	return v.(*Entry)
}

func (q *accountQueue) put(e *Entry) {
	q.txs.Put(e.Nonce(), e)
}

func (q *accountQueue) remove(nonce uint64) {
	q.txs.Remove(nonce)
}

// head returns the entry at base, nil when the sender has a nonce gap at
// the front and nothing is executable.
func (q *accountQueue) head() *Entry {
	return q.get(q.base)
}

// advance moves base past a mined nonce and returns the new head when the
// successor is contiguous, signalling promotion into the priority index.
func (q *accountQueue) advance(mined uint64) *Entry {
	if mined >= q.base {
		q.base = mined + 1
	}
	return q.head()
}

func (q *accountQueue) size() int {
	return q.txs.Size()
}

func (q *accountQueue) nonces() []uint64 {
	keys := q.txs.Keys()
	res := make([]uint64, len(keys))
	for i, k := range keys {
		res[i] = k.(uint64)
	}
	return res
}

// underpriced applies the fee-bump replacement rule: the newcomer must
// strictly beat old * (100 + priceBump) / 100.
func underpriced(old *big.Int, new *big.Int, priceBump uint64) bool {
	a := big.NewInt(100 + int64(priceBump))
	a.Mul(a, old)
	threshold := a.Div(a, big.NewInt(100))
	return new.Cmp(threshold) <= 0
}
