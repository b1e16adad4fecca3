package txpool

import (
	"context"
	"math/big"
	"sync"

	cmn "github.com/korolevchain/sequencer/common"
	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/state"
	"github.com/korolevchain/sequencer/storage"
	"github.com/korolevchain/sequencer/tx"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("txpool")

// TxPool owns the account queues and the global priority index. All
// cross-structure invariants, capacity eviction included, are guarded by
// one lock; validation and state reads run outside it and the admission
// facts are re-checked before commit.
type TxPool struct {
	cfg         Config
	validator   Validator
	prioritizer Prioritizer
	provider    state.Provider
	metrics     *Metrics

	lock     sync.RWMutex
	accounts map[common.Address]*accountQueue
	index    *priorityIndex
	byHash   map[common.Hash]*Entry
	seq      uint64

	hub     *Hub
	journal *journal
}

func NewTxPool(cfg Config, validator Validator, prioritizer Prioritizer, provider state.Provider, metrics *Metrics) *TxPool {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &TxPool{
		cfg:         cfg.withDefaults(),
		validator:   validator,
		prioritizer: prioritizer,
		provider:    provider,
		metrics:     metrics,
		accounts:    make(map[common.Address]*accountQueue),
		index:       newPriorityIndex(),
		byHash:      make(map[common.Hash]*Entry),
		hub:         newHub(),
	}
}

// Submit validates and admits a transaction. The returned status tells
// whether it landed pending, queued behind a nonce gap, or replaced a
// resident entry at its nonce.
func (p *TxPool) Submit(ctx context.Context, t *tx.Transaction) (Status, error) {
	decision, err := p.validator.Validate(ctx, t)
	if decision == Invalid {
		if err == nil {
			err = InvalidTransactionError
		}
		p.metrics.Rejected(err)
		return 0, err
	}

	// the priority function is pure and the base nonce is only a hint for
	// first-seen senders, both are safe to compute before taking the lock
	priority := p.prioritizer.Priority(t)
	acc, aerr := p.provider.Get(ctx, t.From())
	if aerr != nil {
		werr := errors.Wrap(StateUnavailableError, aerr.Error())
		p.metrics.Rejected(werr)
		return 0, werr
	}

	p.lock.Lock()
	status, err := p.add(t, priority, acc.Nonce())
	p.lock.Unlock()

	if err != nil {
		p.metrics.Rejected(err)
		return 0, err
	}
	p.metrics.Added()
	return status, nil
}

func (p *TxPool) add(t *tx.Transaction, priority *big.Int, base uint64) (Status, error) {
	hash := t.Hash()
	if _, known := p.byHash[hash]; known {
		return 0, KnownTransactionError
	}

	q, f := p.accounts[t.From()]
	if !f {
		q = newAccountQueue(base)
	}

	// validation ran outside the lock, re-check the nonce against the
	// queue before commit
	if t.Nonce() < q.base {
		return 0, StaleNonceError
	}

	status := Queued
	replaced := q.get(t.Nonce())
	if replaced != nil {
		if underpriced(replaced.priority, priority, p.cfg.PriceBump) {
			return 0, UnderpricedReplacementError
		}
		// the slot swap is atomic: the old entry leaves every structure
		// before the newcomer takes the nonce
		p.index.remove(replaced)
		delete(p.byHash, replaced.Hash())
		if p.journal != nil {
			p.journal.drop(replaced.Hash())
		}
		p.hub.notify(&cmn.Event{T: cmn.TxReplaced, Payload: replaced.Hash()})
		p.metrics.Removed("replaced")
		status = Replaced
	}

	p.seq++
	e := &Entry{tx: t, priority: priority, seq: p.seq}

	if !f {
		p.accounts[t.From()] = q
	}
	q.put(e)
	p.byHash[hash] = e

	pending := t.Nonce() == q.base
	if pending {
		p.index.insert(e)
	}

	// capacity is settled before any subscriber hears about the admission,
	// a rejected submission must never reach the stream
	if len(p.byHash) > p.cfg.Capacity {
		victim := p.index.min()
		if victim == nil || victim == e {
			// nothing cheaper to evict, the submission itself loses
			p.rollback(e)
			p.updateSizes()
			return 0, PoolFullError
		}
		log.Debugf("Evicting %v for %v", victim.Hash().Hex(), hash.Hex())
		p.discard(victim, cmn.TxEvicted, "evicted")
	}

	if pending {
		p.hub.notify(&cmn.Event{T: cmn.TxAdded, Payload: e})
		if status != Replaced {
			status = Pending
		}
	}

	if p.journal != nil {
		p.journal.insert(t)
	}

	p.updateSizes()
	return status, nil
}

// rollback takes a just-inserted entry back out. No events, no metrics: as
// far as any observer is concerned the entry was never admitted.
func (p *TxPool) rollback(e *Entry) {
	q := p.accounts[e.Sender()]
	q.remove(e.Nonce())
	if q.size() == 0 {
		delete(p.accounts, e.Sender())
	}
	delete(p.byHash, e.Hash())
	p.index.remove(e)
}

// Remove drops a mined transaction. When it was the sender's queue head the
// base advances and the contiguous successor, if any, is promoted into the
// priority index with its cached priority.
func (p *TxPool) Remove(hash common.Hash) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	e, f := p.byHash[hash]
	if !f {
		return false
	}

	q := p.accounts[e.Sender()]
	wasHead := q.head() == e
	p.discard(e, cmn.TxMined, "mined")

	if wasHead {
		if next := q.advance(e.Nonce()); next != nil {
			p.index.insert(next)
			p.hub.notify(&cmn.Event{T: cmn.TxPromoted, Payload: next})
		}
	}

	p.updateSizes()
	return true
}

// Invalidate drops a transaction whose preconditions no longer hold after
// an unwind. The sender base does not advance, so successors stay queued.
// It is not counted as a user-facing rejection.
func (p *TxPool) Invalidate(hash common.Hash) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	e, f := p.byHash[hash]
	if !f {
		return false
	}

	p.discard(e, cmn.TxInvalidated, "invalidated")
	p.updateSizes()
	return true
}

// Reinject re-validates and re-admits transactions whose inclusion was
// undone by an unwind. Failures are logged, not surfaced: the original
// submitter is long gone.
func (p *TxPool) Reinject(ctx context.Context, txs ...*tx.Transaction) {
	for _, t := range txs {
		if _, err := p.Submit(ctx, t); err != nil {
			log.Warningf("Can't reinject %v: %v", t.Hash().Hex(), err)
		}
	}
}

// Subscribe opens an independent pending stream: an atomic snapshot of the
// priority index followed by live admissions. The subscription runs until
// ctx is cancelled or Close is called.
func (p *TxPool) Subscribe(ctx context.Context, opts ...SubscribeOption) *Subscription {
	p.lock.Lock()
	sub := p.hub.add(p.index.snapshot(), opts...)
	p.lock.Unlock()

	go sub.run(ctx)
	return sub
}

// AttachJournal replays transactions persisted by a previous run and keeps
// journaling admissions to the given storage from now on.
func (p *TxPool) AttachJournal(ctx context.Context, store storage.Storage) int {
	j := newJournal(store)
	replayed := j.replay(ctx, p.Submit)

	p.lock.Lock()
	p.journal = j
	p.lock.Unlock()

	log.Infof("Replayed %v journaled transactions", replayed)
	return replayed
}

// discard removes the entry from every structure without advancing the
// sender base. cause is the removal metric label, empty when the caller
// accounts for the drop itself.
func (p *TxPool) discard(e *Entry, evType cmn.EventType, cause string) {
	q := p.accounts[e.Sender()]
	q.remove(e.Nonce())
	if q.size() == 0 {
		delete(p.accounts, e.Sender())
	}
	delete(p.byHash, e.Hash())
	p.index.remove(e)
	if p.journal != nil {
		p.journal.drop(e.Hash())
	}

	p.hub.notify(&cmn.Event{T: evType, Payload: e.Hash()})
	if cause != "" {
		p.metrics.Removed(cause)
	}
}

func (p *TxPool) updateSizes() {
	pending := p.index.size()
	p.metrics.SetSizes(pending, len(p.byHash)-pending)
}

func (p *TxPool) PendingCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.index.size()
}

func (p *TxPool) QueuedCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return len(p.byHash) - p.index.size()
}

func (p *TxPool) Contains(hash common.Hash) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	_, f := p.byHash[hash]
	return f
}

func (p *TxPool) Get(hash common.Hash) *tx.Transaction {
	p.lock.RLock()
	defer p.lock.RUnlock()
	e, f := p.byHash[hash]
	if !f {
		return nil
	}
	return e.tx
}

func (p *TxPool) AllHashes() []common.Hash {
	p.lock.RLock()
	defer p.lock.RUnlock()

	res := make([]common.Hash, 0, len(p.byHash))
	for h := range p.byHash {
		res = append(res, h)
	}
	return res
}

// PoolDump is a read-only snapshot for introspection and debug logging.
type PoolDump struct {
	Pending []common.Hash
	Queued  map[string][]uint64
}

func (p *TxPool) Dump() *PoolDump {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dump := &PoolDump{Queued: make(map[string][]uint64)}
	for _, e := range p.index.snapshot() {
		dump.Pending = append(dump.Pending, e.Hash())
	}
	for sender, q := range p.accounts {
		var queued []uint64
		for _, n := range q.nonces() {
			if q.head() != nil && n == q.base {
				continue
			}
			queued = append(queued, n)
		}
		if len(queued) > 0 {
			dump.Queued[sender.Hex()] = queued
		}
	}
	return dump
}
