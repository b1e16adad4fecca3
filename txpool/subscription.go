package txpool

import (
	"context"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	cmn "github.com/korolevchain/sequencer/common"
	"github.com/korolevchain/sequencer/common/eth/common"
)

type SubscribeOption func(*Subscription)

// WithRemovals enables removal notifications on Removed(). A consumer that
// enables it must drain C() and Removed() from a single select loop.
func WithRemovals() SubscribeOption {
	return func(s *Subscription) {
		s.withRemovals = true
	}
}

// Hub fans pool events out to independent subscriptions. Registration is
// done under the pool lock together with the snapshot, so a subscription
// sees every pending transaction exactly once: snapshot first, live feed
// after. Delivery is decoupled from the pool through per-subscription
// unbounded buffers, a slow consumer never blocks the mutation path or
// other consumers.
type Hub struct {
	lock sync.Mutex
	subs map[*Subscription]bool
}

func newHub() *Hub {
	return &Hub{subs: make(map[*Subscription]bool)}
}

func (h *Hub) add(snapshot []*Entry, opts ...SubscribeOption) *Subscription {
	s := &Subscription{
		hub:      h,
		out:      make(chan *Entry),
		rem:      make(chan common.Hash),
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		snapshot: snapshot,
		removed:  make(map[common.Hash]bool),
	}
	for _, o := range opts {
		o(s)
	}

	h.lock.Lock()
	h.subs[s] = true
	h.lock.Unlock()

	return s
}

func (h *Hub) unsubscribe(s *Subscription) {
	h.lock.Lock()
	delete(h.subs, s)
	h.lock.Unlock()
}

// notify appends the event to every subscription buffer. It never blocks,
// the pool calls it while holding its lock.
func (h *Hub) notify(ev *cmn.Event) {
	h.lock.Lock()
	for s := range h.subs {
		s.enqueue(ev)
	}
	h.lock.Unlock()
}

// Subscription is a live, per-consumer ordered stream of pending
// transactions: a point-in-time snapshot of the priority index followed by
// every later admission. Snapshot entries whose removal is observed before
// they are handed out are filtered. Buffering is unbounded, growth is
// bounded in practice by pool capacity times event churn between reads.
type Subscription struct {
	hub          *Hub
	out          chan *Entry
	rem          chan common.Hash
	withRemovals bool

	mu     sync.Mutex
	queue  []*cmn.Event
	notify chan struct{}

	snapshot []*Entry
	removed  map[common.Hash]bool

	done      chan struct{}
	closeOnce sync.Once
}

// C delivers pending transactions in order. It is closed when the
// subscription ends.
func (s *Subscription) C() <-chan *Entry {
	return s.out
}

// Removed carries hashes leaving the pending set, only fed when the
// subscription was opened with WithRemovals.
func (s *Subscription) Removed() <-chan common.Hash {
	return s.rem
}

// Close unregisters the subscription. Pending notifications are dropped,
// the pool carries no further overhead for it.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.unsubscribe(s)
		close(s.done)
	})
}

func (s *Subscription) enqueue(ev *cmn.Event) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Subscription) take() []*cmn.Event {
	s.mu.Lock()
	q := s.queue
	s.queue = nil
	s.mu.Unlock()
	return q
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.out)
	defer s.Close()

	// admissions buffered while the consumer lags are handed out in
	// index order, not arrival order
	adds := treeset.NewWith(entryComparator)
	buffered := make(map[common.Hash]*Entry)
	var removals []common.Hash

	absorb := func(trackRemoved bool) {
		for _, ev := range s.take() {
			if ev.T.IsRemoval() {
				hash := ev.Payload.(common.Hash)
				// an admission still waiting in the buffer is withdrawn,
				// the consumer never sees the entry leave a set it never
				// saw it enter
				if be, f := buffered[hash]; f {
					adds.Remove(be)
					delete(buffered, hash)
					continue
				}
				if trackRemoved {
					s.removed[hash] = true
				}
				if s.withRemovals {
					removals = append(removals, hash)
				}
			} else {
				e := ev.Payload.(*Entry)
				adds.Add(e)
				buffered[e.Hash()] = e
			}
		}
	}

	flushRemovals := func() bool {
		for len(removals) > 0 {
			select {
			case s.rem <- removals[0]:
				removals = removals[1:]
			case <-ctx.Done():
				return false
			case <-s.done:
				return false
			}
		}
		return true
	}

	// phase one: drain the snapshot, skipping entries already gone
	for _, e := range s.snapshot {
		absorb(true)
		if !flushRemovals() {
			return
		}
		if s.removed[e.Hash()] {
			continue
		}
		select {
		case s.out <- e:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
	s.snapshot = nil
	s.removed = nil

	// phase two: forward live admissions, highest priority first among
	// whatever is buffered
	for {
		absorb(false)
		if !flushRemovals() {
			return
		}
		it := adds.Iterator()
		if !it.First() {
			select {
			case <-s.notify:
				continue
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
		e := it.Value().(*Entry)
		adds.Remove(e)
		delete(buffered, e.Hash())
		select {
		case s.out <- e:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}
