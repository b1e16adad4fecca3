package txpool

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// priorityIndex is the global ordered set of queue heads, one entry per
// sender, ordered by (priority desc, seq asc). It is mutated only under the
// pool lock.
type priorityIndex struct {
	entries *treeset.Set
}

func newPriorityIndex() *priorityIndex {
	return &priorityIndex{entries: treeset.NewWith(entryComparator)}
}

func (i *priorityIndex) insert(e *Entry) {
	i.entries.Add(e)
}

func (i *priorityIndex) remove(e *Entry) {
	i.entries.Remove(e)
}

func (i *priorityIndex) size() int {
	return i.entries.Size()
}

// min returns the eviction candidate: the lowest priority entry, newest
// arrival among equals. With the index ordering it is simply the tail.
func (i *priorityIndex) min() *Entry {
	it := i.entries.Iterator()
	if !it.Last() {
		return nil
	}
	return it.Value().(*Entry)
}

// snapshot copies the index in delivery order.
func (i *priorityIndex) snapshot() []*Entry {
	values := i.entries.Values()
	res := make([]*Entry, len(values))
	for n, v := range values {
		res[n] = v.(*Entry)
	}
	return res
}
