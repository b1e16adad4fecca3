package txpool

import (
	"context"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/storage"
	"github.com/korolevchain/sequencer/tx"
)

// journal persists admitted transactions so a restarted node resubmits
// what its users already sent. Entries rejected on replay are pruned.
type journal struct {
	store storage.Storage
}

func newJournal(store storage.Storage) *journal {
	return &journal{store: store}
}

func (j *journal) insert(t *tx.Transaction) {
	if err := j.store.Put(storage.TxJournal, t.Hash().Bytes(), t.Serialized()); err != nil {
		log.Error("Can't journal transaction", err)
	}
}

func (j *journal) drop(hash common.Hash) {
	if err := j.store.Delete(storage.TxJournal, hash.Bytes()); err != nil {
		log.Error("Can't drop journaled transaction", err)
	}
}

func (j *journal) replay(ctx context.Context, submit func(context.Context, *tx.Transaction) (Status, error)) int {
	keys, values := j.store.Entries(storage.TxJournal)

	replayed := 0
	for i, v := range values {
		t, e := tx.Deserialize(v)
		if e != nil {
			log.Error("Can't parse journaled transaction", e)
			_ = j.store.Delete(storage.TxJournal, keys[i])
			continue
		}
		if _, err := submit(ctx, t); err != nil {
			log.Debugf("Journaled transaction %v no longer admissible: %v", t.Hash().Hex(), err)
			_ = j.store.Delete(storage.TxJournal, keys[i])
			continue
		}
		replayed++
	}
	return replayed
}
