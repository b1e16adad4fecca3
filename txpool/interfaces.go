package txpool

import (
	"context"
	"math/big"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/tx"
)

// Decision is the validation verdict for a submitted transaction.
type Decision int

const (
	// Valid admits the transaction as pending or queued by nonce position.
	Valid Decision = iota
	// Future defers the transaction, its nonce is ahead of the sender
	// account and it is stored as queued until the gap closes.
	Future
	// Invalid rejects the transaction, it is never stored or retried.
	Invalid
)

// Validator decides admissibility against current chain state. It may
// suspend on state reads, the pool always calls it outside its lock.
type Validator interface {
	Validate(ctx context.Context, t *tx.Transaction) (Decision, error)
}

// Prioritizer extracts the totally ordered priority value used for
// sequencing. It must be pure: same transaction, same value, every call.
type Prioritizer interface {
	Priority(t *tx.Transaction) *big.Int
}

// Status reports where an admitted transaction landed.
type Status int

const (
	Pending Status = iota
	Queued
	Replaced
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Queued:
		return "queued"
	case Replaced:
		return "replaced"
	}
	return "unknown"
}

type TransactionPool interface {
	Submit(ctx context.Context, t *tx.Transaction) (Status, error)
	Remove(hash common.Hash) bool
	Invalidate(hash common.Hash) bool
	Reinject(ctx context.Context, txs ...*tx.Transaction)
	Subscribe(ctx context.Context, opts ...SubscribeOption) *Subscription
	PendingCount() int
	QueuedCount() int
	Contains(hash common.Hash) bool
	Get(hash common.Hash) *tx.Transaction
	AllHashes() []common.Hash
}
