package txpool

import (
	"context"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/tx"
)

// BlockCommitAdapter translates block inclusion callbacks from the block
// producer into pool removals.
type BlockCommitAdapter struct {
	pool TransactionPool
}

func NewBlockCommitAdapter(pool TransactionPool) *BlockCommitAdapter {
	return &BlockCommitAdapter{pool: pool}
}

func (a *BlockCommitAdapter) OnBlockCommit(ctx context.Context, included []common.Hash) {
	for _, hash := range included {
		a.pool.Remove(hash)
	}
}

// UnwindAdapter reconciles the pool after a chain rollback: transactions
// from unwound blocks are re-admitted, ones whose preconditions broke are
// dropped without counting against anyone.
type UnwindAdapter struct {
	pool TransactionPool
}

func NewUnwindAdapter(pool TransactionPool) *UnwindAdapter {
	return &UnwindAdapter{pool: pool}
}

func (a *UnwindAdapter) OnUnwind(ctx context.Context, unwound []*tx.Transaction, invalidated []common.Hash) {
	for _, hash := range invalidated {
		a.pool.Invalidate(hash)
	}
	a.pool.Reinject(ctx, unwound...)
}
