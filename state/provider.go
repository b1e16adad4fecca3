package state

import (
	"context"
	"math/big"
	"sync"

	"github.com/korolevchain/sequencer/common/eth/common"
)

// Provider reads a sender account at the node's current confirmed state
// view. Implementations may suspend on I/O, callers must never invoke it
// while holding pool locks.
type Provider interface {
	Get(ctx context.Context, address common.Address) (*Account, error)
}

type InMemoryProvider struct {
	accounts map[common.Address]*Account
	lock     sync.RWMutex
}

func NewInMemoryProvider(seed map[common.Address]*Account) *InMemoryProvider {
	accounts := make(map[common.Address]*Account)
	for a, acc := range seed {
		accounts[a] = acc.Copy()
	}
	return &InMemoryProvider{accounts: accounts}
}

func (p *InMemoryProvider) Get(ctx context.Context, address common.Address) (*Account, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	acc, f := p.accounts[address]
	if !f {
		return NewAccount(0, big.NewInt(0)), nil
	}
	return acc.Copy(), nil
}

// Apply replaces the stored view of the account, fed by the block execution
// collaborator after commit or unwind.
func (p *InMemoryProvider) Apply(address common.Address, account *Account) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.accounts[address] = account.Copy()
}
