package state

import (
	"math/big"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("state")

// Account is the point-view projection of a sender the pool cares about:
// the next expected nonce and the spendable balance.
type Account struct {
	nonce   uint64
	balance *big.Int
}

func NewAccount(nonce uint64, balance *big.Int) *Account {
	return &Account{nonce: nonce, balance: balance}
}

func (a *Account) Nonce() uint64 {
	return a.nonce
}

func (a *Account) Balance() *big.Int {
	return a.balance
}

func (a *Account) IncrementNonce() {
	a.nonce += 1
}

func (a *Account) Copy() *Account {
	return NewAccount(a.nonce, new(big.Int).Set(a.balance))
}
