package txpool

import (
	"context"
	"math/big"

	"github.com/korolevchain/sequencer/state"
	"github.com/korolevchain/sequencer/tx"
	"github.com/pkg/errors"
)

// NoOpValidator admits everything, used for tests and trusted ingestion.
type NoOpValidator struct {
}

func (NoOpValidator) Validate(ctx context.Context, t *tx.Transaction) (Decision, error) {
	return Valid, nil
}

// StatefulValidator checks signature, balance and nonce against the state
// provider's current view. It performs read-only queries only.
type StatefulValidator struct {
	provider state.Provider
}

func NewStatefulValidator(provider state.Provider) *StatefulValidator {
	return &StatefulValidator{provider: provider}
}

func (v *StatefulValidator) Validate(ctx context.Context, t *tx.Transaction) (Decision, error) {
	if err := t.Verify(); err != nil {
		return Invalid, errors.Wrap(InvalidSignatureError, err.Error())
	}

	acc, err := v.provider.Get(ctx, t.From())
	if err != nil {
		return Invalid, errors.Wrap(StateUnavailableError, err.Error())
	}

	if t.Nonce() < acc.Nonce() {
		return Invalid, StaleNonceError
	}
	if acc.Balance().Cmp(t.Cost()) < 0 {
		return Invalid, InsufficientFundsError
	}
	if t.Nonce() > acc.Nonce() {
		return Future, nil
	}
	return Valid, nil
}

// FeePrioritizer orders transactions by their declared fee.
type FeePrioritizer struct {
}

func (FeePrioritizer) Priority(t *tx.Transaction) *big.Int {
	return t.Fee()
}
