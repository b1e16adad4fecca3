package txpool

import (
	"context"
	"math/big"
	"testing"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/common/eth/crypto"
	"github.com/korolevchain/sequencer/state"
	"github.com/korolevchain/sequencer/tx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) Get(ctx context.Context, address common.Address) (*state.Account, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*state.Account), args.Error(1)
}

func signedTx(t *testing.T, key *crypto.PrivateKey, nonce uint64, value int64, fee int64) *tx.Transaction {
	from := crypto.PubkeyToAddress(key.PublicKey())
	trans := tx.CreateTransaction(common.HexToAddress("0x02"), from, nonce, big.NewInt(value), big.NewInt(fee), nil)
	trans.Sign(key)
	require.NoError(t, trans.Verify())
	return trans
}

func TestValidateAdmits(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	trans := signedTx(t, key, 0, 100, 10)

	provider := &ProviderMock{}
	provider.On("Get", mock.Anything, trans.From()).Return(state.NewAccount(0, big.NewInt(1000)), nil)

	decision, err := NewStatefulValidator(provider).Validate(context.Background(), trans)
	require.NoError(t, err)
	assert.Equal(t, Valid, decision)
}

func TestValidateFutureNonce(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	trans := signedTx(t, key, 4, 100, 10)

	provider := &ProviderMock{}
	provider.On("Get", mock.Anything, trans.From()).Return(state.NewAccount(2, big.NewInt(1000)), nil)

	decision, err := NewStatefulValidator(provider).Validate(context.Background(), trans)
	require.NoError(t, err)
	assert.Equal(t, Future, decision)
}

func TestValidateStaleNonce(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	trans := signedTx(t, key, 1, 100, 10)

	provider := &ProviderMock{}
	provider.On("Get", mock.Anything, trans.From()).Return(state.NewAccount(5, big.NewInt(1000)), nil)

	decision, err := NewStatefulValidator(provider).Validate(context.Background(), trans)
	assert.Equal(t, Invalid, decision)
	assert.Equal(t, StaleNonceError, errors.Cause(err))
}

func TestValidateInsufficientFunds(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	trans := signedTx(t, key, 0, 100, 10)

	provider := &ProviderMock{}
	provider.On("Get", mock.Anything, trans.From()).Return(state.NewAccount(0, big.NewInt(50)), nil)

	decision, err := NewStatefulValidator(provider).Validate(context.Background(), trans)
	assert.Equal(t, Invalid, decision)
	assert.Equal(t, InsufficientFundsError, errors.Cause(err))
}

func TestValidateUnsigned(t *testing.T) {
	trans := makeTx(0x1, 0, 10)

	provider := &ProviderMock{}
	decision, err := NewStatefulValidator(provider).Validate(context.Background(), trans)
	assert.Equal(t, Invalid, decision)
	assert.Equal(t, InvalidSignatureError, errors.Cause(err))
	provider.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestValidateForgedSender(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)

	trans := tx.CreateTransaction(common.HexToAddress("0x02"), common.HexToAddress("0x03"), 0, big.NewInt(100), big.NewInt(10), nil)
	trans.Sign(key)

	provider := &ProviderMock{}
	decision, err := NewStatefulValidator(provider).Validate(context.Background(), trans)
	assert.Equal(t, Invalid, decision)
	assert.Equal(t, InvalidSignatureError, errors.Cause(err))
}

func TestValidateStateUnavailable(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	trans := signedTx(t, key, 0, 100, 10)

	provider := &ProviderMock{}
	provider.On("Get", mock.Anything, trans.From()).Return(nil, errors.New("backend down"))

	decision, err := NewStatefulValidator(provider).Validate(context.Background(), trans)
	assert.Equal(t, Invalid, decision)
	assert.Equal(t, StateUnavailableError, errors.Cause(err))
}
