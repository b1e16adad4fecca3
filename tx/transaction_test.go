package tx

import (
	"math/big"
	"testing"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/common/eth/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIsStable(t *testing.T) {
	a := CreateTransaction(common.HexToAddress("0x01"), common.HexToAddress("0x02"), 3, big.NewInt(10), big.NewInt(1), []byte("payload"))
	b := CreateTransaction(common.HexToAddress("0x01"), common.HexToAddress("0x02"), 3, big.NewInt(10), big.NewInt(1), []byte("payload"))

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestHashDependsOnContent(t *testing.T) {
	a := CreateTransaction(common.HexToAddress("0x01"), common.HexToAddress("0x02"), 3, big.NewInt(10), big.NewInt(1), nil)
	b := CreateTransaction(common.HexToAddress("0x01"), common.HexToAddress("0x02"), 4, big.NewInt(10), big.NewInt(1), nil)

	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestSignAndVerify(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	from := crypto.PubkeyToAddress(key.PublicKey())

	trans := CreateTransaction(common.HexToAddress("0x01"), from, 0, big.NewInt(100), big.NewInt(5), nil)
	trans.Sign(key)

	assert.NoError(t, trans.Verify())
}

func TestVerifyRejectsWrongSender(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)

	trans := CreateTransaction(common.HexToAddress("0x01"), common.HexToAddress("0xbad"), 0, big.NewInt(100), big.NewInt(5), nil)
	trans.Sign(key)

	assert.Equal(t, BadSignatureError, trans.Verify())
}

func TestVerifyRejectsUnsigned(t *testing.T) {
	trans := CreateTransaction(common.HexToAddress("0x01"), common.HexToAddress("0x02"), 0, big.NewInt(100), big.NewInt(5), nil)

	assert.Equal(t, NotSignedError, trans.Verify())
}

func TestSerializeRoundTrip(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	from := crypto.PubkeyToAddress(key.PublicKey())

	trans := CreateTransaction(common.HexToAddress("0x01"), from, 7, big.NewInt(100), big.NewInt(5), []byte("data"))
	trans.Sign(key)

	parsed, e := Deserialize(trans.Serialized())
	require.NoError(t, e)

	assert.Equal(t, trans.Hash(), parsed.Hash())
	assert.Equal(t, trans.From(), parsed.From())
	assert.Equal(t, trans.To(), parsed.To())
	assert.Equal(t, trans.Nonce(), parsed.Nonce())
	assert.Equal(t, 0, trans.Value().Cmp(parsed.Value()))
	assert.Equal(t, 0, trans.Fee().Cmp(parsed.Fee()))
	assert.Equal(t, trans.Data(), parsed.Data())
	assert.NoError(t, parsed.Verify())
}

func TestDeserializeGarbage(t *testing.T) {
	_, e := Deserialize([]byte{0x1, 0x2, 0x3})
	assert.Error(t, e)
}

func TestDeserializeTruncated(t *testing.T) {
	key, e := crypto.GenerateKey()
	require.NoError(t, e)
	from := crypto.PubkeyToAddress(key.PublicKey())

	trans := CreateTransaction(common.HexToAddress("0x01"), from, 7, big.NewInt(100), big.NewInt(5), []byte("data"))
	trans.Sign(key)
	serialized := trans.Serialized()

	// every proper prefix must fail to parse, partial reads included
	for i := 0; i < len(serialized); i++ {
		_, e := Deserialize(serialized[:i])
		assert.Error(t, e, "prefix of length %v parsed", i)
	}
}
