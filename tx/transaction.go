package tx

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/big"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/common/eth/crypto"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("tx")

var (
	ParseError        = errors.New("can't parse transaction")
	NotSignedError    = errors.New("transaction is not signed")
	BadSignatureError = errors.New("signature check failed")
)

// Transaction is immutable once admitted to the pool, all mutators are meant
// for the construction and signing phase only.
type Transaction struct {
	to        common.Address
	from      common.Address
	nonce     uint64
	value     *big.Int
	fee       *big.Int
	data      []byte
	signature *crypto.Signature

	hash       common.Hash
	serialized []byte
}

func CreateTransaction(to common.Address, from common.Address, nonce uint64, value *big.Int, fee *big.Int, data []byte) *Transaction {
	return &Transaction{
		to:    to,
		from:  from,
		nonce: nonce,
		value: value,
		fee:   fee,
		data:  data,
	}
}

func (t *Transaction) To() common.Address {
	return t.to
}

func (t *Transaction) From() common.Address {
	return t.from
}

func (t *Transaction) Nonce() uint64 {
	return t.nonce
}

func (t *Transaction) Value() *big.Int {
	return t.value
}

func (t *Transaction) Fee() *big.Int {
	return t.fee
}

func (t *Transaction) Data() []byte {
	return t.data
}

func (t *Transaction) Signature() *crypto.Signature {
	return t.signature
}

// Cost is the upper bound the sender account is charged for this transaction.
func (t *Transaction) Cost() *big.Int {
	return new(big.Int).Add(t.value, t.fee)
}

func (t *Transaction) Hash() common.Hash {
	if t.hash.IsEmpty() {
		t.hash = common.BytesToHash(crypto.Keccak256(t.signedContent()))
	}
	return t.hash
}

func (t *Transaction) Sign(key *crypto.PrivateKey) {
	hash := t.Hash()
	sig := crypto.Sign(hash.Bytes(), key)
	if sig == nil {
		log.Error("Can't sign transaction")
		return
	}
	t.signature = sig
	t.serialized = nil
}

// Verify checks the signature against the content hash and matches the
// declared sender against the address derived from the signer public key.
func (t *Transaction) Verify() error {
	if t.signature.IsEmpty() {
		return NotSignedError
	}
	if !crypto.Verify(t.Hash().Bytes(), t.signature) {
		return BadSignatureError
	}
	signer := crypto.PubkeyToAddress(crypto.NewPublicKey(t.signature.Pub()))
	if signer != t.from {
		return BadSignatureError
	}
	return nil
}

// signedContent is the canonical byte representation covered by the hash and
// the signature. The signature itself is excluded.
func (t *Transaction) signedContent() []byte {
	buf := new(bytes.Buffer)
	buf.Write(t.to.Bytes())
	buf.Write(t.from.Bytes())
	writeUint64(buf, t.nonce)
	writeBytes(buf, t.value.Bytes())
	writeBytes(buf, t.fee.Bytes())
	writeBytes(buf, t.data)
	return buf.Bytes()
}

func (t *Transaction) Serialized() []byte {
	if t.serialized == nil {
		buf := new(bytes.Buffer)
		buf.Write(t.signedContent())
		if t.signature.IsEmpty() {
			buf.WriteByte(0)
		} else {
			buf.WriteByte(1)
			buf.Write(t.signature.Bytes())
		}
		t.serialized = buf.Bytes()
	}
	return t.serialized
}

func Deserialize(b []byte) (*Transaction, error) {
	r := bytes.NewReader(b)

	to, e := readAddress(r)
	if e != nil {
		return nil, e
	}
	from, e := readAddress(r)
	if e != nil {
		return nil, e
	}
	nonce, e := readUint64(r)
	if e != nil {
		return nil, e
	}
	value, e := readBytes(r)
	if e != nil {
		return nil, e
	}
	fee, e := readBytes(r)
	if e != nil {
		return nil, e
	}
	data, e := readBytes(r)
	if e != nil {
		return nil, e
	}
	if len(data) == 0 {
		data = nil
	}

	t := CreateTransaction(to, from, nonce, new(big.Int).SetBytes(value), new(big.Int).SetBytes(fee), data)

	flag, e := r.ReadByte()
	if e != nil {
		return nil, ParseError
	}
	if flag == 1 {
		sig := make([]byte, crypto.SignatureLength)
		if _, e := io.ReadFull(r, sig); e != nil {
			return nil, ParseError
		}
		t.signature = crypto.SignatureFromBytes(sig)
		if t.signature == nil {
			return nil, ParseError
		}
	}
	return t, nil
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	buf.Write(b)
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	l := make([]byte, 4)
	binary.BigEndian.PutUint32(l, uint32(len(b)))
	buf.Write(l)
	buf.Write(b)
}

func readAddress(r *bytes.Reader) (common.Address, error) {
	b := make([]byte, common.AddressLength)
	if _, e := io.ReadFull(r, b); e != nil {
		return common.Address{}, ParseError
	}
	return common.BytesToAddress(b), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	b := make([]byte, 8)
	if _, e := io.ReadFull(r, b); e != nil {
		return 0, ParseError
	}
	return binary.BigEndian.Uint64(b), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	l := make([]byte, 4)
	if _, e := io.ReadFull(r, l); e != nil {
		return nil, ParseError
	}
	size := binary.BigEndian.Uint32(l)
	if size == 0 {
		return nil, nil
	}
	if int(size) > r.Len() {
		return nil, ParseError
	}
	b := make([]byte, size)
	if _, e := io.ReadFull(r, b); e != nil {
		return nil, ParseError
	}
	return b, nil
}
