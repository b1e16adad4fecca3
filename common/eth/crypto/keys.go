package crypto

import (
	"crypto/rand"

	"github.com/korolevchain/sequencer/common/eth/common"
	"github.com/korolevchain/sequencer/common/eth/crypto/bls12_381"
	"github.com/op/go-logging"
	"github.com/phoreproject/bls/g1pubs"
	"golang.org/x/crypto/sha3"
)

var log = logging.MustGetLogger("crypto")

// TxDomain separates transaction signatures from any other message class
// signed with the same key.
const TxDomain = uint64(0x1)

const (
	PublicKeyLength = 48
	SignLength      = 96
	SignatureLength = PublicKeyLength + SignLength
)

type PublicKey struct {
	v *g1pubs.PublicKey
}

func NewPublicKey(v *g1pubs.PublicKey) *PublicKey {
	return &PublicKey{v: v}
}

func (key *PublicKey) V() *g1pubs.PublicKey {
	return key.v
}

func (key *PublicKey) Bytes() []byte {
	b := key.v.Serialize()
	return b[:]
}

type PrivateKey struct {
	v *g1pubs.SecretKey
}

func NewPrivateKey(v *g1pubs.SecretKey) *PrivateKey {
	return &PrivateKey{v: v}
}

func (pk *PrivateKey) V() *g1pubs.SecretKey {
	return pk.v
}

func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{g1pubs.PrivToPub(pk.v)}
}

func GenerateKey() (*PrivateKey, error) {
	k, err := bls12_381.RandKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(k), nil
}

// Signature carries the signer public key next to the sign itself, the
// sender address is derived from it on verification.
type Signature struct {
	pub  *g1pubs.PublicKey
	sign *g1pubs.Signature
}

func NewSignature(pub *g1pubs.PublicKey, sign *g1pubs.Signature) *Signature {
	return &Signature{pub: pub, sign: sign}
}

func (s *Signature) Pub() *g1pubs.PublicKey {
	return s.pub
}

func (s *Signature) Sign() *g1pubs.Signature {
	return s.sign
}

func (s *Signature) IsEmpty() bool {
	return s == nil || s.sign == nil
}

func (s *Signature) Bytes() []byte {
	pk := s.pub.Serialize()
	sig := s.sign.Serialize()
	res := make([]byte, 0, SignatureLength)
	res = append(res, pk[:]...)
	return append(res, sig[:]...)
}

func SignatureFromBytes(b []byte) *Signature {
	if len(b) != SignatureLength {
		log.Errorf("bad signature length %v", len(b))
		return nil
	}
	pub, e := g1pubs.DeserializePublicKey(bls12_381.ToBytes48(b[:PublicKeyLength]))
	if e != nil {
		log.Error(e)
		return nil
	}
	sign, e := g1pubs.DeserializeSignature(bls12_381.ToBytes96(b[PublicKeyLength:]))
	if e != nil {
		log.Error(e)
		return nil
	}
	return NewSignature(pub, sign)
}

func Sign(message []byte, key *PrivateKey) *Signature {
	sign := bls12_381.Sign(message, key.v, TxDomain)
	if sign == nil {
		return nil
	}
	return NewSignature(g1pubs.PrivToPub(key.v), sign)
}

func Verify(message []byte, s *Signature) bool {
	if s.IsEmpty() {
		return false
	}
	return bls12_381.Verify(message, s.sign, s.pub, TxDomain)
}

func PubkeyToAddress(key *PublicKey) common.Address {
	return common.BytesToAddress(Keccak256(key.Bytes())[12:])
}

func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}
