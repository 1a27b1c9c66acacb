package cryptonote

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

// SecretKey and PublicKey are opaque 32-byte scalars/group elements. The
// underlying group is a small finite-field stand-in for the real
// edwards25519 group the production daemon and wallet use; it exists only
// to give the wallet core something algebraically consistent to exercise
// (Diffie-Hellman derivation, one-time keys, key images) without pulling in
// a full elliptic-curve implementation, which is explicitly out of scope.
type (
	SecretKey [32]byte
	PublicKey [32]byte
	KeyImage  [32]byte
	Hash      [32]byte
)

// groupP is a 256-bit safe prime and groupG a generator of the order-Q
// subgroup; groupQ = (groupP-1)/2 is the scalar modulus. Real wallets do
// this arithmetic on edwards25519; the algebra here plays the same role.
var (
	groupP, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffc50cf", 16)
	groupQ    = new(big.Int).Rsh(new(big.Int).Sub(groupP, big.NewInt(1)), 1)
	groupG    = big.NewInt(7)
)

func scalarInt(sk SecretKey) *big.Int {
	i := new(big.Int).SetBytes(sk[:])
	return i.Mod(i, groupQ)
}

func pointInt(pk PublicKey) *big.Int {
	return new(big.Int).SetBytes(pk[:])
}

func intToPoint(i *big.Int) PublicKey {
	var out PublicKey
	b := i.Bytes()
	copy(out[32-len(b):], b)
	return out
}

func intToScalar(i *big.Int) SecretKey {
	var out SecretKey
	m := new(big.Int).Mod(i, groupQ)
	b := m.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// SecretToPublic computes the public key g^s mod P for a secret scalar s.
// secret_to_public(spend_secret) == spend_public is the invariant a keys
// file unseal must re-check: a mismatch means a wrong password.
func SecretToPublic(sk SecretKey) PublicKey {
	p := new(big.Int).Exp(groupG, scalarInt(sk), groupP)
	return intToPoint(p)
}

// CombinePublic plays the role of EC point addition: it combines two
// public keys such that CombinePublic(SecretToPublic(a), SecretToPublic(b))
// == SecretToPublic(a+b mod Q).
func CombinePublic(a, b PublicKey) PublicKey {
	p := new(big.Int).Mul(pointInt(a), pointInt(b))
	p.Mod(p, groupP)
	return intToPoint(p)
}

// GenerateKeyDerivation computes the Diffie-Hellman shared value
// derivation = pub^sec mod P, symmetric in the sense that
// GenerateKeyDerivation(SecretToPublic(b), a) == GenerateKeyDerivation(SecretToPublic(a), b).
// Receivers call it with (tx_pub_key, view_secret); it never requires the
// spend secret, which is what makes view-only scanning possible.
func GenerateKeyDerivation(pub PublicKey, sec SecretKey) Hash {
	p := new(big.Int).Exp(pointInt(pub), scalarInt(sec), groupP)
	return Hash(intToPoint(p))
}

// HashToScalar is Hs(derivation, output_index) in CryptoNote notation: the
// per-output scalar that binds a one-time key to its position in the
// transaction's output list.
func HashToScalar(derivation Hash, outputIndex uint64) SecretKey {
	var buf [40]byte
	copy(buf[:32], derivation[:])
	binary.LittleEndian.PutUint64(buf[32:], outputIndex)
	digest := sha256.Sum256(buf[:])
	return intToScalar(new(big.Int).SetBytes(digest[:]))
}

// DerivePublicKey computes the one-time output key P = Hs(D,i)*G + B that a
// sender would have written into tx.vout[i].target.key, using only the
// derivation and the recipient's spend public key. A scanner recomputes
// this and compares it against the on-chain output to decide ownership.
func DerivePublicKey(derivation Hash, outputIndex uint64, basePub PublicKey) PublicKey {
	hs := HashToScalar(derivation, outputIndex)
	hsPub := SecretToPublic(hs)
	return CombinePublic(hsPub, basePub)
}

// DeriveSecretKey computes the one-time ephemeral secret x = Hs(D,i) + b
// that spends the output created by DerivePublicKey with the same
// derivation, index and base secret. SecretToPublic(x) == DerivePublicKey(...)
// by construction.
func DeriveSecretKey(derivation Hash, outputIndex uint64, baseSec SecretKey) SecretKey {
	hs := scalarInt(HashToScalar(derivation, outputIndex))
	sum := new(big.Int).Add(hs, scalarInt(baseSec))
	return intToScalar(sum)
}

// GenerateKeyImage derives the deterministic double-spend tag for a
// one-time keypair (pub, sec): I = Hp(pub)^sec mod P, where Hp hashes a
// public key into a second group element (the real protocol hashes a
// point to a point on the curve; here it is just a second generator).
func GenerateKeyImage(pub PublicKey, sec SecretKey) KeyImage {
	digest := sha256.Sum256(pub[:])
	hp := new(big.Int).Exp(groupG, new(big.Int).SetBytes(digest[:]), groupP)
	img := new(big.Int).Exp(hp, scalarInt(sec), groupP)
	return KeyImage(intToPoint(img))
}
