// Package wallet holds the wallet core: account keys, the blockchain
// mirror, owned outputs, the key-image index, payments, unconfirmed sends
// and the transfer log, plus the invariants that keep them consistent.
package wallet

import (
	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/cryptonote"
)

// ErrWrongPassword is returned when a keys-file's account keys fail the
// secret-to-public cross-check after unsealing.
var ErrWrongPassword = errors.New("wallet: wrong password")

// AccountKeys is the spend/view keypair; their concatenated public halves
// form the account's public address.
type AccountKeys struct {
	SpendSecret cryptonote.SecretKey
	SpendPublic cryptonote.PublicKey
	ViewSecret  cryptonote.SecretKey
	ViewPublic  cryptonote.PublicKey
}

// Address is the public address derived from an AccountKeys: the
// concatenation of the spend and view public keys.
type Address struct {
	SpendPublic cryptonote.PublicKey
	ViewPublic  cryptonote.PublicKey
}

// PublicAddress returns the account's public address.
func (k AccountKeys) PublicAddress() Address {
	return Address{SpendPublic: k.SpendPublic, ViewPublic: k.ViewPublic}
}

// GenerateAccountKeys creates a fresh random account keypair.
func GenerateAccountKeys() (AccountKeys, error) {
	spendSec, err := randomSecret()
	if err != nil {
		return AccountKeys{}, err
	}
	viewSec, err := randomSecret()
	if err != nil {
		return AccountKeys{}, err
	}
	return AccountKeys{
		SpendSecret: spendSec,
		SpendPublic: cryptonote.SecretToPublic(spendSec),
		ViewSecret:  viewSec,
		ViewPublic:  cryptonote.SecretToPublic(viewSec),
	}, nil
}

func randomSecret() (cryptonote.SecretKey, error) {
	var sk cryptonote.SecretKey
	if err := fillRandom(sk[:]); err != nil {
		return sk, err
	}
	return sk, nil
}

// CheckKeyConsistency re-derives both public keys from their secrets and
// compares them against the stored public keys. A mismatch after unsealing
// a keys-file means the password was wrong.
func (k AccountKeys) CheckKeyConsistency() error {
	if cryptonote.SecretToPublic(k.SpendSecret) != k.SpendPublic {
		return ErrWrongPassword
	}
	if cryptonote.SecretToPublic(k.ViewSecret) != k.ViewPublic {
		return ErrWrongPassword
	}
	return nil
}
