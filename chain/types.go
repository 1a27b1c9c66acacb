// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package chain holds the block/transaction shapes the wallet core reads
// and writes. Parsing block/tx blobs and enforcing consensus rules on them
// is out of scope; ParseBlock, ParseTx and the blob-size/serialize helpers
// below are the contract boundary a full node's codec would sit behind.
package chain

import "github.com/cryptonote-community/lightwallet/cryptonote"

// TxInToKey is a transaction input spending a one-time output by key image,
// ring-signed against a set of decoy global output indexes.
type TxInToKey struct {
	Amount      uint64
	KeyOffsets  []uint64 // global output indexes of the ring members, ascending
	KeyImage    cryptonote.KeyImage
}

// TxOutToKey is a transaction output paying a one-time public key.
type TxOutToKey struct {
	Amount uint64
	Key    cryptonote.PublicKey
}

// ExtraField tags are the handful of tx_extra entries the wallet core
// reads: the ephemeral transaction public key and an optional payment-id
// nonce.
const (
	ExtraTagPubKey     = 0x01
	ExtraTagNonce      = 0x02
	NonceTagPaymentID  = 0x00
	PaymentIDSize      = 32
)

// Extra is the parsed tx_extra: the ephemeral transaction public key
// (absent only for malformed/foreign transactions the scanner should skip)
// and a raw payment-id, if the nonce field carried one.
type Extra struct {
	TxPubKey     cryptonote.PublicKey
	HasTxPubKey  bool
	PaymentID    [PaymentIDSize]byte
	HasPaymentID bool
}

// Transaction is the wallet's view of a CryptoNote transaction: a ring-
// signed spend of prior one-time outputs paying a set of new one-time
// outputs, plus opaque extra data and per-input ring signatures.
type Transaction struct {
	Version    uint64
	UnlockTime uint64
	Vin        []TxInToKey
	Vout       []TxOutToKey
	ExtraRaw   []byte
	Signatures [][]byte // one opaque ring signature blob per Vin, same order
}

// Hash returns the transaction's identifying hash. Computing a real
// CryptoNote transaction hash means canonically serializing and hashing the
// prefix; SerializeTx below stands in for that codec.
func (tx *Transaction) Hash() cryptonote.Hash {
	return sumBlob(SerializeTx(tx))
}

// Block is the wallet's view of a parsed block: its id, the miner
// transaction, and the ordinary transactions it contains.
type Block struct {
	ID        cryptonote.Hash
	Timestamp uint64
	MinerTx   Transaction
	TxHashes  []cryptonote.Hash
}
