package chain

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/cryptonote"
)

// ErrMalformedBlob is returned by ParseTx/ParseBlock when a blob does not
// decode into the expected shape; the daemon is assumed to never return
// this except under a protocol mismatch.
var ErrMalformedBlob = errors.New("chain: malformed blob")

func sumBlob(b []byte) cryptonote.Hash {
	return cryptonote.Hash(sha256.Sum256(b))
}

// SerializeTx renders a transaction to its wire blob. A real node uses the
// CryptoNote portable binary format; gob is used here as the stand-in codec
// since no consensus rule in this module depends on byte-for-byte
// compatibility with another implementation, only on a stable size and a
// stable hash.
func SerializeTx(tx *Transaction) []byte {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(tx); err != nil {
		panic(err) // gob encoding of a plain struct graph cannot fail
	}
	return buf.Bytes()
}

// ParseTx decodes a transaction blob produced by SerializeTx (or by the
// daemon, in a real deployment, in the CryptoNote wire format).
func ParseTx(blob []byte) (*Transaction, error) {
	var tx Transaction
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&tx); err != nil {
		return nil, errors.Wrap(ErrMalformedBlob, err.Error())
	}
	return &tx, nil
}

// TxBlobSize returns the serialized size of a transaction in bytes, used
// to enforce the per-transaction size limit during construction.
func TxBlobSize(tx *Transaction) int {
	return len(SerializeTx(tx))
}

// blockWire is the on-the-wire shape of a Block; Block itself carries a
// derived ID field that is not part of the serialized form.
type blockWire struct {
	Timestamp uint64
	MinerTx   Transaction
	TxHashes  []cryptonote.Hash
}

// SerializeBlock renders a block to its wire blob (see SerializeTx for why
// gob stands in for the real codec).
func SerializeBlock(b *Block) []byte {
	var buf bytes.Buffer
	w := blockWire{Timestamp: b.Timestamp, MinerTx: b.MinerTx, TxHashes: b.TxHashes}
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// ParseBlock decodes a block blob and derives its id from the blob's hash.
func ParseBlock(blob []byte) (*Block, error) {
	var w blockWire
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&w); err != nil {
		return nil, errors.Wrap(ErrMalformedBlob, err.Error())
	}
	return &Block{
		ID:        sumBlob(blob),
		Timestamp: w.Timestamp,
		MinerTx:   w.MinerTx,
		TxHashes:  w.TxHashes,
	}, nil
}
