package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/cryptonote"
)

func sampleTx() Transaction {
	return Transaction{
		Version:    1,
		UnlockTime: 0,
		Vin: []TxInToKey{
			{Amount: 100, KeyOffsets: []uint64{1, 5, 9}},
		},
		Vout: []TxOutToKey{
			{Amount: 50},
			{Amount: 50},
		},
		ExtraRaw:   []byte{0x01, 0x02, 0x03},
		Signatures: [][]byte{{0xff}},
	}
}

func TestSerializeParseTxRoundTrip(t *testing.T) {
	tx := sampleTx()
	blob := SerializeTx(&tx)
	parsed, err := ParseTx(blob)
	require.NoError(t, err)
	assert.Equal(t, tx, *parsed)
}

func TestTxHashStableForIdenticalTx(t *testing.T) {
	tx1 := sampleTx()
	tx2 := sampleTx()
	assert.Equal(t, tx1.Hash(), tx2.Hash())
}

func TestTxHashDiffersOnChange(t *testing.T) {
	tx1 := sampleTx()
	tx2 := sampleTx()
	tx2.Vout[0].Amount = 999
	assert.NotEqual(t, tx1.Hash(), tx2.Hash())
}

func TestParseTxMalformedBlob(t *testing.T) {
	_, err := ParseTx([]byte{0x00, 0x01, 0x02})
	assert.ErrorIs(t, err, ErrMalformedBlob)
}

func TestSerializeParseBlockRoundTrip(t *testing.T) {
	b := &Block{
		Timestamp: 12345,
		MinerTx:   sampleTx(),
		TxHashes:  []cryptonote.Hash{},
	}
	blob := SerializeBlock(b)
	parsed, err := ParseBlock(blob)
	require.NoError(t, err)
	assert.Equal(t, b.Timestamp, parsed.Timestamp)
	assert.Equal(t, b.MinerTx, parsed.MinerTx)
	assert.NotEqual(t, cryptonote.Hash{}, parsed.ID)
}
