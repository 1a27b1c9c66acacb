package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
)

func testKeys(t *testing.T) AccountKeys {
	t.Helper()
	keys, err := GenerateAccountKeys()
	require.NoError(t, err)
	return keys
}

func txWithOutput(amount uint64, unlockTime uint64) chain.Transaction {
	return chain.Transaction{
		Vout:       []chain.TxOutToKey{{Amount: amount}},
		UnlockTime: unlockTime,
	}
}

func TestNewWalletSeedsGenesisOnly(t *testing.T) {
	keys := testKeys(t)
	var genesis cryptonote.Hash
	genesis[0] = 1

	w := New(keys, genesis)
	assert.Equal(t, uint64(1), w.Height())
	assert.Equal(t, genesis, w.BlockIDAt(0))
	assert.NoError(t, w.CheckGenesis())
	assert.Equal(t, uint64(0), w.Balance())
}

func TestCheckGenesisMismatch(t *testing.T) {
	keys := testKeys(t)
	var genesis, wrong cryptonote.Hash
	genesis[0] = 1
	wrong[0] = 2

	w := New(keys, genesis)
	w.blockchain[0] = wrong
	assert.ErrorIs(t, w.CheckGenesis(), ErrGenesisMismatch)
}

func TestAddOwnedOutputAndDuplicateKeyImage(t *testing.T) {
	w := New(testKeys(t), cryptonote.Hash{})

	var img cryptonote.KeyImage
	img[0] = 7
	td := TransferDetails{Tx: txWithOutput(100, 0), KeyImage: img}

	idx, err := w.AddOwnedOutput(td)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, uint64(100), w.Balance())

	_, err = w.AddOwnedOutput(td)
	assert.ErrorIs(t, err, ErrDuplicateKeyImage)
}

func TestMarkSpentByKeyImage(t *testing.T) {
	w := New(testKeys(t), cryptonote.Hash{})
	var img cryptonote.KeyImage
	img[0] = 9
	_, err := w.AddOwnedOutput(TransferDetails{Tx: txWithOutput(50, 0), KeyImage: img})
	require.NoError(t, err)

	amount, found := w.MarkSpentByKeyImage(img)
	assert.True(t, found)
	assert.Equal(t, uint64(50), amount)
	assert.Equal(t, uint64(0), w.Balance())

	var unknown cryptonote.KeyImage
	unknown[0] = 0xff
	_, found = w.MarkSpentByKeyImage(unknown)
	assert.False(t, found)
}

func TestUnlockedBalanceRespectsSpendableAge(t *testing.T) {
	w := New(testKeys(t), cryptonote.Hash{})
	for i := 0; i < 11; i++ {
		w.AppendBlock(cryptonote.Hash{byte(i + 1)})
	}
	require.Equal(t, uint64(12), w.Height())

	var img cryptonote.KeyImage
	img[0] = 3
	idx, err := w.AddOwnedOutput(TransferDetails{
		BlockHeight: 1,
		Tx:          txWithOutput(100, 0),
		KeyImage:    img,
	})
	require.NoError(t, err)

	assert.True(t, w.IsTransferUnlocked(idx))
	assert.Equal(t, uint64(100), w.UnlockedBalance())
}

func TestDetachBlockchainErasesOwnedOutputsAtOrPastHeight(t *testing.T) {
	w := New(testKeys(t), cryptonote.Hash{})
	for i := 0; i < 5; i++ {
		w.AppendBlock(cryptonote.Hash{byte(i + 1)})
	}

	var keep, drop cryptonote.KeyImage
	keep[0], drop[0] = 1, 2
	_, err := w.AddOwnedOutput(TransferDetails{BlockHeight: 1, Tx: txWithOutput(10, 0), KeyImage: keep})
	require.NoError(t, err)
	_, err = w.AddOwnedOutput(TransferDetails{BlockHeight: 4, Tx: txWithOutput(20, 0), KeyImage: drop})
	require.NoError(t, err)

	removed, err := w.DetachBlockchain(4)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, uint64(4), w.Height())
	assert.Equal(t, uint64(1), w.DetachGeneration())
	assert.Equal(t, uint64(10), w.Balance())

	_, found := w.MarkSpentByKeyImage(drop)
	assert.False(t, found, "erased owned output must be gone from the key-image index")
}

func TestAppendTransferLogAndQuery(t *testing.T) {
	w := New(testKeys(t), cryptonote.Hash{})
	w.AppendTransferLogEntry(TransferEntry{Outgoing: true, BlockHeight: 5})
	w.AppendTransferLogEntry(TransferEntry{Outgoing: false, BlockHeight: 3})

	out := w.GetTransfers(false, true, 0, 0)
	require.Len(t, out, 1)
	assert.True(t, out[0].Outgoing)

	in := w.GetTransfers(true, false, 0, 0)
	require.Len(t, in, 1)
	assert.False(t, in[0].Outgoing)
}

func TestIsSpendtimeUnlockedBlockHeight(t *testing.T) {
	assert.True(t, IsSpendtimeUnlocked(10, 10))
	assert.False(t, IsSpendtimeUnlocked(10, 8))
}
