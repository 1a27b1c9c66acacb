package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
)

func newFundedWallet(t *testing.T, amounts ...uint64) *wallet.Wallet {
	t.Helper()
	keys, err := wallet.GenerateAccountKeys()
	require.NoError(t, err)
	var genesis cryptonote.Hash
	w := wallet.New(keys, genesis)
	for i := 0; i < 11; i++ {
		w.AppendBlock(cryptonote.Hash{byte(i + 1)})
	}
	for i, amt := range amounts {
		var img cryptonote.KeyImage
		img[0] = byte(i + 1)
		_, err := w.AddOwnedOutput(wallet.TransferDetails{
			BlockHeight: 1,
			Tx:          chain.Transaction{Vout: []chain.TxOutToKey{{Amount: amt}}},
			KeyImage:    img,
		})
		require.NoError(t, err)
	}
	return w
}

func TestSelectTransfersCoversNeededAmount(t *testing.T) {
	w := newFundedWallet(t, 100, 200, 300)
	selected, found, err := selectTransfers(w, 250, false, DefaultDustThreshold)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, found, uint64(250))
	assert.NotEmpty(t, selected)
}

func TestSelectTransfersNotEnoughMoney(t *testing.T) {
	w := newFundedWallet(t, 10, 20)
	selected, found, err := selectTransfers(w, 1000, false, DefaultDustThreshold)
	require.NoError(t, err)
	assert.Less(t, found, uint64(1000))
	assert.Len(t, selected, 2, "must exhaust every unlocked output before giving up")
}

func TestSelectTransfersPrefersDustFirstWhenAddDust(t *testing.T) {
	w := newFundedWallet(t, 1, 500)
	selected, _, err := selectTransfers(w, 500, true, DefaultDustThreshold)
	require.NoError(t, err)
	require.NotEmpty(t, selected)

	dustIdx := 0 // the 1-amount output was added first
	found := false
	for _, idx := range selected {
		if idx == dustIdx {
			found = true
		}
	}
	assert.True(t, found, "dust output should be swept in when addDust is set")
}
