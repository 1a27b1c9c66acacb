package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
)

func TestShortChainHistoryAlwaysEndsAtGenesis(t *testing.T) {
	keys, err := wallet.GenerateAccountKeys()
	require.NoError(t, err)

	var genesis cryptonote.Hash
	genesis[0] = 1
	w := wallet.New(keys, genesis)
	for i := 0; i < 50; i++ {
		w.AppendBlock(cryptonote.Hash{byte(i + 2)})
	}

	ids := shortChainHistory(w)
	require.NotEmpty(t, ids)
	assert.Equal(t, genesis, ids[len(ids)-1])
	assert.Equal(t, w.BlockIDAt(w.Height()-1), ids[0])
}

func TestShortChainHistoryThinsOutOverDistance(t *testing.T) {
	keys, err := wallet.GenerateAccountKeys()
	require.NoError(t, err)
	var genesis cryptonote.Hash
	w := wallet.New(keys, genesis)
	for i := 0; i < 1000; i++ {
		w.AppendBlock(cryptonote.Hash{byte(i % 256)})
	}

	ids := shortChainHistory(w)
	// a dense per-block history over 1000 blocks would be 1001 entries;
	// thinning must keep this well under that.
	assert.Less(t, len(ids), 200)
}

func TestShortChainHistoryEmptyWallet(t *testing.T) {
	// height 0 has no blocks at all, an edge case the wallet's own
	// invariants never actually reach (New always seeds genesis), but
	// shortChainHistory must not panic on it.
	assert.Nil(t, shortChainHistory(&wallet.Wallet{}))
}
