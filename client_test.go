package lightwallet

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/config"
	"github.com/cryptonote-community/lightwallet/wallet"
)

func testKeys(t *testing.T) wallet.AccountKeys {
	t.Helper()
	keys, err := wallet.GenerateAccountKeys()
	require.NoError(t, err)
	return keys
}

func TestCreateThenSaveThenOpenRoundTrip(t *testing.T) {
	cfg := config.Default()
	keys := testKeys(t)
	var genesis [32]byte
	genesis[0] = 7

	path := filepath.Join(t.TempDir(), "wallet.bin")
	c := Create(cfg, path, keys, genesis)
	require.NoError(t, c.Save())

	reopened, err := Open(cfg, path, keys)
	require.NoError(t, err)
	assert.Equal(t, c.Wallet.Height(), reopened.Wallet.Height())
}

func TestOpenMissingFile(t *testing.T) {
	cfg := config.Default()
	keys := testKeys(t)
	_, err := Open(cfg, filepath.Join(t.TempDir(), "missing.bin"), keys)
	assert.Error(t, err)
}

func TestAutoRefresherStartStopIsClean(t *testing.T) {
	cfg := config.Default()
	keys := testKeys(t)
	var genesis [32]byte
	genesis[0] = 1
	path := filepath.Join(t.TempDir(), "wallet.bin")
	c := Create(cfg, path, keys, genesis)

	ar := NewAutoRefresher(c, 5*time.Millisecond)
	ar.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	ar.Stop()

	// Stop must be idempotent-safe to call without a matching Start.
	ar2 := NewAutoRefresher(c, time.Second)
	assert.NotPanics(t, ar2.Stop)
}
