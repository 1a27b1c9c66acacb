package walletfile

import (
	"bytes"
	"encoding/gob"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
)

func encodeForTest(disk onDiskWalletFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(disk); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileForTest(path string, data []byte) error {
	return ioutil.WriteFile(path, data, 0600)
}

func newTestWallet(t *testing.T) (*wallet.Wallet, wallet.AccountKeys) {
	t.Helper()
	keys, err := wallet.GenerateAccountKeys()
	require.NoError(t, err)
	var genesis cryptonote.Hash
	genesis[0] = 1
	w := wallet.New(keys, genesis)
	w.AppendBlock(cryptonote.Hash{2})
	w.AppendTransferLogEntry(wallet.TransferEntry{Outgoing: true, Amount: 5})
	return w, keys
}

func TestSaveLoadWalletFileRoundTrip(t *testing.T) {
	w, keys := newTestWallet(t)
	path := filepath.Join(t.TempDir(), "wallet")

	require.NoError(t, Save(path, w))
	loaded, err := Load(path, keys)
	require.NoError(t, err)

	assert.Equal(t, w.Height(), loaded.Height())
	assert.Equal(t, w.Balance(), loaded.Balance())
	assert.Len(t, loaded.GetTransfers(true, true, 0, 0), 1)
}

func TestLoadRejectsFutureVersion(t *testing.T) {
	w, keys := newTestWallet(t)
	path := filepath.Join(t.TempDir(), "wallet")
	require.NoError(t, Save(path, w))

	// Tamper with the on-disk version by encoding the same state directly
	// with a higher version than this build understands.
	disk := onDiskWalletFile{Version: CurrentVersion + 1, State: w.ExportState()}
	raw, err := encodeForTest(disk)
	require.NoError(t, err)
	require.NoError(t, writeFileForTest(path, raw))

	_, err = Load(path, keys)
	assert.ErrorIs(t, err, ErrFutureVersion)
}

func TestLoadGatesUnconfirmedByVersion(t *testing.T) {
	w, keys := newTestWallet(t)
	w.SetUnconfirmed(cryptonote.Hash{9}, wallet.UnconfirmedTransferDetails{ChangeAmount: 42})

	path := filepath.Join(t.TempDir(), "wallet")
	disk := onDiskWalletFile{Version: VersionMirrorAndOutputs, State: w.ExportState()}
	raw, err := encodeForTest(disk)
	require.NoError(t, err)
	require.NoError(t, writeFileForTest(path, raw))

	loaded, err := Load(path, keys)
	require.NoError(t, err)
	// unconfirmed change must not count toward balance since the v5
	// section gate dropped it.
	assert.Equal(t, uint64(0), loaded.Balance())
}
