package walletfile

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/wallet"
)

func TestSaveLoadKeysRoundTrip(t *testing.T) {
	keys, err := wallet.GenerateAccountKeys()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wallet.keys")
	require.NoError(t, SaveKeys(path, keys, "correct horse"))
	assert.True(t, KeysFileExists(path))

	loaded, err := LoadKeys(path, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, keys, loaded)
}

func TestLoadKeysWrongPassword(t *testing.T) {
	keys, err := wallet.GenerateAccountKeys()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wallet.keys")
	require.NoError(t, SaveKeys(path, keys, "correct horse"))

	_, err = LoadKeys(path, "wrong password")
	assert.ErrorIs(t, err, wallet.ErrWrongPassword)
}

func TestLoadKeysNotAKeysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-keys-file")
	require.NoError(t, ioutil.WriteFile(path, []byte("not a gob stream at all"), 0600))

	_, err := LoadKeys(path, "whatever")
	assert.Error(t, err)
}

func TestKeysFilePath(t *testing.T) {
	assert.Equal(t, "/tmp/wallet.keys", KeysFilePath("/tmp/wallet"))
}
