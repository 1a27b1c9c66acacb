// Package walletfile implements the two on-disk artifacts a wallet
// persists between runs: a chacha8-sealed keys-file carrying the account
// keypair, and a versioned wallet-file carrying everything else (the
// blockchain mirror, owned outputs, payments, unconfirmed sends and
// transfer log). Both formats are gob-encoded the way chain.SerializeTx
// stands in for the real wire codec; only the seal/version-gate logic is
// load-bearing.
package walletfile

import (
	"bytes"
	"encoding/gob"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
	"github.com/cryptonote-community/lightwallet/xlog"
)

var logger = xlog.NewModuleLogger(xlog.ModuleWalletFile)

// KeysFileSuffix is appended to a wallet-file's base path to get its
// keys-file path (wallet2's ".keys" convention).
const KeysFileSuffix = ".keys"

// ErrNotKeysFile is returned by LoadKeys when the file does not start with
// the expected magic.
var ErrNotKeysFile = errors.New("walletfile: not a keys file")

var keysFileMagic = [8]byte{'c', 'n', 'l', 'w', 'k', 'e', 'y', 's'}

// keysFileData is the sealed payload: everything needed to recover the
// account keypair and confirm the password was correct.
type keysFileData struct {
	SpendSecret cryptonote.SecretKey
	SpendPublic cryptonote.PublicKey
	ViewSecret  cryptonote.SecretKey
	ViewPublic  cryptonote.PublicKey
}

// onDiskKeysFile is the unsealed envelope written to disk: a magic, the
// IV the payload was sealed under, and the ciphertext.
type onDiskKeysFile struct {
	Magic      [8]byte
	IV         cryptonote.ChachaIV
	Ciphertext []byte
}

// SaveKeys seals keys under password and writes it to path. Matches
// wallet2::store_keys: the keys-file is always written with 0600
// permissions since it is the single secret an attacker needs.
func SaveKeys(path string, keys wallet.AccountKeys, password string) error {
	var plain bytes.Buffer
	payload := keysFileData{
		SpendSecret: keys.SpendSecret,
		SpendPublic: keys.SpendPublic,
		ViewSecret:  keys.ViewSecret,
		ViewPublic:  keys.ViewPublic,
	}
	if err := gob.NewEncoder(&plain).Encode(payload); err != nil {
		return errors.Wrap(err, "walletfile: encode keys file")
	}

	iv, err := cryptonote.NewChachaIV()
	if err != nil {
		return errors.Wrap(err, "walletfile: generate IV")
	}
	key := cryptonote.DeriveChacha8Key(password)
	ciphertext := cryptonote.Chacha8XOR(key, iv, plain.Bytes())

	var out bytes.Buffer
	disk := onDiskKeysFile{Magic: keysFileMagic, IV: iv, Ciphertext: ciphertext}
	if err := gob.NewEncoder(&out).Encode(disk); err != nil {
		return errors.Wrap(err, "walletfile: encode keys file envelope")
	}

	if err := ioutil.WriteFile(path, out.Bytes(), 0600); err != nil {
		return errors.Wrap(err, "walletfile: write keys file")
	}
	logger.Info("wrote keys file", "path", path)
	return nil
}

// LoadKeys reads and unseals a keys-file, returning ErrWrongPassword (via
// AccountKeys.CheckKeyConsistency) if password is wrong.
func LoadKeys(path string, password string) (wallet.AccountKeys, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return wallet.AccountKeys{}, errors.Wrap(err, "walletfile: read keys file")
	}

	var disk onDiskKeysFile
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&disk); err != nil {
		return wallet.AccountKeys{}, errors.Wrap(ErrNotKeysFile, err.Error())
	}
	if disk.Magic != keysFileMagic {
		return wallet.AccountKeys{}, ErrNotKeysFile
	}

	key := cryptonote.DeriveChacha8Key(password)
	plain := cryptonote.Chacha8XOR(key, disk.IV, disk.Ciphertext)

	var payload keysFileData
	if err := gob.NewDecoder(bytes.NewReader(plain)).Decode(&payload); err != nil {
		// A corrupt decode after a wrong-key XOR looks the same as a
		// genuinely malformed file from here; report it as a wrong
		// password, which is what it almost always is in practice.
		return wallet.AccountKeys{}, wallet.ErrWrongPassword
	}

	keys := wallet.AccountKeys{
		SpendSecret: payload.SpendSecret,
		SpendPublic: payload.SpendPublic,
		ViewSecret:  payload.ViewSecret,
		ViewPublic:  payload.ViewPublic,
	}
	if err := keys.CheckKeyConsistency(); err != nil {
		return wallet.AccountKeys{}, err
	}
	return keys, nil
}

// KeysFilePath derives the keys-file path for a wallet-file base path.
func KeysFilePath(walletPath string) string {
	return walletPath + KeysFileSuffix
}

// KeysFileExists reports whether a keys-file already exists at path,
// used by wallet generation to refuse to overwrite an existing account.
func KeysFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
