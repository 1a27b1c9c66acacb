package walletfile

import (
	"bytes"
	"encoding/gob"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/wallet"
)

// Version gates which fields a wallet-file carries, mirroring the
// original format's incremental history: v5 carries the blockchain
// mirror and owned outputs; v6 added unconfirmed sends; v7 added
// payments; v8 added the transfer log. The file stores no account
// address, so Load does not check the file against the keys it is given,
// and the key-image index is rebuilt from the owned outputs on load. A
// wallet-file is always written at CurrentVersion and read at whatever
// version it declares, defaulting absent newer sections to empty.
type Version uint32

const (
	VersionMirrorAndOutputs Version = 5
	VersionUnconfirmed       Version = 6
	VersionPayments          Version = 7
	VersionTransferLog       Version = 8

	CurrentVersion = VersionTransferLog
)

// ErrFutureVersion is returned by Load when a wallet-file declares a
// version newer than this implementation understands.
var ErrFutureVersion = errors.New("walletfile: wallet file version is newer than supported")

// onDiskWalletFile is the gob-encoded shape a wallet-file round-trips.
// Fields added after v5 are still always present in the encoding (gob
// encodes zero-valued maps/slices cheaply); Version is what a reader uses
// to decide whether to trust them.
type onDiskWalletFile struct {
	Version Version
	State   wallet.State
}

// Save writes w's full state to path at CurrentVersion.
func Save(path string, w *wallet.Wallet) error {
	disk := onDiskWalletFile{Version: CurrentVersion, State: w.ExportState()}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(disk); err != nil {
		return errors.Wrap(err, "walletfile: encode wallet file")
	}
	if err := ioutil.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return errors.Wrap(err, "walletfile: write wallet file")
	}
	logger.Info("wrote wallet file", "path", path, "version", CurrentVersion)
	return nil
}

// Load reads a wallet-file and reconstructs a Wallet bound to keys,
// gating which sections of the restored state are trusted by the file's
// declared version, and verifying the genesis-hash invariant before
// returning.
func Load(path string, keys wallet.AccountKeys) (*wallet.Wallet, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "walletfile: read wallet file")
	}

	var disk onDiskWalletFile
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&disk); err != nil {
		return nil, errors.Wrap(err, "walletfile: decode wallet file")
	}
	if disk.Version > CurrentVersion {
		return nil, ErrFutureVersion
	}

	state := disk.State
	if disk.Version < VersionUnconfirmed {
		state.Unconfirmed = nil
	}
	if disk.Version < VersionPayments {
		state.Payments = nil
	}
	if disk.Version < VersionTransferLog {
		state.TransferLog = nil
	}

	w := wallet.Restore(keys, state)
	if err := w.CheckGenesis(); err != nil {
		return nil, err
	}
	return w, nil
}
