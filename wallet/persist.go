package wallet

import "github.com/cryptonote-community/lightwallet/cryptonote"

// State is the full exported snapshot of a Wallet's persistent fields,
// the shape a wallet-file writer/reader round-trips. The key-image index
// is rebuilt from Transfers on Restore rather than carried separately, so
// it can never itself go stale on disk.
type State struct {
	GenesisHash cryptonote.Hash
	Blockchain  []cryptonote.Hash
	Transfers   []TransferDetails
	Payments    map[[32]byte][]PaymentDetails
	Unconfirmed map[cryptonote.Hash]UnconfirmedTransferDetails
	TransferLog []TransferEntry
}

// ExportState snapshots every persistent field for serialization.
func (w *Wallet) ExportState() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return State{
		GenesisHash: w.genesisHash,
		Blockchain:  append([]cryptonote.Hash(nil), w.blockchain...),
		Transfers:   append([]TransferDetails(nil), w.transfers...),
		Payments:    w.payments,
		Unconfirmed: w.unconfirmed,
		TransferLog: append([]TransferEntry(nil), w.transferLog...),
	}
}

// Restore rebuilds a Wallet from account keys plus a previously exported
// State, reindexing key images from the restored owned-output list.
func Restore(keys AccountKeys, state State) *Wallet {
	w := &Wallet{
		keys:        keys,
		genesisHash: state.GenesisHash,
		blockchain:  state.Blockchain,
		transfers:   state.Transfers,
		payments:    state.Payments,
		unconfirmed: state.Unconfirmed,
		transferLog: state.TransferLog,
	}
	if w.payments == nil {
		w.payments = make(map[[32]byte][]PaymentDetails)
	}
	if w.unconfirmed == nil {
		w.unconfirmed = make(map[cryptonote.Hash]UnconfirmedTransferDetails)
	}
	w.reindexKeyImagesLocked()
	return w
}
