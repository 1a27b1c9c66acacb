package wallet

import (
	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
)

// AddOwnedOutput appends a newly-discovered owned output and indexes its
// key image, returning the new output's stable index. A duplicate key
// image is a fatal internal error.
func (w *Wallet) AddOwnedOutput(t TransferDetails) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, dup := w.keyImageIndex[t.KeyImage]; dup {
		return 0, ErrDuplicateKeyImage
	}
	idx := len(w.transfers)
	w.transfers = append(w.transfers, t)
	w.keyImageIndex[t.KeyImage] = idx
	return idx, nil
}

// MarkSpentByKeyImage flips the owned output matching img to spent=true
// and returns its amount, reporting found=false if no owned output has
// that key image (i.e. the input spends an output this wallet doesn't
// own).
func (w *Wallet) MarkSpentByKeyImage(img cryptonote.KeyImage) (amount uint64, found bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	idx, ok := w.keyImageIndex[img]
	if !ok {
		return 0, false
	}
	w.transfers[idx].Spent = true
	return w.transfers[idx].Amount(), true
}

// RemoveUnconfirmed deletes the unconfirmed send keyed by txHash, if any.
func (w *Wallet) RemoveUnconfirmed(txHash cryptonote.Hash) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.unconfirmed, txHash)
}

// SetUnconfirmed records a just-committed send as unconfirmed.
func (w *Wallet) SetUnconfirmed(txHash cryptonote.Hash, u UnconfirmedTransferDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unconfirmed[txHash] = u
}

// AddPayment records a payment-id occurrence.
func (w *Wallet) AddPayment(id [chain.PaymentIDSize]byte, p PaymentDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.payments[id] = append(w.payments[id], p)
}

// UpdateOutgoingBlockHeight finds a previously-recorded outgoing
// transfer-log entry by tx hash and sets its block height, reporting
// whether one was found.
func (w *Wallet) UpdateOutgoingBlockHeight(txHash cryptonote.Hash, height uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.transferLog {
		if w.transferLog[i].Outgoing && w.transferLog[i].TxHash == txHash {
			w.transferLog[i].BlockHeight = height
			return true
		}
	}
	return false
}

// AppendTransferLogEntry appends a new transfer-log entry (either an
// incoming receipt synthesized by the applier, or an outgoing send
// recorded at commit time).
func (w *Wallet) AppendTransferLogEntry(e TransferEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transferLog = append(w.transferLog, e)
}
