package wallet

import "github.com/cryptonote-community/lightwallet/cryptonote"

// CompareBlockAt reports whether B[i] equals id; used by update_blockchain
// to detect a reorg.
func (w *Wallet) CompareBlockAt(i uint64, id cryptonote.Hash) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.blockchain[i] == id
}

// AppendBlock extends the mirror by one block id at height H. The scan
// package calls it from processRound, only for blocks past the known
// prefix that trimKnownPrefix drops.
func (w *Wallet) AppendBlock(id cryptonote.Hash) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blockchain = append(w.blockchain, id)
}

// DetachBlockchain truncates the mirror to [0, fromHeight), erasing every
// owned output, key-image index entry, payment and incoming transfer-log
// entry at or past fromHeight. It returns the number of blocks removed and
// bumps DetachGeneration so in-flight output selections taken before the
// detach are refused at commit time.
func (w *Wallet) DetachBlockchain(fromHeight uint64) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fromHeight >= uint64(len(w.blockchain)) {
		return 0, nil
	}
	removed := len(w.blockchain) - int(fromHeight)
	w.blockchain = w.blockchain[:fromHeight]
	w.detachGeneration++

	// Erase owned outputs at or past fromHeight, and their key-image
	// index entries; a missing entry is a fatal internal error.
	kept := w.transfers[:0]
	for i := range w.transfers {
		t := w.transfers[i]
		if t.BlockHeight >= fromHeight {
			if _, ok := w.keyImageIndex[t.KeyImage]; !ok {
				return 0, ErrMissingKeyImageEntry
			}
			delete(w.keyImageIndex, t.KeyImage)
			continue
		}
		kept = append(kept, t)
	}
	w.transfers = kept
	w.reindexKeyImagesLocked()

	// Erase payments at or past fromHeight.
	for id, list := range w.payments {
		var keptPayments []PaymentDetails
		for _, p := range list {
			if p.BlockHeight < fromHeight {
				keptPayments = append(keptPayments, p)
			}
		}
		if len(keptPayments) == 0 {
			delete(w.payments, id)
		} else {
			w.payments[id] = keptPayments
		}
	}

	// Erase incoming transfer-log entries at or past fromHeight; outgoing
	// entries are left for re-observation once their unconfirmed send
	// reappears on chain.
	var keptLog []TransferEntry
	for _, e := range w.transferLog {
		if !e.Outgoing && e.BlockHeight != 0 && e.BlockHeight >= fromHeight {
			continue
		}
		keptLog = append(keptLog, e)
	}
	w.transferLog = keptLog

	return removed, nil
}

// reindexKeyImagesLocked rebuilds the key-image index after the owned
// output slice has been compacted; callers must hold w.mu.
func (w *Wallet) reindexKeyImagesLocked() {
	w.keyImageIndex = make(map[cryptonote.KeyImage]int, len(w.transfers))
	for i := range w.transfers {
		w.keyImageIndex[w.transfers[i].KeyImage] = i
	}
}
