package scan

import (
	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
)

// shortChainHistory builds get_short_chain_history's block-id list: the
// most recent blocks one by one, then thinning out with a doubling gap the
// further back it walks, so the daemon can find the common ancestor in
// O(log H) ids even after a deep reorg. It always ends on block 0.
func shortChainHistory(w *wallet.Wallet) []cryptonote.Hash {
	h := w.Height()
	if h == 0 {
		return nil
	}
	var ids []cryptonote.Hash
	i := h - 1
	step := uint64(1)
	count := 0
	for {
		ids = append(ids, w.BlockIDAt(i))
		if i == 0 {
			break
		}
		count++
		if count >= 10 {
			step *= 2
		}
		if i < step {
			i = 0
		} else {
			i -= step
		}
	}
	return ids
}
