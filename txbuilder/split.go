package txbuilder

import (
	"context"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/wallet"
	"github.com/cryptonote-community/lightwallet/xmetrics"
)

// maxSplitAttempts bounds create_transactions' failsafe split-attempt
// counter: if a transaction still doesn't fit after fragmenting the send
// into this many transactions, something is badly wrong (e.g. a single
// destination dust-floods the tx with outputs) and it gives up.
const maxSplitAttempts = 30

// splitAmounts is split_amounts: it fragments every destination's amount
// into numSplits roughly-equal pieces (remainder folded into the last
// piece) and returns numSplits destination lists, each the same shape as
// dsts but with every amount divided down.
func splitAmounts(dsts []Destination, numSplits int) [][]Destination {
	if numSplits <= 1 {
		return [][]Destination{dsts}
	}

	out := make([][]Destination, numSplits)
	for i := 0; i < numSplits; i++ {
		frag := make([]Destination, len(dsts))
		for j, d := range dsts {
			amount := d.Amount / uint64(numSplits)
			if i+1 == numSplits {
				amount += d.Amount % uint64(numSplits)
			}
			frag[j] = Destination{Amount: amount, Address: d.Address}
		}
		out[i] = frag
	}
	return out
}

// CreateTransactions is create_transactions: it tries to build the send
// as a single transaction, and if that transaction is too big, retries
// with the send fragmented into 2, 3, ... transactions (each carrying a
// proportional share of every destination) up to maxSplitAttempts times.
//
// Every attempt rebuilds from scratch against the wallet's current unspent
// set. Within one attempt, a fragment's selected outputs are marked spent
// the moment transfer() returns them, so the next fragment's select_transfers
// cannot draw from the same outputs; once the attempt is done — whether it
// succeeded, came back too big, or failed outright — every mark made during
// it is reverted. A successful attempt leaves the wallet's unspent set
// untouched on purpose: the real, persistent marking happens in CommitTx,
// once the daemon has actually accepted the transaction.
func (b *Builder) CreateTransactions(ctx context.Context, dsts []Destination, fakeOutputsCount int, unlockTime uint64, fee uint64, paymentID *[chain.PaymentIDSize]byte, policy DustPolicy) ([]*PendingTx, error) {
	for attempt := 1; ; attempt++ {
		fragments := splitAmounts(dsts, attempt)
		cache := newDecoyCache()

		ptxs := make([]*PendingTx, 0, len(fragments))
		tooBig := false
		var buildErr error

		for _, frag := range fragments {
			ptx, err := b.transfer(ctx, frag, fakeOutputsCount, unlockTime, fee, paymentID, policy, cache)
			if err == ErrTxTooBig {
				tooBig = true
				break
			}
			if err != nil {
				buildErr = err
				break
			}
			ptxs = append(ptxs, ptx)
			for _, idx := range ptx.SelectedTransfers {
				b.w.MarkSpent(idx, true)
			}
		}

		unmarkSelected(b.w, ptxs)

		if buildErr != nil {
			return nil, buildErr
		}
		if !tooBig {
			return ptxs, nil
		}

		logger.Warn("transaction too big, retrying with more fragments", "attempt", attempt)
		if attempt >= maxSplitAttempts {
			return nil, ErrTxTooBig
		}
		xmetrics.TxTooBigRetries.Inc(1)
	}
}

// unmarkSelected reverts the spent=true marking CreateTransactions makes on
// every output a fragment selected, for every fragment built so far in an
// attempt that is now over — win or lose.
func unmarkSelected(w *wallet.Wallet, ptxs []*PendingTx) {
	for _, ptx := range ptxs {
		for _, idx := range ptx.SelectedTransfers {
			w.MarkSpent(idx, false)
		}
	}
}
