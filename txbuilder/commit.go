package txbuilder

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/daemonclient"
	"github.com/cryptonote-community/lightwallet/wallet"
)

// CommitTx is commit_tx: submit the signed transaction to the daemon, and
// only once the daemon has accepted it, mark the spent inputs and record
// the send as unconfirmed. A rejected or unreachable daemon leaves the
// wallet's owned outputs untouched, so the caller is free to retry or
// rebuild the transaction from scratch.
//
// If the wallet has detached blocks since ptx's inputs were selected,
// SelectedTransfers no longer points at what it did at selection time
// (DetachBlockchain compacts and reindexes owned outputs), so CommitTx
// refuses with ErrSelectionStale rather than marking the wrong outputs
// spent; the caller must rebuild the transaction against current state.
func (b *Builder) CommitTx(ctx context.Context, ptx *PendingTx) error {
	if b.w.DetachGeneration() != ptx.DetachGeneration {
		return ErrSelectionStale
	}

	blob := hex.EncodeToString(chain.SerializeTx(&ptx.Tx))
	if err := b.daemon.SendRawTransaction(ctx, daemonclient.SendRawTransactionRequest{TxAsHex: blob}); err != nil {
		return err
	}

	for _, idx := range ptx.SelectedTransfers {
		b.w.MarkSpent(idx, true)
	}

	txHash := ptx.Tx.Hash()
	b.w.SetUnconfirmed(txHash, wallet.UnconfirmedTransferDetails{
		Tx:           ptx.Tx,
		ChangeAmount: ptx.ChangeAmount,
		SentTime:     time.Now(),
	})

	// The applier promotes this to a confirmed outgoing entry once the send
	// reappears on chain, see wallet.Wallet.UpdateOutgoingBlockHeight.
	b.w.AppendTransferLogEntry(wallet.TransferEntry{
		Time:        time.Now(),
		Outgoing:    true,
		TxHash:      txHash,
		Amount:      spentAmount(ptx) - ptx.ChangeAmount - ptx.Fee,
		Fee:         ptx.Fee,
		BlockHeight: 0,
	})

	logger.Info("submitted transaction", "tx_hash", txHash, "fee", ptx.Fee)
	return nil
}

// spentAmount sums the amount of every owned output the pending
// transaction consumes.
func spentAmount(ptx *PendingTx) uint64 {
	var total uint64
	for _, in := range ptx.Tx.Vin {
		total += in.Amount
	}
	return total
}
