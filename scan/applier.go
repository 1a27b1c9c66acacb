package scan

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/notify"
	"github.com/cryptonote-community/lightwallet/wallet"
	"github.com/cryptonote-community/lightwallet/xmetrics"
)

// ErrOutputIndexCountMismatch is apply_tx's fatal consistency check: the
// daemon's global-output-index response must carry exactly one entry per
// transaction output, or none of the indexes it returned can be trusted.
var ErrOutputIndexCountMismatch = errors.New("scan: daemon returned a different number of output indexes than the transaction has outputs")

// applier is the single stage-3 consumer: it owns every wallet mutation so
// the rest of the pipeline can run with N>1 workers without the wallet's
// own lock ever serializing real work. One applier serves one Refresh
// round.
type applier struct {
	w         *wallet.Wallet
	daemon    Daemon
	publisher *notify.Publisher
}

// apply folds one scanned TxItem into wallet state: it records spends
// against owned outputs, records newly discovered owned outputs (after
// resolving their global output index with the daemon), and appends
// transfer-log/payment entries. Items must be applied in blockchain order;
// the pipeline coordinator guarantees that via the emission-index buffer
// in pipeline.go.
//
// A transaction falls into one of three shapes here: it spends more of the
// owned outputs than it pays back (a foreign spend, logged as an outgoing
// entry of spent minus received with fee zero), it receives at least as
// much as it spends and is not already a known send (an ordinary incoming
// payment), or it is one of the
// wallet's own previously-submitted sends reappearing on chain, in which
// case applySpends already promoted its block height and no new
// transfer-log entry is added.
func (ap *applier) apply(ctx context.Context, item *TxItem) error {
	spent, knownOutgoing := ap.applySpends(item)

	if len(item.OwnedOutputs) == 0 {
		if spent > 0 && !knownOutgoing {
			ap.recordForeignSpend(item, spent)
		}
		return nil
	}
	return ap.applyReceived(ctx, item, spent, knownOutgoing)
}

// applySpends marks every owned output item.Tx.Vin references as spent,
// reporting the total amount spent and whether the spend was already known
// as one of this wallet's own outgoing sends (a TransferEntry recorded at
// commit time) rather than a transaction observed here for the first time.
func (ap *applier) applySpends(item *TxItem) (spent uint64, knownOutgoing bool) {
	for _, in := range item.Tx.Vin {
		amount, found := ap.w.MarkSpentByKeyImage(in.KeyImage)
		if !found {
			continue
		}
		spent += amount
		xmetrics.OutputsSpent.Inc(1)
	}
	if spent == 0 {
		return 0, false
	}

	txHash := item.Tx.Hash()
	ap.w.RemoveUnconfirmed(txHash)
	knownOutgoing = ap.w.UpdateOutgoingBlockHeight(txHash, item.Height)
	if ap.publisher != nil {
		ap.publisher.OnMoneySpent(notify.MoneySpentEvent{
			TxHash:      fmt.Sprintf("%x", txHash),
			Amount:      spent,
			BlockHeight: item.Height,
		})
	}
	return spent, knownOutgoing
}

// recordForeignSpend logs a transaction that spent more of this account's
// owned outputs than it paid back to it; spent is that net outgoing
// amount. Its real fee cannot be attributed
// from what this wallet observes of a transaction it did not build, so the
// entry's fee is left at zero.
func (ap *applier) recordForeignSpend(item *TxItem, spent uint64) {
	ap.w.AppendTransferLogEntry(wallet.TransferEntry{
		Time:        item.Time,
		Outgoing:    true,
		TxHash:      item.Tx.Hash(),
		Amount:      spent,
		BlockHeight: item.Height,
	})
}

func (ap *applier) applyReceived(ctx context.Context, item *TxItem, spent uint64, knownOutgoing bool) error {
	txHash := item.Tx.Hash()
	oindexes, err := ap.daemon.GetTxGlobalOutputIndexes(ctx, txHash)
	if err != nil {
		return err
	}
	if len(oindexes.OIndexes) != len(item.Tx.Vout) {
		return ErrOutputIndexCountMismatch
	}

	keys := ap.w.Keys()
	derivation := cryptonote.GenerateKeyDerivation(item.TxPubKey, keys.ViewSecret)

	for _, i := range item.OwnedOutputs {
		oneTimeSecret := cryptonote.DeriveSecretKey(derivation, uint64(i), keys.SpendSecret)
		img := cryptonote.GenerateKeyImage(item.Tx.Vout[i].Key, oneTimeSecret)

		t := wallet.TransferDetails{
			BlockHeight:         item.Height,
			Tx:                  item.Tx,
			InternalOutputIndex: i,
			GlobalOutputIndex:   oindexes.OIndexes[i],
			KeyImage:            img,
		}
		if _, err := ap.w.AddOwnedOutput(t); err != nil {
			return err
		}
		xmetrics.OutputsFound.Inc(1)
	}

	// Already recorded as one of our own sends: only the block height
	// promotion applySpends already did is needed, not a second log entry.
	if knownOutgoing {
		return nil
	}

	if spent > item.ReceivedAmount {
		ap.recordForeignSpend(item, spent-item.ReceivedAmount)
		return nil
	}
	net := item.ReceivedAmount - spent

	entry := wallet.TransferEntry{
		Time:        item.Time,
		Outgoing:    false,
		TxHash:      txHash,
		Amount:      net,
		BlockHeight: item.Height,
		UnlockTime:  item.Tx.UnlockTime,
	}
	if item.Extra.HasPaymentID {
		entry.HasPaymentID = true
		entry.PaymentID = item.Extra.PaymentID
		ap.w.AddPayment(item.Extra.PaymentID, wallet.PaymentDetails{
			TxHash:      txHash,
			Amount:      net,
			BlockHeight: item.Height,
			UnlockTime:  item.Tx.UnlockTime,
		})
	}
	ap.w.AppendTransferLogEntry(entry)

	if ap.publisher != nil {
		ap.publisher.OnMoneyReceived(notify.MoneyReceivedEvent{
			TxHash:      fmt.Sprintf("%x", txHash),
			Amount:      net,
			BlockHeight: item.Height,
		})
	}

	return nil
}
