package scan

import (
	"fmt"
	"time"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/daemonclient"
	"github.com/cryptonote-community/lightwallet/notify"
)

// produce is stage 1: it decodes every block/tx blob a query_blocks round
// returned and flattens them into an ordered slice of TxItems (miner tx
// first, then each ordinary tx, per block, in response order), alongside
// the ordered list of block ids the round covers. A transaction whose
// extra carries no transaction public key cannot be checked for ownership
// and is skipped, matching a real wallet's handling of a malformed or
// foreign-protocol transaction.
//
// A non-zero cutoff skips ownership-checking every transaction in a block
// whose timestamp is strictly before it: callers pass the account's
// creation time minus a one-day safety margin, so a block this far in the
// past cannot contain anything the account could own. The block's id is
// still recorded so the wallet's mirror stays complete.
func produce(resp *daemonclient.QueryBlocksResponse, publisher *notify.Publisher, cutoff time.Time) ([]*TxItem, []cryptonote.Hash, error) {
	var items []*TxItem
	var blockIDs []cryptonote.Hash
	var emission uint64

	for blockIdx, bi := range resp.Items {
		blk, err := chain.ParseBlock(bi.Block)
		if err != nil {
			return nil, nil, err
		}
		blockTime := time.Unix(int64(blk.Timestamp), 0)
		height := resp.StartHeight + uint64(blockIdx)
		blockIDs = append(blockIDs, blk.ID)

		if !cutoff.IsZero() && blockTime.Before(cutoff) {
			continue
		}

		if item := newTxItem(&blk.MinerTx, blk, blockTime, height, emission); item != nil {
			items = append(items, item)
			emission++
		} else {
			skip(publisher, &blk.MinerTx, "missing transaction public key")
		}

		for _, blob := range bi.Txs {
			tx, err := chain.ParseTx(blob)
			if err != nil {
				return nil, nil, err
			}
			if item := newTxItem(tx, blk, blockTime, height, emission); item != nil {
				items = append(items, item)
				emission++
			} else {
				skip(publisher, tx, "missing transaction public key")
			}
		}
	}
	return items, blockIDs, nil
}

func skip(publisher *notify.Publisher, tx *chain.Transaction, reason string) {
	if publisher == nil {
		return
	}
	publisher.OnSkipTransaction(notify.SkipTransactionEvent{
		TxHash: fmt.Sprintf("%x", tx.Hash()),
		Reason: reason,
	})
}

func newTxItem(tx *chain.Transaction, blk *chain.Block, blockTime time.Time, height, emission uint64) *TxItem {
	extra := chain.ParseExtra(tx.ExtraRaw)
	if !extra.HasTxPubKey {
		return nil
	}
	return &TxItem{
		Tx:            *tx,
		Time:          blockTime,
		Height:        height,
		BlockID:       blk.ID,
		TxPubKey:      extra.TxPubKey,
		Extra:         extra,
		EmissionIndex: emission,
	}
}
