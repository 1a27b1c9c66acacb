// Package txbuilder assembles, splits and submits outgoing transactions:
// select_transfers, the digit_split_strategy dust policy, transfer/
// create_transactions' automatic split-retry loop, and a prepare/commit
// two-phase lifecycle.
package txbuilder

import (
	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
)

// DustPolicy mirrors tx_dust_policy: amounts at or below Threshold are
// either folded into the fee (AddToFee) or paid out to a dedicated
// dust-collection address.
type DustPolicy struct {
	Threshold uint64
	AddToFee  bool
	DustAddr  wallet.Address
}

// DefaultDustThreshold is the smallest canonical digit denomination
// (10^0), matching the original currency's default dust threshold.
const DefaultDustThreshold = 1

// Destination is one payment a caller asked the transaction builder to
// make: an amount and a recipient address.
type Destination struct {
	Amount  uint64
	Address wallet.Address
}

// ErrZeroDestination is thrown by transfer() when a destination (or the
// whole request) asks to send a zero amount.
var ErrZeroDestination = errors.New("txbuilder: zero-amount destination")

// ErrTxSumOverflow guards the needed_money accumulation against a
// malicious/corrupt destination list overflowing uint64.
var ErrTxSumOverflow = errors.New("txbuilder: destination amounts overflow")

// ErrNotEnoughMoney is select_transfers' failure mode: the account's
// unspent unlocked outputs don't cover the requested amount plus fee.
var ErrNotEnoughMoney = errors.New("txbuilder: not enough unlocked outputs")

// ErrNotEnoughOutsToMix is thrown when the daemon cannot supply enough
// decoy candidates for one or more ring amounts.
var ErrNotEnoughOutsToMix = errors.New("txbuilder: not enough outputs to mix")

// ErrTxTooBig is thrown when an assembled transaction exceeds the wallet's
// per-transaction size budget; create_transactions catches this and
// retries with a higher split count.
var ErrTxTooBig = errors.New("txbuilder: transaction exceeds size limit")

// errInvalidDust is an internal-consistency check: splitDestinations must
// never produce a dust remainder larger than the policy's own threshold.
var errInvalidDust = errors.New("txbuilder: invalid dust value")

// ErrSelectionStale is CommitTx's refusal when the wallet has detached
// blocks since the pending transaction's inputs were selected: a detach
// compacts and reindexes owned outputs, so the selection's indices no
// longer point at what they did when transfer() built it.
var ErrSelectionStale = errors.New("txbuilder: selected outputs are stale, rebuild the transaction")

// splitDestinations implements digit_split_strategy: every requested
// destination amount, and the change amount, is decomposed into canonical
// digit-denomination outputs via cryptonote.DecomposeAmount, which is what
// keeps an observer from inferring a transaction's total value from its
// output amounts. The change's smallest digit chunk, when it is at or
// below the dust threshold, is returned separately rather than paid out,
// so the caller can fold it into the fee.
func splitDestinations(dsts []Destination, changeAmount uint64, changeAddr wallet.Address, policy DustPolicy) (split []Destination, dust uint64) {
	for _, d := range dsts {
		split = append(split, decompose(d.Amount, d.Address)...)
	}

	changeChunks := decompose(changeAmount, changeAddr)
	if len(changeChunks) > 0 {
		last := changeChunks[len(changeChunks)-1]
		if last.Amount <= policy.Threshold {
			dust = last.Amount
			changeChunks = changeChunks[:len(changeChunks)-1]
		}
	}
	split = append(split, changeChunks...)

	if dust != 0 && !policy.AddToFee {
		split = append(split, Destination{Amount: dust, Address: policy.DustAddr})
		dust = 0
	}
	return split, dust
}

func decompose(amount uint64, addr wallet.Address) []Destination {
	var out []Destination
	for _, chunk := range cryptonote.DecomposeAmount(amount) {
		out = append(out, Destination{Amount: chunk, Address: addr})
	}
	return out
}
