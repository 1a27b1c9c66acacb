package wallet

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/xlog"
)

var logger = xlog.NewModuleLogger(xlog.ModuleWallet)

// ErrGenesisMismatch is a fatal network-mismatch error: the loaded
// blockchain mirror's first entry does not match the active currency's
// genesis block id.
var ErrGenesisMismatch = errors.New("wallet: genesis block id mismatch")

// ErrDuplicateKeyImage is a fatal internal-consistency error: two distinct
// owned outputs derived the same key image.
var ErrDuplicateKeyImage = errors.New("wallet: duplicate key image")

// ErrMissingKeyImageEntry is a fatal internal-consistency error: an owned
// output being erased has no corresponding key-image index entry.
var ErrMissingKeyImageEntry = errors.New("wallet: missing key image index entry")

// TransferDetails is an owned output (transfer_details in the original
// design): essential attributes plus its derived key image.
type TransferDetails struct {
	BlockHeight         uint64
	Tx                  chain.Transaction
	InternalOutputIndex int
	GlobalOutputIndex   uint64
	Spent               bool
	KeyImage            cryptonote.KeyImage
}

// Amount reads the amount of the output this record refers to.
func (t *TransferDetails) Amount() uint64 {
	return t.Tx.Vout[t.InternalOutputIndex].Amount
}

// PaymentDetails is one occurrence of a payment-id appearing in a received
// transaction.
type PaymentDetails struct {
	TxHash      cryptonote.Hash
	Amount      uint64
	BlockHeight uint64
	UnlockTime  uint64
}

// UnconfirmedTransferDetails is an in-flight send this wallet built and
// submitted but has not yet observed confirmed on chain.
type UnconfirmedTransferDetails struct {
	Tx           chain.Transaction
	ChangeAmount uint64
	SentTime     time.Time
}

// TransferEntry is a user-visible history entry.
type TransferEntry struct {
	Time        time.Time
	Outgoing    bool
	TxHash      cryptonote.Hash
	Amount      uint64
	Fee         uint64
	PaymentID   [chain.PaymentIDSize]byte
	HasPaymentID bool
	HasAddress  bool
	Address     Address
	BlockHeight uint64
	UnlockTime  uint64
}

// Wallet owns all persistent wallet state: the account keys, blockchain
// mirror, owned outputs, key-image index, payments, unconfirmed sends and
// transfer log. Outside of Refresh, a single-threaded host is assumed; the
// mutex below only protects against the concurrency Refresh itself
// introduces.
type Wallet struct {
	mu sync.RWMutex

	keys        AccountKeys
	genesisHash cryptonote.Hash

	blockchain []cryptonote.Hash // B[0..H)

	transfers     []TransferDetails
	keyImageIndex map[cryptonote.KeyImage]int

	payments map[[chain.PaymentIDSize]byte][]PaymentDetails

	unconfirmed map[cryptonote.Hash]UnconfirmedTransferDetails

	transferLog []TransferEntry

	// detachGeneration increments on every detach; a selection taken
	// before the counter advances must not be committed.
	detachGeneration uint64
}

// New creates a fresh wallet seeded with only the genesis block, the state
// required immediately after key generation.
func New(keys AccountKeys, genesisHash cryptonote.Hash) *Wallet {
	return &Wallet{
		keys:          keys,
		genesisHash:   genesisHash,
		blockchain:    []cryptonote.Hash{genesisHash},
		keyImageIndex: make(map[cryptonote.KeyImage]int),
		payments:      make(map[[chain.PaymentIDSize]byte][]PaymentDetails),
		unconfirmed:   make(map[cryptonote.Hash]UnconfirmedTransferDetails),
	}
}

// Keys returns the account keys. Scanner workers are given this value (not
// a pointer into wallet-owned memory) so they hold a read-only snapshot
// that is safe to share across goroutines.
func (w *Wallet) Keys() AccountKeys {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.keys
}

// Address returns the account's public address.
func (w *Wallet) Address() Address {
	return w.Keys().PublicAddress()
}

// Height returns the current local height H = len(blockchain mirror).
func (w *Wallet) Height() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return uint64(len(w.blockchain))
}

// BlockIDAt returns B[i].
func (w *Wallet) BlockIDAt(i uint64) cryptonote.Hash {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.blockchain[i]
}

// CheckGenesis verifies the invariant B[0] == genesis_hash. Called after
// load; a mismatch is a fatal network-mismatch error.
func (w *Wallet) CheckGenesis() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.blockchain) == 0 {
		return nil
	}
	if w.blockchain[0] != w.genesisHash {
		return ErrGenesisMismatch
	}
	return nil
}

// Balance is the sum of unspent owned outputs plus unconfirmed change.
func (w *Wallet) Balance() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.balanceLocked()
}

func (w *Wallet) balanceLocked() uint64 {
	var total uint64
	for i := range w.transfers {
		if !w.transfers[i].Spent {
			total += w.transfers[i].Amount()
		}
	}
	for _, u := range w.unconfirmed {
		total += u.ChangeAmount
	}
	return total
}

// UnlockedBalance is the sum of unspent owned outputs that pass the
// IsTransferUnlocked checks, never more than Balance().
func (w *Wallet) UnlockedBalance() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var total uint64
	h := uint64(len(w.blockchain))
	for i := range w.transfers {
		t := &w.transfers[i]
		if !t.Spent && w.isUnlockedLocked(t, h) {
			total += t.Amount()
		}
	}
	return total
}

// spendableAgeBuffer is the default number of confirmations an owned
// output must clear before it is considered spendable.
const spendableAgeBuffer = 10

func (w *Wallet) isUnlockedLocked(t *TransferDetails, height uint64) bool {
	if !IsSpendtimeUnlocked(t.Tx.UnlockTime, height) {
		return false
	}
	return t.BlockHeight+spendableAgeBuffer <= height
}

// IsTransferUnlocked reports whether transfers[i] passes both the
// unlock_time check and the spendable-age buffer at the current height.
func (w *Wallet) IsTransferUnlocked(i int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isUnlockedLocked(&w.transfers[i], uint64(len(w.blockchain)))
}

// TransferAt exposes an owned output by index; the transaction builder
// selects outputs by these stable indices (see §9's index-reference
// rework of the original iterator-based selection).
func (w *Wallet) TransferAt(i int) TransferDetails {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.transfers[i]
}

// NumTransfers returns the number of owned outputs ever recorded
// (including spent ones).
func (w *Wallet) NumTransfers() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.transfers)
}

// DetachGeneration is incremented by DetachBlockchain; the transaction
// builder refuses to commit a selection if the generation has moved since
// the selection was taken.
func (w *Wallet) DetachGeneration() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.detachGeneration
}

// MarkSpent sets transfers[i].Spent to spent, used both by CommitTx (on a
// send the daemon accepted) and, tentatively (set, then cleared again), by
// the transaction builder's split-retry loop.
func (w *Wallet) MarkSpent(i int, spent bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transfers[i].Spent = spent
}

// GetPayments returns every payment record for a payment id with
// block_height strictly greater than minHeight (an exclusive lower bound).
func (w *Wallet) GetPayments(id [chain.PaymentIDSize]byte, minHeight uint64) []PaymentDetails {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []PaymentDetails
	for _, p := range w.payments[id] {
		if p.BlockHeight > minHeight {
			out = append(out, p)
		}
	}
	return out
}

// GetBulkPayments returns payments for any of the given ids (or every id
// on record if ids is empty) with block_height > minHeight.
func (w *Wallet) GetBulkPayments(ids [][chain.PaymentIDSize]byte, minHeight uint64) []PaymentDetails {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []PaymentDetails
	if len(ids) == 0 {
		for _, list := range w.payments {
			for _, p := range list {
				if p.BlockHeight > minHeight {
					out = append(out, p)
				}
			}
		}
		return out
	}
	for _, id := range ids {
		for _, p := range w.payments[id] {
			if p.BlockHeight > minHeight {
				out = append(out, p)
			}
		}
	}
	return out
}

// GetTransfers returns transfer-log entries matching the requested
// direction(s) and, if toHeight > 0, within [fromHeight, toHeight].
func (w *Wallet) GetTransfers(incoming, outgoing bool, fromHeight, toHeight uint64) []TransferEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []TransferEntry
	for _, e := range w.transferLog {
		if e.Outgoing && !outgoing {
			continue
		}
		if !e.Outgoing && !incoming {
			continue
		}
		if toHeight > 0 && (e.BlockHeight < fromHeight || e.BlockHeight > toHeight) {
			continue
		}
		out = append(out, e)
	}
	return out
}
