package txbuilder

import (
	"context"
	"crypto/rand"
	"math/big"
	"sort"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
	"github.com/cryptonote-community/lightwallet/xlog"
)

var logger = xlog.NewModuleLogger(xlog.ModuleTxBuilder)

// blockGrantedFullRewardZone and minerTxBlobReservedSize are the
// currency-level constants wallet2.h's transactionSizeLimit derives from:
// blockGrantedFullRewardZone() * 1.25 - minerTxBlobReservedSize().
const (
	blockGrantedFullRewardZone = 20000
	minerTxBlobReservedSize    = 600
)

// maxTxBlobSize bounds how large one assembled transaction may serialize
// to; create_transactions' split-retry loop exists entirely to work
// around this limit when a send would otherwise exceed it.
const maxTxBlobSize = blockGrantedFullRewardZone*125/100 - minerTxBlobReservedSize

// Builder assembles outgoing transactions against one wallet.
type Builder struct {
	w      *wallet.Wallet
	daemon Daemon
}

// NewBuilder returns a Builder bound to w and daemon.
func NewBuilder(w *wallet.Wallet, daemon Daemon) *Builder {
	return &Builder{w: w, daemon: daemon}
}

// transfer is the single-transaction assembly step transfer()/create_tx
// plays: select inputs, fetch ring decoys, split outputs by dust policy,
// and assemble (but not sign or submit) one transaction. Real ring
// signatures are out of scope (see chain.Transaction.Signatures' doc
// comment); Vin.Signatures is left as one placeholder blob per input.
//
// select_transfers only ever draws from outputs with Spent == false, so it
// is CreateTransactions' job to mark a fragment's selected outputs spent as
// soon as this call returns, before building the next fragment in the same
// split attempt; transfer itself never marks anything.
func (b *Builder) transfer(ctx context.Context, dsts []Destination, fakeOutputsCount int, unlockTime uint64, fee uint64, paymentID *[chain.PaymentIDSize]byte, policy DustPolicy, cache *decoyCache) (*PendingTx, error) {
	if len(dsts) == 0 {
		return nil, ErrZeroDestination
	}
	neededMoney := fee
	for _, d := range dsts {
		if d.Amount == 0 {
			return nil, ErrZeroDestination
		}
		prev := neededMoney
		neededMoney += d.Amount
		if neededMoney < prev {
			return nil, ErrTxSumOverflow
		}
	}

	generation := b.w.DetachGeneration()
	selected, found, err := selectTransfers(b.w, neededMoney, fakeOutputsCount == 0, policy.Threshold)
	if err != nil {
		return nil, err
	}
	if found < neededMoney {
		return nil, ErrNotEnoughMoney
	}

	return b.assemble(ctx, selected, found, neededMoney, dsts, fakeOutputsCount, unlockTime, fee, paymentID, policy, cache, generation)
}

func (b *Builder) assemble(ctx context.Context, selected []int, found, neededMoney uint64, dsts []Destination, fakeOutputsCount int, unlockTime uint64, fee uint64, paymentID *[chain.PaymentIDSize]byte, policy DustPolicy, cache *decoyCache, generation uint64) (*PendingTx, error) {
	sources, err := b.buildSources(ctx, selected, fakeOutputsCount, cache)
	if err != nil {
		return nil, err
	}

	change := found - neededMoney
	splitDsts, dust := splitDestinations(dsts, change, b.w.Address(), policy)
	if dust > policy.Threshold {
		return nil, errInvalidDust
	}

	txSecret, txPub, err := generateTxKeypair()
	if err != nil {
		return nil, err
	}

	vouts, err := buildOutputs(splitDsts, txSecret)
	if err != nil {
		return nil, err
	}

	extra := chain.BuildExtra(txPub, paymentID)
	tx := chain.Transaction{
		Version:    1,
		UnlockTime: unlockTime,
		Vin:        sources,
		Vout:       vouts,
		ExtraRaw:   extra,
		Signatures: make([][]byte, len(sources)),
	}

	if chain.TxBlobSize(&tx) > maxTxBlobSize {
		return nil, ErrTxTooBig
	}

	return &PendingTx{
		Tx:                tx,
		Fee:               fee + dust,
		Dust:              dust,
		ChangeAmount:      change,
		SelectedTransfers: selected,
		TxSecretKey:       txSecret,
		DetachGeneration:  generation,
	}, nil
}

// buildSources assembles one tx_source_entry-equivalent ring per selected
// owned output: up to fakeOutputsCount decoy candidates fetched from the
// daemon (cached within one create_transactions split attempt), plus the
// real output inserted at its sorted position.
func (b *Builder) buildSources(ctx context.Context, selected []int, fakeOutputsCount int, cache *decoyCache) ([]chain.TxInToKey, error) {
	if fakeOutputsCount > 0 {
		if err := b.fetchDecoys(ctx, selected, fakeOutputsCount, cache); err != nil {
			return nil, err
		}
	}

	sources := make([]chain.TxInToKey, len(selected))
	for i, idx := range selected {
		td := b.w.TransferAt(idx)
		ring := []uint64{td.GlobalOutputIndex}

		if fakeOutputsCount > 0 {
			outs, _ := cache.get(td.Amount())
			for _, oe := range outs {
				if oe.GlobalAmountIndex == td.GlobalOutputIndex {
					continue
				}
				ring = append(ring, oe.GlobalAmountIndex)
				if len(ring)-1 >= fakeOutputsCount {
					break
				}
			}
			if len(ring)-1 < fakeOutputsCount {
				return nil, ErrNotEnoughOutsToMix
			}
		}

		sort.Slice(ring, func(a, c int) bool { return ring[a] < ring[c] })
		sources[i] = chain.TxInToKey{
			Amount:     td.Amount(),
			KeyOffsets: ring,
			KeyImage:   td.KeyImage,
		}
	}
	return sources, nil
}

func (b *Builder) fetchDecoys(ctx context.Context, selected []int, fakeOutputsCount int, cache *decoyCache) error {
	var toFetch []uint64
	seen := map[uint64]bool{}
	for _, idx := range selected {
		amt := b.w.TransferAt(idx).Amount()
		if seen[amt] {
			continue
		}
		seen[amt] = true
		if _, ok := cache.get(amt); !ok {
			toFetch = append(toFetch, amt)
		}
	}
	if len(toFetch) == 0 {
		return nil
	}

	resp, err := b.daemon.GetRandomOutputsForAmounts(ctx, toFetch, fakeOutputsCount+1)
	if err != nil {
		return err
	}
	if len(resp.Outs) != len(toFetch) {
		return ErrNotEnoughOutsToMix
	}
	for _, forAmount := range resp.Outs {
		if len(forAmount.Outs) < fakeOutputsCount {
			return ErrNotEnoughOutsToMix
		}
		cache.put(forAmount.Amount, forAmount.Outs)
	}
	return nil
}

func buildOutputs(dsts []Destination, txSecret cryptonote.SecretKey) ([]chain.TxOutToKey, error) {
	order, err := shuffledIndices(len(dsts))
	if err != nil {
		return nil, err
	}
	vouts := make([]chain.TxOutToKey, len(dsts))
	for outIdx, srcIdx := range order {
		d := dsts[srcIdx]
		derivation := cryptonote.GenerateKeyDerivation(d.Address.ViewPublic, txSecret)
		key := cryptonote.DerivePublicKey(derivation, uint64(outIdx), d.Address.SpendPublic)
		vouts[outIdx] = chain.TxOutToKey{Amount: d.Amount, Key: key}
	}
	return vouts, nil
}

// shuffledIndices returns a uniformly random permutation of [0,n), so a
// transaction's output order does not leak which entry is the payment and
// which is change.
func shuffledIndices(n int) ([]int, error) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, err
		}
		idx[i], idx[j.Int64()] = idx[j.Int64()], idx[i]
	}
	return idx, nil
}

func generateTxKeypair() (cryptonote.SecretKey, cryptonote.PublicKey, error) {
	var sec cryptonote.SecretKey
	if _, err := rand.Read(sec[:]); err != nil {
		return sec, cryptonote.PublicKey{}, err
	}
	return sec, cryptonote.SecretToPublic(sec), nil
}
