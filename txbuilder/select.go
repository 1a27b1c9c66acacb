package txbuilder

import (
	"crypto/rand"
	"math/big"

	"github.com/cryptonote-community/lightwallet/wallet"
)

// selectTransfers is select_transfers: it randomly picks unspent,
// unlocked owned outputs until their combined amount covers neededMoney,
// preferring to spend down "dust" (outputs at or below dustThreshold)
// first when addDust is set (the no-mixin case, where dust must be
// cleared out since it can't ring with real outputs of the same
// denomination). It returns the selected output indices and their total.
func selectTransfers(w *wallet.Wallet, neededMoney uint64, addDust bool, dustThreshold uint64) (selected []int, found uint64, err error) {
	var normal, dust []int
	n := w.NumTransfers()
	for i := 0; i < n; i++ {
		t := w.TransferAt(i)
		if t.Spent || !w.IsTransferUnlocked(i) {
			continue
		}
		if t.Amount() > dustThreshold {
			normal = append(normal, i)
		} else {
			dust = append(dust, i)
		}
	}

	selectOneDust := addDust && len(dust) > 0
	for found < neededMoney && (len(normal) > 0 || len(dust) > 0) {
		var idx int
		switch {
		case selectOneDust:
			idx, dust, err = popRandom(dust)
			selectOneDust = false
		case len(normal) > 0:
			idx, normal, err = popRandom(normal)
		default:
			idx, dust, err = popRandom(dust)
		}
		if err != nil {
			return nil, 0, err
		}
		selected = append(selected, idx)
		found += w.TransferAt(idx).Amount()
	}
	return selected, found, nil
}

// popRandom removes and returns one random element of indices, using the
// swap-with-last trick the original pop_random_value helper uses to avoid
// an O(n) shift.
func popRandom(indices []int) (picked int, rest []int, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(indices))))
	if err != nil {
		return 0, nil, err
	}
	i := int(n.Int64())
	picked = indices[i]
	indices[i] = indices[len(indices)-1]
	return picked, indices[:len(indices)-1], nil
}
