package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cryptonote-community/lightwallet/wallet"
)

func TestSplitAmountsSingleSplitIsIdentity(t *testing.T) {
	dsts := []Destination{{Amount: 100}}
	got := splitAmounts(dsts, 1)
	assert.Equal(t, [][]Destination{dsts}, got)
}

func TestSplitAmountsDistributesRemainderToLastFragment(t *testing.T) {
	addr := wallet.Address{}
	dsts := []Destination{{Amount: 10, Address: addr}}
	got := splitAmounts(dsts, 3)
	assert.Len(t, got, 3)

	var total uint64
	for i, frag := range got {
		assert.Len(t, frag, 1)
		total += frag[0].Amount
		if i < 2 {
			assert.Equal(t, uint64(3), frag[0].Amount)
		} else {
			assert.Equal(t, uint64(4), frag[0].Amount, "remainder folds into the last fragment")
		}
	}
	assert.Equal(t, uint64(10), total)
}

func TestSplitAmountsPreservesDestinationCountPerFragment(t *testing.T) {
	dsts := []Destination{{Amount: 9}, {Amount: 21}}
	got := splitAmounts(dsts, 3)
	for _, frag := range got {
		assert.Len(t, frag, 2)
	}
}
