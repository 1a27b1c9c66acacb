package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cryptonote-community/lightwallet/wallet"
)

func sumAmounts(dsts []Destination) uint64 {
	var total uint64
	for _, d := range dsts {
		total += d.Amount
	}
	return total
}

func TestSplitDestinationsDecomposesAmounts(t *testing.T) {
	addr := wallet.Address{}
	dsts := []Destination{{Amount: 1234, Address: addr}}
	policy := DustPolicy{Threshold: DefaultDustThreshold, AddToFee: true}

	split, dust := splitDestinations(dsts, 0, addr, policy)
	assert.Equal(t, uint64(1234), sumAmounts(split)+dust)
	for _, d := range split {
		assert.NotZero(t, d.Amount)
	}
}

func TestSplitDestinationsPullsChangeDustWithAddToFee(t *testing.T) {
	addr := wallet.Address{}
	policy := DustPolicy{Threshold: 5, AddToFee: true}

	// change = 1003 decomposes to [1000, 3]; 3 <= threshold(5) is dust.
	split, dust := splitDestinations(nil, 1003, addr, policy)
	assert.Equal(t, uint64(3), dust)
	assert.Equal(t, uint64(1000), sumAmounts(split))
}

func TestSplitDestinationsPaysOutDustWhenNotAddingToFee(t *testing.T) {
	addr := wallet.Address{}
	dustAddr := wallet.Address{SpendPublic: [32]byte{0xaa}}
	policy := DustPolicy{Threshold: 5, AddToFee: false, DustAddr: dustAddr}

	split, dust := splitDestinations(nil, 1003, addr, policy)
	assert.Equal(t, uint64(0), dust, "dust must be folded into a destination, not returned separately")
	assert.Equal(t, uint64(1003), sumAmounts(split))

	found := false
	for _, d := range split {
		if d.Address == dustAddr && d.Amount == 3 {
			found = true
		}
	}
	assert.True(t, found, "dust destination must be paid to the dust address")
}

func TestDecompose(t *testing.T) {
	addr := wallet.Address{}
	chunks := decompose(105, addr)
	assert.Equal(t, []Destination{{Amount: 100, Address: addr}, {Amount: 5, Address: addr}}, chunks)
}
