package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonote-community/lightwallet/cryptonote"
)

func TestBuildAndParseExtraNoPaymentID(t *testing.T) {
	var pub cryptonote.PublicKey
	for i := range pub {
		pub[i] = byte(i)
	}

	raw := BuildExtra(pub, nil)
	extra := ParseExtra(raw)

	require.True(t, extra.HasTxPubKey)
	assert.Equal(t, pub, extra.TxPubKey)
	assert.False(t, extra.HasPaymentID)
}

func TestBuildAndParseExtraWithPaymentID(t *testing.T) {
	var pub cryptonote.PublicKey
	pub[0] = 0xaa

	var paymentID [PaymentIDSize]byte
	for i := range paymentID {
		paymentID[i] = byte(i + 1)
	}

	raw := BuildExtra(pub, &paymentID)
	extra := ParseExtra(raw)

	require.True(t, extra.HasTxPubKey)
	assert.Equal(t, pub, extra.TxPubKey)
	require.True(t, extra.HasPaymentID)
	assert.Equal(t, paymentID, extra.PaymentID)
}

func TestParseExtraMalformedStopsCleanly(t *testing.T) {
	raw := []byte{ExtraTagPubKey, 0x01, 0x02}
	extra := ParseExtra(raw)
	assert.False(t, extra.HasTxPubKey)
}
