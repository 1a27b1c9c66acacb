package chain

import "github.com/cryptonote-community/lightwallet/cryptonote"

// ParseExtra walks a tx_extra blob and extracts the two fields the wallet
// core cares about: the ephemeral transaction public key, and a plain
// payment-id carried in a nonce sub-field. Parsing stops at the first
// unknown tag; fields after it are not read.
func ParseExtra(raw []byte) Extra {
	var e Extra
	i := 0
	for i < len(raw) {
		tag := raw[i]
		i++
		switch tag {
		case ExtraTagPubKey:
			if i+32 > len(raw) {
				return e
			}
			copy(e.TxPubKey[:], raw[i:i+32])
			e.HasTxPubKey = true
			i += 32
		case ExtraTagNonce:
			if i >= len(raw) {
				return e
			}
			n := int(raw[i])
			i++
			if i+n > len(raw) {
				return e
			}
			nonce := raw[i : i+n]
			i += n
			if n == 1+PaymentIDSize && nonce[0] == NonceTagPaymentID {
				copy(e.PaymentID[:], nonce[1:])
				e.HasPaymentID = true
			}
		default:
			// unknown tag: no length-prefix convention to skip safely, stop.
			return e
		}
	}
	return e
}

// BuildExtra renders a tx_extra blob carrying the ephemeral transaction
// public key and, optionally, a payment-id nonce. Used by transaction
// construction when assembling a new transaction's extra field.
func BuildExtra(txPubKey cryptonote.PublicKey, paymentID *[PaymentIDSize]byte) []byte {
	out := make([]byte, 0, 1+32+2+1+PaymentIDSize)
	out = append(out, ExtraTagPubKey)
	out = append(out, txPubKey[:]...)
	if paymentID != nil {
		out = append(out, ExtraTagNonce)
		out = append(out, byte(1+PaymentIDSize))
		out = append(out, NonceTagPaymentID)
		out = append(out, paymentID[:]...)
	}
	return out
}
