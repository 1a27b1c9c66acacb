package scan

import (
	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
	"github.com/cryptonote-community/lightwallet/wallet"
)

// lookupAccOuts is lookup_acc_outs: given the account's view secret (and
// spend public key) and a transaction's ephemeral public key, it
// recomputes the one-time output key for every vout and reports which
// ones this account owns, plus their total amount. It never needs the
// spend secret, which is exactly what lets a view-only wallet scan.
func lookupAccOuts(keys wallet.AccountKeys, tx *chain.Transaction, txPubKey cryptonote.PublicKey) (owned []int, total uint64) {
	derivation := cryptonote.GenerateKeyDerivation(txPubKey, keys.ViewSecret)
	for i, out := range tx.Vout {
		expected := cryptonote.DerivePublicKey(derivation, uint64(i), keys.SpendPublic)
		if expected == out.Key {
			owned = append(owned, i)
			total += out.Amount
		}
	}
	return owned, total
}
