package txbuilder

import (
	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
)

// PendingTx is pending_tx: a fully assembled, not-yet-submitted
// transaction plus everything commit needs afterward — which owned
// outputs it spent, how much change and fee it carries, the ephemeral
// secret used to derive its outputs (kept only so a caller could recover
// the change output's spend key without rescanning), and the wallet's
// detach generation at the moment the inputs were selected, so a commit
// can refuse a selection the wallet has since invalidated.
type PendingTx struct {
	Tx                chain.Transaction
	Fee               uint64
	Dust              uint64
	ChangeAmount      uint64
	SelectedTransfers []int
	TxSecretKey       cryptonote.SecretKey
	DetachGeneration  uint64
}
