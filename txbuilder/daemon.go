package txbuilder

import (
	"context"

	"github.com/cryptonote-community/lightwallet/daemonclient"
)

// Daemon is the subset of daemonclient.Client the transaction builder
// calls: fetching ring decoys and submitting the finished transaction.
type Daemon interface {
	GetRandomOutputsForAmounts(ctx context.Context, amounts []uint64, outsCount int) (*daemonclient.GetRandomOutsResponse, error)
	SendRawTransaction(ctx context.Context, req daemonclient.SendRawTransactionRequest) error
}
