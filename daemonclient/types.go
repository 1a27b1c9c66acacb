// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package daemonclient declares the typed request/response shapes the
// wallet core exchanges with a remote full node ("daemon"), and a thin
// HTTP client to carry them. The wire transport itself (the HTTP/binary
// framing) is assumed infrastructure; this package is only the contract
// boundary.
package daemonclient

import (
	"encoding/hex"
	"time"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
)

// Status strings every response carries.
const (
	StatusOK   = "OK"
	StatusBusy = "BUSY"
)

// QueryBlocksRequest is POSTed to /queryblocks.bin.
type QueryBlocksRequest struct {
	BlockIDs  []cryptonote.Hash `json:"block_ids"`
	Timestamp time.Time         `json:"timestamp"`
}

// QueryBlocksItem is one entry of a QueryBlocksResponse.
type QueryBlocksItem struct {
	BlockID cryptonote.Hash `json:"block_id"`
	Block   []byte          `json:"block"` // block blob; empty if the daemon only advertises the id
	Txs     [][]byte        `json:"txs"`   // transaction blobs, parallel to the block's tx hash list
}

// QueryBlocksResponse is the response to a /queryblocks.bin request.
type QueryBlocksResponse struct {
	Status      string            `json:"status"`
	StartHeight uint64            `json:"start_height"`
	Items       []QueryBlocksItem `json:"items"`
}

// GetOIndexesRequest is POSTed to /get_o_indexes.bin.
type GetOIndexesRequest struct {
	TxID cryptonote.Hash `json:"txid"`
}

// GetOIndexesResponse carries each output's chain-assigned global index.
type GetOIndexesResponse struct {
	Status   string   `json:"status"`
	OIndexes []uint64 `json:"o_indexes"`
}

// GetRandomOutsRequest is POSTed to /getrandom_outs.bin.
type GetRandomOutsRequest struct {
	Amounts   []uint64 `json:"amounts"`
	OutsCount int      `json:"outs_count"`
}

// RandomOutEntry is one candidate ring member.
type RandomOutEntry struct {
	GlobalAmountIndex uint64               `json:"global_amount_index"`
	OutKey            cryptonote.PublicKey `json:"out_key"`
}

// RandomOutsForAmount groups decoy candidates by the amount they were
// requested for.
type RandomOutsForAmount struct {
	Amount uint64           `json:"amount"`
	Outs   []RandomOutEntry `json:"outs"`
}

// GetRandomOutsResponse is the response to a /getrandom_outs.bin request.
type GetRandomOutsResponse struct {
	Status string                `json:"status"`
	Outs   []RandomOutsForAmount `json:"outs"`
}

// SendRawTransactionRequest is POSTed as JSON to /sendrawtransaction.
type SendRawTransactionRequest struct {
	TxAsHex string `json:"tx_as_hex"`
}

// SendRawTransactionResponse is the response to /sendrawtransaction.
type SendRawTransactionResponse struct {
	Status string `json:"status"`
}

// txBlobHex renders a transaction as the hex string the daemon expects.
func txBlobHex(tx *chain.Transaction) string {
	return hex.EncodeToString(chain.SerializeTx(tx))
}
