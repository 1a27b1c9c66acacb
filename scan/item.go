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

// Package scan implements the producer / N-worker / single-applier scan
// pipeline: fetch blocks from the daemon, parse and cryptographically
// check each transaction for outputs owned by this account, and serially
// commit discoveries to wallet state.
package scan

import (
	"time"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/cryptonote"
)

// TxItem is one transaction (or the miner tx) queued between the scan
// pipeline's three stages.
type TxItem struct {
	Tx       chain.Transaction
	Time     time.Time
	Height   uint64
	BlockID  cryptonote.Hash
	TxPubKey cryptonote.PublicKey
	Extra    chain.Extra

	// EmissionIndex is the position stage 1 emitted this item at; the
	// applier uses it to restore blockchain order across N>1 scanner
	// workers.
	EmissionIndex uint64

	// Filled in by stage 2.
	OwnedOutputs   []int
	ReceivedAmount uint64
}
