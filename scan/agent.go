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

package scan

import (
	"sync/atomic"

	"github.com/cryptonote-community/lightwallet/queue"
	"github.com/cryptonote-community/lightwallet/wallet"
	"github.com/cryptonote-community/lightwallet/xmetrics"
)

// scannerAgent is one of the N stage-2 workers: it pulls TxItems off a
// shared incoming queue, runs lookupAccOuts against them, and pushes the
// (possibly unmodified) item onto the shared checked queue.
type scannerAgent struct {
	keys wallet.AccountKeys

	incoming *queue.Bounded[*TxItem]
	checked  *queue.Bounded[*TxItem]
	closer   *queue.CountedCloser

	running int32
	done    chan struct{}
}

func newScannerAgent(keys wallet.AccountKeys, incoming, checked *queue.Bounded[*TxItem], closer *queue.CountedCloser) *scannerAgent {
	return &scannerAgent{
		keys:     keys,
		incoming: incoming,
		checked:  checked,
		closer:   closer,
		done:     make(chan struct{}),
	}
}

// Start launches the agent's update loop; it runs until incoming drains
// and closes.
func (a *scannerAgent) Start() {
	if !atomic.CompareAndSwapInt32(&a.running, 0, 1) {
		return
	}
	go a.update()
}

func (a *scannerAgent) update() {
	defer close(a.done)
	for {
		item, ok := a.incoming.Pop()
		if !ok {
			if a.closer.Done() {
				a.checked.Close()
			}
			return
		}
		a.check(item)
		a.checked.Push(item)
	}
}

func (a *scannerAgent) check(item *TxItem) {
	owned, total := lookupAccOuts(a.keys, &item.Tx, item.TxPubKey)
	item.OwnedOutputs = owned
	item.ReceivedAmount = total
	xmetrics.TxsScanned.Inc(1)
}

// Wait blocks until the agent's update loop has returned.
func (a *scannerAgent) Wait() { <-a.done }
