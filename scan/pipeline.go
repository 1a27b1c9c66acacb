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
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/chain"
	"github.com/cryptonote-community/lightwallet/daemonclient"
	"github.com/cryptonote-community/lightwallet/notify"
	"github.com/cryptonote-community/lightwallet/queue"
	"github.com/cryptonote-community/lightwallet/wallet"
	"github.com/cryptonote-community/lightwallet/xlog"
	"github.com/cryptonote-community/lightwallet/xmetrics"
)

var logger = xlog.NewModuleLogger(xlog.ModuleScan)

// Daemon is the subset of daemonclient.Client the scan pipeline calls.
// Declaring it as an interface here, rather than depending on the
// concrete client, is what lets a test stand up a pipeline against a
// scripted daemon.
type Daemon interface {
	QueryBlocks(ctx context.Context, req daemonclient.QueryBlocksRequest) (*daemonclient.QueryBlocksResponse, error)
	GetTxGlobalOutputIndexes(ctx context.Context, txid [32]byte) (*daemonclient.GetOIndexesResponse, error)
}

// maxReorgRetries bounds how many times one Refresh call re-drives the
// pipeline after a detach before giving up and surfacing the error to the
// caller.
const maxReorgRetries = 3

// Coordinator drives the scan pipeline against one wallet: fetch a round
// of blocks, fan the transactions they contain out to N scanner workers,
// and apply the results to wallet state in blockchain order.
type Coordinator struct {
	wallet       *wallet.Wallet
	daemon       Daemon
	workers      int
	publisher    *notify.Publisher // nil is valid; every call on it is a no-op
	creationTime time.Time
}

// NewCoordinator returns a Coordinator with the given scanner worker
// count. workers <= 0 is treated as 1.
func NewCoordinator(w *wallet.Wallet, daemon Daemon, workers int) *Coordinator {
	if workers <= 0 {
		workers = 1
	}
	return &Coordinator{wallet: w, daemon: daemon, workers: workers}
}

// SetPublisher attaches an event publisher; subsequent Refresh calls
// notify it of new blocks and the applier's spend/receive/skip events.
func (c *Coordinator) SetPublisher(p *notify.Publisher) {
	c.publisher = p
}

// SetAccountCreationTime records when the account was created. Refresh
// passes it to query_blocks as a hint, and produce is given a one-day-
// earlier cutoff so it can skip ownership-checking transactions in blocks
// that unambiguously predate the account without having to trust the
// daemon's clock exactly.
func (c *Coordinator) SetAccountCreationTime(t time.Time) {
	c.creationTime = t
}

// Refresh drives the pipeline forward, one query_blocks round at a time,
// until the daemon reports no more blocks past the wallet's local height.
// A round that detects a reorg rolls the mirror back and keeps going; more
// than maxReorgRetries detaches in one Refresh call is treated as a
// misbehaving daemon rather than retried forever.
func (c *Coordinator) Refresh(ctx context.Context) error {
	detaches := 0
	for {
		history := shortChainHistory(c.wallet)
		resp, err := c.daemon.QueryBlocks(ctx, daemonclient.QueryBlocksRequest{
			BlockIDs:  history,
			Timestamp: c.creationTime,
		})
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return nil
		}

		detached, err := c.updateBlockchain(resp)
		if err != nil {
			return err
		}
		if detached {
			detaches++
			if detaches > maxReorgRetries {
				return errors.New("scan: exceeded reorg retry budget")
			}
			logger.Warn("reorg detected, re-querying", "attempt", detaches)
		}

		round := trimKnownPrefix(resp, c.wallet.Height())
		if len(round.Items) == 0 {
			return nil
		}
		if err := c.processRound(ctx, round); err != nil {
			return err
		}
	}
}

// updateBlockchain implements update_blockchain. The daemon's shared-anchor
// convention means the round's first returned item always sits at a block
// the wallet already has, so start_height < H on every normal incremental
// round; that alone is not evidence of a reorg. This walks every item the
// response returns for a height the wallet already holds and compares its
// block id against the local mirror via wallet.CompareBlockAt, stopping at
// the first mismatch: that is the true divergence point, and the wallet
// detaches back to it. A mismatch at the very first returned item means the
// daemon's chain shares no common history with the wallet at all, which the
// shared-anchor convention says should never happen — a fatal protocol
// error rather than an ordinary reorg.
func (c *Coordinator) updateBlockchain(resp *daemonclient.QueryBlocksResponse) (detached bool, err error) {
	h := c.wallet.Height()
	if resp.StartHeight >= h {
		return false, nil
	}

	overlap := h - resp.StartHeight
	if overlap > uint64(len(resp.Items)) {
		overlap = uint64(len(resp.Items))
	}

	for i := uint64(0); i < overlap; i++ {
		blk, err := chain.ParseBlock(resp.Items[i].Block)
		if err != nil {
			return false, err
		}
		height := resp.StartHeight + i
		if c.wallet.CompareBlockAt(height, blk.ID) {
			continue
		}
		if i == 0 {
			return false, errors.New("scan: daemon's chain shares no common history with the wallet")
		}

		removed, err := c.wallet.DetachBlockchain(height)
		if err != nil {
			return false, err
		}
		xmetrics.ReorgDepth.Update(int64(removed))
		logger.Warn("detached blocks", "count", removed, "from_height", height)
		return true, nil
	}

	return false, nil
}

// trimKnownPrefix drops every leading item of resp whose height is already
// below h, so processRound only ever parses and applies blocks the wallet
// does not yet have. Without this, the shared-anchor block (or, after a
// detach, every block below the new height) would be re-applied on top of
// state that already reflects it.
func trimKnownPrefix(resp *daemonclient.QueryBlocksResponse, h uint64) *daemonclient.QueryBlocksResponse {
	if resp.StartHeight >= h {
		return resp
	}
	skip := h - resp.StartHeight
	if skip > uint64(len(resp.Items)) {
		skip = uint64(len(resp.Items))
	}
	return &daemonclient.QueryBlocksResponse{
		Status:      resp.Status,
		StartHeight: resp.StartHeight + skip,
		Items:       resp.Items[skip:],
	}
}

// processRound runs stages 1-3 for one query_blocks response: parse (stage
// 1), fan out to N scanner workers (stage 2), then apply every result, in
// original blockchain order, through the single applier (stage 3).
func (c *Coordinator) processRound(ctx context.Context, resp *daemonclient.QueryBlocksResponse) error {
	var cutoff time.Time
	if !c.creationTime.IsZero() {
		cutoff = c.creationTime.Add(-24 * time.Hour)
	}
	items, blockIDs, err := produce(resp, c.publisher, cutoff)
	if err != nil {
		return err
	}

	checked, err := c.scan(items)
	if err != nil {
		return err
	}

	ap := &applier{w: c.wallet, daemon: c.daemon, publisher: c.publisher}
	for _, item := range checked {
		if err := ap.apply(ctx, item); err != nil {
			return err
		}
	}
	for i, id := range blockIDs {
		c.wallet.AppendBlock(id)
		xmetrics.BlocksScanned.Inc(1)
		if c.publisher != nil {
			c.publisher.OnNewBlock(notify.NewBlockEvent{
				Height:    resp.StartHeight + uint64(i),
				BlockID:   fmt.Sprintf("%x", id),
				Timestamp: time.Now().Unix(),
			})
		}
	}
	return nil
}

// scan runs stage 2: it pushes every item through c.workers scanner
// agents and returns them back in EmissionIndex order. A single shared
// result channel read by N racing agents does not preserve submission
// order once more than one agent is in flight, so the results are
// restored to blockchain order here via a small priority buffer keyed on
// EmissionIndex before the applier ever sees them.
func (c *Coordinator) scan(items []*TxItem) ([]*TxItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	incoming := queue.NewBounded[*TxItem](2 * c.workers)
	checked := queue.NewBounded[*TxItem](2 * c.workers)
	closer := queue.NewCountedCloser(c.workers)

	agents := make([]*scannerAgent, c.workers)
	keys := c.wallet.Keys()
	for i := range agents {
		agents[i] = newScannerAgent(keys, incoming, checked, closer)
		agents[i].Start()
	}

	go func() {
		for _, item := range items {
			incoming.Push(item)
		}
		incoming.Close()
	}()

	buf := &itemHeap{}
	heap.Init(buf)
	for {
		item, ok := checked.Pop()
		if !ok {
			break
		}
		heap.Push(buf, item)
	}
	for _, a := range agents {
		a.Wait()
	}

	out := make([]*TxItem, 0, buf.Len())
	for buf.Len() > 0 {
		out = append(out, heap.Pop(buf).(*TxItem))
	}
	return out, nil
}

// itemHeap orders TxItems by EmissionIndex; it is the priority buffer
// scan() drains into to restore blockchain order after an N-way fan-out.
type itemHeap []*TxItem

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].EmissionIndex < h[j].EmissionIndex }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(*TxItem)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
