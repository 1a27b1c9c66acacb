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

package txbuilder

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/cryptonote-community/lightwallet/daemonclient"
)

// decoyCacheSize bounds how many distinct amounts' decoy candidates one
// create_transactions split attempt keeps around; the fragments of one
// attempt request the same small set of denominations repeatedly, so a
// modest cache avoids refetching them from the daemon for every fragment.
const decoyCacheSize = 64

// decoyCache memoizes getrandom_outs.bin responses by amount within one
// create_transactions split attempt. A new cache is made for every
// attempt, so a retry after a tx_too_big error fetches fresh decoys.
type decoyCache struct {
	cache *lru.Cache
}

func newDecoyCache() *decoyCache {
	c, err := lru.New(decoyCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size, a constant above.
		panic(err)
	}
	return &decoyCache{cache: c}
}

func (d *decoyCache) get(amount uint64) ([]daemonclient.RandomOutEntry, bool) {
	v, ok := d.cache.Get(amount)
	if !ok {
		return nil, false
	}
	return v.([]daemonclient.RandomOutEntry), true
}

func (d *decoyCache) put(amount uint64, outs []daemonclient.RandomOutEntry) {
	d.cache.Add(amount, outs)
}
