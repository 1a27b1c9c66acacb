package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cryptonote-community/lightwallet/daemonclient"
)

func TestDecoyCacheGetPut(t *testing.T) {
	c := newDecoyCache()

	_, ok := c.get(100)
	assert.False(t, ok)

	outs := []daemonclient.RandomOutEntry{{GlobalAmountIndex: 1}, {GlobalAmountIndex: 2}}
	c.put(100, outs)

	got, ok := c.get(100)
	assert.True(t, ok)
	assert.Equal(t, outs, got)
}
