package daemonclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHandler(t *testing.T, path string, status int, body interface{}) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func TestQueryBlocksOK(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/queryblocks.bin", http.StatusOK, QueryBlocksResponse{
		Status:      StatusOK,
		StartHeight: 10,
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.QueryBlocks(context.Background(), QueryBlocksRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), resp.StartHeight)
}

func TestQueryBlocksBusy(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/queryblocks.bin", http.StatusOK, QueryBlocksResponse{Status: StatusBusy}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.QueryBlocks(context.Background(), QueryBlocksRequest{})
	assert.ErrorIs(t, err, ErrBusy)
}

func TestSendRawTransactionRejected(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/sendrawtransaction", http.StatusOK, SendRawTransactionResponse{Status: "Not relayed"}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SendRawTransaction(context.Background(), SendRawTransactionRequest{TxAsHex: "deadbeef"})
	assert.Error(t, err)
}

func TestGetRandomOutputsForAmountsOK(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/getrandom_outs.bin", http.StatusOK, GetRandomOutsResponse{
		Status: StatusOK,
		Outs: []RandomOutsForAmount{
			{Amount: 100, Outs: []RandomOutEntry{{GlobalAmountIndex: 1}}},
		},
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.GetRandomOutputsForAmounts(context.Background(), []uint64{100}, 5)
	require.NoError(t, err)
	require.Len(t, resp.Outs, 1)
	assert.Equal(t, uint64(100), resp.Outs[0].Amount)
}
