package daemonclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/cryptonote-community/lightwallet/xlog"
)

var logger = xlog.NewModuleLogger(xlog.ModuleDaemon)

// ErrBusy is returned when the daemon answers with status "BUSY"; callers
// at the refresh level treat it as transient and retry.
var ErrBusy = errors.New("daemonclient: daemon busy")

// Client is a thin HTTP client binding the four daemon endpoints: query
// blocks, fetch global output indexes, fetch random outputs for mixing,
// and submit a raw transaction. Binary endpoints are carried as JSON over
// HTTP in this implementation (see chain.SerializeTx's doc comment for why
// the exact wire codec is not load-bearing here); only the endpoint paths
// and request/response shapes are part of the contract.
type Client struct {
	addr       string
	httpClient *http.Client
}

// New returns a client talking to the daemon at addr (e.g.
// "http://127.0.0.1:18081").
func New(addr string) *Client {
	return &Client{addr: addr, httpClient: &http.Client{}}
}

func (c *Client) post(ctx context.Context, path string, req, resp interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "daemonclient: marshal request")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "daemonclient: build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "daemonclient: transient connection failure")
	}
	defer httpResp.Body.Close()

	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return errors.Wrap(err, "daemonclient: decode response")
	}
	return nil
}

// statusError turns a non-OK status string into an error, BUSY mapped to
// the retryable ErrBusy sentinel and anything else surfaced verbatim.
func statusError(status string) error {
	switch status {
	case StatusOK:
		return nil
	case StatusBusy:
		return ErrBusy
	default:
		return errors.Errorf("daemonclient: %s", status)
	}
}

// QueryBlocks fetches the next slice of the chain anchored on the given
// short chain history.
func (c *Client) QueryBlocks(ctx context.Context, req QueryBlocksRequest) (*QueryBlocksResponse, error) {
	var resp QueryBlocksResponse
	if err := c.post(ctx, "/queryblocks.bin", req, &resp); err != nil {
		return nil, err
	}
	if err := statusError(resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTxGlobalOutputIndexes fetches the chain-assigned global output index
// for every output of a transaction.
func (c *Client) GetTxGlobalOutputIndexes(ctx context.Context, txid [32]byte) (*GetOIndexesResponse, error) {
	var resp GetOIndexesResponse
	if err := c.post(ctx, "/get_o_indexes.bin", GetOIndexesRequest{TxID: txid}, &resp); err != nil {
		return nil, err
	}
	if err := statusError(resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRandomOutputsForAmounts fetches ring-decoy candidates for a set of
// amounts.
func (c *Client) GetRandomOutputsForAmounts(ctx context.Context, amounts []uint64, outsCount int) (*GetRandomOutsResponse, error) {
	var resp GetRandomOutsResponse
	req := GetRandomOutsRequest{Amounts: amounts, OutsCount: outsCount}
	if err := c.post(ctx, "/getrandom_outs.bin", req, &resp); err != nil {
		return nil, err
	}
	if err := statusError(resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendRawTransaction submits a signed transaction to the network.
func (c *Client) SendRawTransaction(ctx context.Context, req SendRawTransactionRequest) error {
	var resp SendRawTransactionResponse
	if err := c.post(ctx, "/sendrawtransaction", req, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status); err != nil {
		logger.Warn("sendrawtransaction rejected", "status", resp.Status)
		return err
	}
	return nil
}
