package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/velmarq/walletd/internal/common"
	"github.com/velmarq/walletd/internal/logging"
)

// RPCClient is a JSON-RPC 2.0 client for a Solana-compatible node. It is
// stateless per call and safe for concurrent use.
type RPCClient struct {
	url    string
	http   *http.Client
	logger logging.Logger
	nextID atomic.Uint64
}

func NewRPCClient(url string, timeout time.Duration, logger logging.Logger) *RPCClient {
	return &RPCClient{
		url:    url,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With("module", "ledger_rpc"),
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *RPCClient) call(ctx context.Context, method string, params []any, result any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("%w: encoding %s request: %v", common.ErrLedger, method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrLedger, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrLedger, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %v", common.ErrLedger, method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: unexpected status %d", common.ErrLedger, method, resp.StatusCode)
	}

	rpcResp := &rpcResponse{}
	if err := json.Unmarshal(raw, rpcResp); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", common.ErrLedger, method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%w: %s: %s (code %d)", common.ErrLedger, method, rpcResp.Error.Message, rpcResp.Error.Code)
	}

	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("%w: decoding %s result: %v", common.ErrLedger, method, err)
	}
	return nil
}

func (c *RPCClient) LatestBlockhash(ctx context.Context) (string, error) {
	var result struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}

	if err := c.call(ctx, "getLatestBlockhash", nil, &result); err != nil {
		return "", err
	}
	if result.Value.Blockhash == "" {
		return "", fmt.Errorf("%w: node returned empty blockhash", common.ErrLedger)
	}
	return result.Value.Blockhash, nil
}

func (c *RPCClient) Balance(ctx context.Context, address string) (uint64, error) {
	var result struct {
		Value uint64 `json:"value"`
	}

	if err := c.call(ctx, "getBalance", []any{address}, &result); err != nil {
		return 0, err
	}
	return result.Value, nil
}

func (c *RPCClient) SubmitTransaction(ctx context.Context, signedTxn []byte) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(signedTxn)

	var signature string
	err := c.call(ctx, "sendTransaction", []any{encoded, map[string]string{"encoding": "base64"}}, &signature)
	if err != nil {
		return "", err
	}

	c.logger.Info(ctx, "transaction submitted", "signature", signature)
	return signature, nil
}
