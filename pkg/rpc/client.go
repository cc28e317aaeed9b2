package rpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
)

// Config configures a Client. HTTPClient defaults to a 30 second timeout.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Headers    map[string]string
}

// Client calls a custody ledger's JSON-RPC endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("rpc base URL is required")
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rpc base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid rpc base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid rpc base URL: host is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    strings.TrimRight(parsedBaseURL.String(), "/") + "/",
		httpClient: httpClient,
		headers:    headers,
	}, nil
}

// BaseURL returns the normalized endpoint URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetBalance returns the lamports held at key.
func (c *Client) GetBalance(ctx context.Context, key pubkey.Pubkey) (uint64, error) {
	var result BalanceResult
	if err := c.call(ctx, MethodGetBalance, []any{key.String()}, &result); err != nil {
		return 0, err
	}
	return result.Value, nil
}

// GetAccountInfo returns nil without error when the account does not exist.
func (c *Client) GetAccountInfo(ctx context.Context, key pubkey.Pubkey) (*AccountInfo, error) {
	var result AccountInfoResult
	if err := c.call(ctx, MethodGetAccountInfo, []any{key.String()}, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// GetLatestBlockhash returns the blockhash to sign new transactions against.
func (c *Client) GetLatestBlockhash(ctx context.Context) (transaction.Hash, error) {
	var result BlockhashResult
	if err := c.call(ctx, MethodGetLatestBlockhash, nil, &result); err != nil {
		return transaction.Hash{}, err
	}
	hash, err := transaction.ParseHash(result.Value.Blockhash)
	if err != nil {
		return transaction.Hash{}, fmt.Errorf("invalid blockhash in response: %w", err)
	}
	return hash, nil
}

// RequestAirdrop credits lamports to key and returns the new balance.
func (c *Client) RequestAirdrop(ctx context.Context, key pubkey.Pubkey, lamports uint64) (uint64, error) {
	var result BalanceResult
	if err := c.call(ctx, MethodRequestAirdrop, []any{key.String(), lamports}, &result); err != nil {
		return 0, err
	}
	return result.Value, nil
}

// SendTransaction submits a signed transaction. A transaction rejected by
// the custody program returns an *Error that unwraps to the vault error.
func (c *Client) SendTransaction(ctx context.Context, tx *transaction.Transaction) (string, error) {
	if tx == nil {
		return "", fmt.Errorf("transaction is required")
	}
	encoded := base64.StdEncoding.EncodeToString(tx.Serialize())
	var signature string
	if err := c.call(ctx, MethodSendTransaction, []any{encoded}, &signature); err != nil {
		return "", err
	}
	return signature, nil
}

// GetMinimumBalanceForRentExemption returns the rent-exempt minimum for
// an account holding dataLen bytes.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, dataLen int) (uint64, error) {
	if dataLen < 0 {
		return 0, fmt.Errorf("data length must not be negative")
	}
	var lamports uint64
	if err := c.call(ctx, MethodGetMinimumBalanceForRentExemption, []any{dataLen}, &lamports); err != nil {
		return 0, err
	}
	return lamports, nil
}

// FindVaultAddress derives owner's vault under the server's program id and
// reports that id, so instructions can target the program the server runs.
func (c *Client) FindVaultAddress(ctx context.Context, owner pubkey.Pubkey) (VaultAddress, error) {
	var result VaultAddress
	if err := c.call(ctx, MethodFindVaultAddress, []any{owner.String()}, &result); err != nil {
		return VaultAddress{}, err
	}
	return result, nil
}

// GetStateRoot returns the merkle root over every stored account.
func (c *Client) GetStateRoot(ctx context.Context) (StateRootResult, error) {
	var result StateRootResult
	if err := c.call(ctx, MethodGetStateRoot, nil, &result); err != nil {
		return StateRootResult{}, err
	}
	return result, nil
}

func (c *Client) call(ctx context.Context, method string, params []any, target any) error {
	if params == nil {
		params = []any{}
	}
	encodedParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	id, err := json.Marshal(uuid.NewString())
	if err != nil {
		return err
	}
	payload, err := json.Marshal(request{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Method:  method,
		Params:  encodedParams,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read rpc response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rpc request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if !bytes.Equal(decoded.ID, id) {
		return fmt.Errorf("rpc response id %s does not match request", string(decoded.ID))
	}
	if decoded.Error != nil {
		return decoded.Error
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Result, target); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}
