package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/vault"
)

const jsonRPCVersion = "2.0"

const (
	MethodGetBalance                        = "getBalance"
	MethodGetAccountInfo                    = "getAccountInfo"
	MethodGetLatestBlockhash                = "getLatestBlockhash"
	MethodRequestAirdrop                    = "requestAirdrop"
	MethodSendTransaction                   = "sendTransaction"
	MethodGetMinimumBalanceForRentExemption = "getMinimumBalanceForRentExemption"
	MethodFindVaultAddress                  = "findVaultAddress"
	MethodGetStateRoot                      = "getStateRoot"
)

// JSON-RPC 2.0 error codes plus the ledger's transaction codes.
const (
	CodeParseError         = -32700
	CodeInvalidRequest     = -32600
	CodeMethodNotFound     = -32601
	CodeInvalidParams      = -32602
	CodeInternalError      = -32603
	CodeTransactionFailed  = -32002
	CodeTransactionInvalid = -32003
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// ErrorData carries execution details for a failed transaction.
type ErrorData struct {
	Signature        string   `json:"signature,omitempty"`
	InstructionIndex *int     `json:"instructionIndex,omitempty"`
	CustomCode       *uint32  `json:"customCode,omitempty"`
	Logs             []string `json:"logs,omitempty"`
}

// Error is a JSON-RPC error object. A transaction rejected by the custody
// program unwraps to the matching vault error.
type Error struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    *ErrorData `json:"data,omitempty"`
}

// Error formats the code and message.
func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Unwrap returns the vault error matching Data.CustomCode, if any.
func (e *Error) Unwrap() error {
	if e.Data == nil || e.Data.CustomCode == nil {
		return nil
	}
	programErr, ok := vault.ErrorFromCode(*e.Data.CustomCode)
	if !ok {
		return nil
	}
	return programErr
}

// Context is the slot a result was read at.
type Context struct {
	Slot uint64 `json:"slot"`
}

// BalanceResult answers getBalance and requestAirdrop.
type BalanceResult struct {
	Context Context `json:"context"`
	Value   uint64  `json:"value"`
}

// AccountInfo is the wire form of a stored account. Data is base64 in JSON.
type AccountInfo struct {
	Lamports   uint64        `json:"lamports"`
	Owner      pubkey.Pubkey `json:"owner"`
	Data       []byte        `json:"data"`
	Executable bool          `json:"executable"`
}

// AccountInfoResult answers getAccountInfo. Value is nil for absent accounts.
type AccountInfoResult struct {
	Context Context      `json:"context"`
	Value   *AccountInfo `json:"value"`
}

// BlockhashValue holds a base58 blockhash.
type BlockhashValue struct {
	Blockhash string `json:"blockhash"`
}

// BlockhashResult answers getLatestBlockhash.
type BlockhashResult struct {
	Context Context        `json:"context"`
	Value   BlockhashValue `json:"value"`
}

// VaultAddress answers findVaultAddress.
type VaultAddress struct {
	Address   pubkey.Pubkey `json:"address"`
	Bump      uint8         `json:"bump"`
	ProgramID pubkey.Pubkey `json:"programId"`
}

// StateRootResult answers getStateRoot. Root is hex.
type StateRootResult struct {
	Context  Context `json:"context"`
	Root     string  `json:"root"`
	Accounts int     `json:"accounts"`
}
