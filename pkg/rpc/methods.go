package rpc

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/hashgraph-online/custody-vault-go/pkg/ledger"
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
	"github.com/hashgraph-online/custody-vault-go/pkg/vault"
)

func paramCount(params []json.RawMessage, want int) *Error {
	if len(params) < want {
		return invalidParams("expected %d params, got %d", want, len(params))
	}
	return nil
}

func paramPubkey(params []json.RawMessage, index int) (pubkey.Pubkey, *Error) {
	var raw string
	if err := json.Unmarshal(params[index], &raw); err != nil {
		return pubkey.Pubkey{}, invalidParams("param %d must be a base58 string", index)
	}
	key, err := pubkey.ParsePubkey(raw)
	if err != nil {
		return pubkey.Pubkey{}, invalidParams("param %d: %v", index, err)
	}
	return key, nil
}

func paramUint64(params []json.RawMessage, index int) (uint64, *Error) {
	var value uint64
	if err := json.Unmarshal(params[index], &value); err != nil {
		return 0, invalidParams("param %d must be an unsigned integer", index)
	}
	return value, nil
}

func (s *Server) slotContext() Context {
	return Context{Slot: s.ledger.Slot()}
}

func (s *Server) getBalance(_ context.Context, params []json.RawMessage) (any, *Error) {
	if rpcErr := paramCount(params, 1); rpcErr != nil {
		return nil, rpcErr
	}
	key, rpcErr := paramPubkey(params, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return BalanceResult{Context: s.slotContext(), Value: s.ledger.Balance(key)}, nil
}

func (s *Server) getAccountInfo(_ context.Context, params []json.RawMessage) (any, *Error) {
	if rpcErr := paramCount(params, 1); rpcErr != nil {
		return nil, rpcErr
	}
	key, rpcErr := paramPubkey(params, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}

	result := AccountInfoResult{Context: s.slotContext()}
	account, exists := s.ledger.GetAccount(key)
	if exists {
		result.Value = &AccountInfo{
			Lamports:   account.Lamports,
			Owner:      account.Owner,
			Data:       account.Data,
			Executable: account.Executable,
		}
	}
	return result, nil
}

func (s *Server) getLatestBlockhash(_ context.Context, _ []json.RawMessage) (any, *Error) {
	return BlockhashResult{
		Context: s.slotContext(),
		Value:   BlockhashValue{Blockhash: s.ledger.LatestBlockhash().String()},
	}, nil
}

func (s *Server) requestAirdrop(_ context.Context, params []json.RawMessage) (any, *Error) {
	if rpcErr := paramCount(params, 2); rpcErr != nil {
		return nil, rpcErr
	}
	key, rpcErr := paramPubkey(params, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	lamports, rpcErr := paramUint64(params, 1)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if s.airdropLimit > 0 && lamports > s.airdropLimit {
		return nil, invalidParams("airdrop of %d lamports exceeds limit of %d", lamports, s.airdropLimit)
	}
	if err := s.ledger.Airdrop(key, lamports); err != nil {
		return nil, invalidParams("%v", err)
	}
	return BalanceResult{Context: s.slotContext(), Value: s.ledger.Balance(key)}, nil
}

func (s *Server) sendTransaction(ctx context.Context, params []json.RawMessage) (any, *Error) {
	if rpcErr := paramCount(params, 1); rpcErr != nil {
		return nil, rpcErr
	}
	var encoded string
	if err := json.Unmarshal(params[0], &encoded); err != nil {
		return nil, invalidParams("transaction must be a base64 string")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, invalidParams("transaction is not valid base64: %v", err)
	}
	tx, err := transaction.Deserialize(raw)
	if err != nil {
		return nil, invalidParams("failed to decode transaction: %v", err)
	}

	result, err := s.ledger.SendTransaction(ctx, tx)
	if err == nil {
		return result.Signature.String(), nil
	}
	return nil, transactionError(result, err)
}

func transactionError(result ledger.Result, err error) *Error {
	data := &ErrorData{Signature: result.Signature.String()}
	if result.Err == nil {
		return &Error{Code: CodeTransactionInvalid, Message: err.Error(), Data: data}
	}

	data.Logs = result.Logs
	var txErr *ledger.TransactionError
	if errors.As(err, &txErr) {
		index := txErr.InstructionIndex
		data.InstructionIndex = &index
	}
	if code, ok := runtime.CustomCode(err); ok {
		data.CustomCode = &code
	}
	return &Error{Code: CodeTransactionFailed, Message: err.Error(), Data: data}
}

func (s *Server) getMinimumBalanceForRentExemption(_ context.Context, params []json.RawMessage) (any, *Error) {
	if rpcErr := paramCount(params, 1); rpcErr != nil {
		return nil, rpcErr
	}
	dataLen, rpcErr := paramUint64(params, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if dataLen > maxRequestBytes*10 {
		return nil, invalidParams("data length %d is too large", dataLen)
	}
	return s.ledger.MinimumBalanceForRentExemption(int(dataLen)), nil
}

func (s *Server) findVaultAddress(_ context.Context, params []json.RawMessage) (any, *Error) {
	if rpcErr := paramCount(params, 1); rpcErr != nil {
		return nil, rpcErr
	}
	owner, rpcErr := paramPubkey(params, 0)
	if rpcErr != nil {
		return nil, rpcErr
	}
	address, bump, err := vault.DeriveVaultAddress(owner, s.vaultProgramID)
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	return VaultAddress{Address: address, Bump: bump, ProgramID: s.vaultProgramID}, nil
}

func (s *Server) getStateRoot(_ context.Context, _ []json.RawMessage) (any, *Error) {
	return StateRootResult{
		Context:  s.slotContext(),
		Root:     hex.EncodeToString(s.ledger.StateRoot()),
		Accounts: s.ledger.AccountCount(),
	}, nil
}
