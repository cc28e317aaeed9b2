// Package rpc serves a custody ledger over JSON-RPC 2.0 and provides a
// typed client for it.
//
// The server answers POST / with getBalance, getAccountInfo,
// getLatestBlockhash, requestAirdrop, sendTransaction,
// getMinimumBalanceForRentExemption, findVaultAddress and getStateRoot, and
// exposes GET /health and GET /metrics. Transactions travel as base64 wire
// bytes. A transaction that fails inside a program is answered with code
// -32002; when the failing program reported a custom code the client-side
// *Error unwraps to the matching vault error:
//
//	_, err := client.SendTransaction(ctx, tx)
//	if errors.Is(err, vault.ErrVaultEmpty) {
//		// nothing to withdraw
//	}
package rpc
