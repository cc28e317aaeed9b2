// Custody Vault for Go is a deterministic lamport custody program and the
// in-process ledger it runs on. Each owner gets one vault at an address
// derived from the owner's key; the owner can deposit into it while it is
// empty and later withdraw the whole balance.
//
// # Packages
//
//   - pkg/pubkey: 32-byte addresses and program-derived address search
//   - pkg/keypair: ed25519 signing keys
//   - pkg/transaction: instructions, messages and the signed wire format
//   - pkg/runtime: the program interface, account views and rent
//   - pkg/system: the built-in system program
//   - pkg/ledger: account store, fee charging, execution and snapshots
//   - pkg/vault: the custody program (address deriver, dispatcher, deposit, withdraw)
//   - pkg/rpc: JSON-RPC 2.0 server and client
//   - pkg/shared: configuration, logging, key parsing and SOL units
//
// # Installation
//
//	go get github.com/hashgraph-online/custody-vault-go@latest
package custody_vault_go
