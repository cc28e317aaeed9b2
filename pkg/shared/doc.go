// Package shared holds the pieces every custody binary needs: TOML
// configuration with CUSTODY_* environment overrides and .env discovery,
// the zerolog process logger, owner key parsing and lamport/SOL
// conversion.
//
// # Environment Variables
//
// CUSTODY_CONFIG points at a TOML file. Individual settings can be
// overridden with CUSTODY_FEE_PER_SIGNATURE, CUSTODY_LOG_LEVEL,
// CUSTODY_RPC_LISTEN, CUSTODY_VAULT_PROGRAM_ID and the other Env*
// constants. CUSTODY_OWNER_KEY carries the owner's private key.
package shared
