// Package system implements the ledger's built-in system program: account
// creation, owner assignment, space allocation and the signer-sourced
// lamport transfer every wallet uses.
//
// Builders return transaction.Instruction values:
//
//	ix := system.Transfer(owner.Pubkey(), recipient, 1_000_000)
package system
