// Package pubkey defines 32-byte ledger identities and program-derived
// addresses.
//
// Identities render as base58. A program-derived address is the SHA-256 of a
// list of seeds, the owning program's identity and a fixed marker, searched
// over a one-byte bump until the result is not a valid ed25519 point. Such an
// address has no private key, so only the owning program can authorize
// changes to it.
//
//	vault, bump, err := pubkey.FindProgramAddress(
//		[][]byte{[]byte("vault"), owner[:]},
//		programID,
//	)
package pubkey
