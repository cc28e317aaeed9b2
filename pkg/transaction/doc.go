// Package transaction builds, signs and encodes ledger transactions.
//
// An Instruction names a program, the accounts it touches and opaque data.
// NewMessage compiles one or more instructions into a Message with a
// deduplicated, privilege-ordered account list, and a Transaction carries the
// ed25519 signatures of every required signer over the serialized message.
//
// # Wire Format
//
// Lengths are short-vec encoded (seven bits per byte). A transaction is the
// signature array followed by the message: a three byte header, the account
// keys, the recent blockhash and the compiled instructions.
//
//	tx, err := transaction.NewSignedWithPayer(
//		[]transaction.Instruction{ix},
//		owner.Pubkey(),
//		[]transaction.Signer{owner},
//		blockhash,
//	)
package transaction
