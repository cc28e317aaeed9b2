// Package ledger is an in-process account ledger that executes signed
// transactions against registered programs.
//
// Each transaction pays a per-signature fee up front, then runs its
// instructions against working copies of the accounts it names. After every
// instruction the ledger checks ownership rules: only an account's owner
// may debit it or change its data and owner, read-only accounts must not
// change, and lamports are conserved. Any failure discards every change
// except the fee. Accounts left with zero lamports are removed.
//
//	l := ledger.New(ledger.WithLogger(logger))
//	l.AddProgram(vault.ProgramID, vault.Program{})
//	result, err := l.SendTransaction(ctx, tx)
package ledger
