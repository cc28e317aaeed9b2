package runtime

import (
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
)

// Program is the entry point the ledger calls for every instruction
// addressed to a registered program id.
type Program interface {
	Process(ctx Context, accounts []*AccountInfo, data []byte) error
}

// ProgramFunc adapts a function to Program.
type ProgramFunc func(ctx Context, accounts []*AccountInfo, data []byte) error

func (f ProgramFunc) Process(ctx Context, accounts []*AccountInfo, data []byte) error {
	return f(ctx, accounts, data)
}

// AccountInfo is the mutable view of one account handed to a program.
// Programs change Lamports, Data and Owner in place; the ledger checks the
// changes against ownership rules when the instruction returns.
type AccountInfo struct {
	Key        pubkey.Pubkey
	Lamports   uint64
	Data       []byte
	Owner      pubkey.Pubkey
	Executable bool
	IsSigner   bool
	IsWritable bool
}

// IsAbsent reports whether the account holds nothing at all, which is how a
// never-created or deallocated account appears to a program.
func (a *AccountInfo) IsAbsent() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && a.Owner == pubkey.SystemProgramID
}

// Context exposes runtime services to an executing program.
type Context interface {
	ProgramID() pubkey.Pubkey
	Rent() Rent
	Log(format string, args ...any)
	// Invoke calls another program with the caller's signer privileges.
	Invoke(instruction transaction.Instruction, accounts []*AccountInfo) error
	// InvokeSigned additionally grants signer privilege to every address
	// derived from signerSeeds under the calling program's id.
	InvokeSigned(instruction transaction.Instruction, accounts []*AccountInfo, signerSeeds [][][]byte) error
}
