package vault

import (
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
)

// Program is the custody program. It keeps no state of its own; every
// invocation re-reads the accounts it is handed.
type Program struct{}

var _ runtime.Program = Program{}

// Process routes data to the deposit or withdraw handler. Accounts are
// positional: owner, vault, system program.
func (Program) Process(ctx runtime.Context, accounts []*runtime.AccountInfo, data []byte) error {
	operation, err := DecodeInstruction(data)
	if err != nil {
		ctx.Log("Vault: %v", err)
		return err
	}

	set, err := parseAccounts(accounts)
	if err != nil {
		ctx.Log("Vault: %v", err)
		return err
	}

	switch operation.Opcode {
	case OpDeposit:
		ctx.Log("Instruction: Deposit")
		return deposit(ctx, set, operation.Amount)
	case OpWithdraw:
		ctx.Log("Instruction: Withdraw")
		return withdraw(ctx, set)
	}
	return ErrUnknownOperation
}
