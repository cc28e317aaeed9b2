package system

import (
	"math"

	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
)

// Program is the built-in system program. It owns every wallet account and
// implements the generic signer-sourced transfer.
type Program struct{}

func (Program) Process(ctx runtime.Context, accounts []*runtime.AccountInfo, data []byte) error {
	instruction, err := DecodeInstruction(data)
	if err != nil {
		return err
	}

	switch instruction.Type {
	case InstructionCreateAccount:
		if len(accounts) < 2 {
			return runtime.ErrNotEnoughAccountKeys
		}
		return createAccount(ctx, accounts[0], accounts[1], instruction)
	case InstructionAssign:
		if len(accounts) < 1 {
			return runtime.ErrNotEnoughAccountKeys
		}
		return assign(ctx, accounts[0], instruction)
	case InstructionTransfer:
		if len(accounts) < 2 {
			return runtime.ErrNotEnoughAccountKeys
		}
		return transfer(ctx, accounts[0], accounts[1], instruction.Lamports)
	case InstructionAllocate:
		if len(accounts) < 1 {
			return runtime.ErrNotEnoughAccountKeys
		}
		return allocate(ctx, accounts[0], instruction.Space)
	}
	return runtime.ErrInvalidInstructionData
}

func transfer(ctx runtime.Context, from *runtime.AccountInfo, to *runtime.AccountInfo, lamports uint64) error {
	if !from.IsSigner {
		ctx.Log("Transfer: `from` account %s must sign", from.Key)
		return runtime.ErrMissingRequiredSignature
	}
	if len(from.Data) != 0 {
		ctx.Log("Transfer: `from` must not carry data")
		return runtime.ErrInvalidAccountData
	}
	if from.Lamports < lamports {
		ctx.Log("Transfer: insufficient lamports %d, need %d", from.Lamports, lamports)
		return runtime.ErrInsufficientFunds
	}
	if to.Lamports > math.MaxUint64-lamports {
		return runtime.ErrArithmeticOverflow
	}
	if from.Key == to.Key {
		return nil
	}

	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}

func createAccount(
	ctx runtime.Context,
	from *runtime.AccountInfo,
	to *runtime.AccountInfo,
	instruction Instruction,
) error {
	if !to.IsAbsent() {
		ctx.Log("Create Account: account %s already in use", to.Key)
		return runtime.ErrAccountAlreadyInUse
	}
	if !to.IsSigner {
		ctx.Log("Create Account: account %s must sign", to.Key)
		return runtime.ErrMissingRequiredSignature
	}
	if err := allocate(ctx, to, instruction.Space); err != nil {
		return err
	}
	to.Owner = instruction.Owner
	return transfer(ctx, from, to, instruction.Lamports)
}

func assign(ctx runtime.Context, account *runtime.AccountInfo, instruction Instruction) error {
	if account.Owner == instruction.Owner {
		return nil
	}
	if !account.IsSigner {
		ctx.Log("Assign: account %s must sign", account.Key)
		return runtime.ErrMissingRequiredSignature
	}
	account.Owner = instruction.Owner
	return nil
}

func allocate(ctx runtime.Context, account *runtime.AccountInfo, space uint64) error {
	if !account.IsSigner {
		ctx.Log("Allocate: account %s must sign", account.Key)
		return runtime.ErrMissingRequiredSignature
	}
	if len(account.Data) != 0 || account.Owner != ProgramID {
		ctx.Log("Allocate: account %s already in use", account.Key)
		return runtime.ErrAccountAlreadyInUse
	}
	if space > MaxPermittedDataLength {
		ctx.Log("Allocate: requested %d, max allowed %d", space, MaxPermittedDataLength)
		return runtime.ErrInvalidInstructionData
	}
	account.Data = make([]byte, space)
	return nil
}
