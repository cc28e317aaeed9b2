package ledger

import (
	"fmt"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
)

var _ runtime.Context = (*frame)(nil)

func (f *frame) ProgramID() pubkey.Pubkey {
	return f.programID
}

func (f *frame) Rent() runtime.Rent {
	return f.ledger.config.Rent
}

func (f *frame) Log(format string, args ...any) {
	f.state.log("Program log: "+format, args...)
}

func (f *frame) Invoke(instruction transaction.Instruction, accounts []*runtime.AccountInfo) error {
	return f.InvokeSigned(instruction, accounts, nil)
}

// InvokeSigned runs a nested instruction. The callee sees only the accounts
// named by instruction, with privileges no greater than the caller holds
// plus signer privilege for addresses derived from signerSeeds.
func (f *frame) InvokeSigned(
	instruction transaction.Instruction,
	accounts []*runtime.AccountInfo,
	signerSeeds [][][]byte,
) error {
	if f.depth >= f.ledger.config.MaxCallDepth {
		return fmt.Errorf("%w: depth %d", runtime.ErrCallDepth, f.depth+1)
	}

	derivedSigners := make(map[pubkey.Pubkey]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		address, err := pubkey.CreateProgramAddress(seeds, f.programID)
		if err != nil {
			return fmt.Errorf("%w: %v", runtime.ErrInvalidSeeds, err)
		}
		derivedSigners[address] = true
	}

	available := make(map[pubkey.Pubkey]*runtime.AccountInfo, len(accounts))
	for _, account := range accounts {
		available[account.Key] = account
	}
	if _, ok := available[instruction.ProgramID]; !ok {
		return fmt.Errorf("%w: program %s not passed", runtime.ErrNotEnoughAccountKeys, instruction.ProgramID)
	}

	callee := make([]*runtime.AccountInfo, 0, len(instruction.Accounts))
	byKey := make(map[pubkey.Pubkey]*runtime.AccountInfo, len(instruction.Accounts))
	for _, meta := range instruction.Accounts {
		caller, ok := available[meta.Pubkey]
		if !ok {
			return fmt.Errorf("%w: %s not passed", runtime.ErrNotEnoughAccountKeys, meta.Pubkey)
		}
		if meta.IsWritable && !caller.IsWritable {
			return fmt.Errorf("%w: %s is not writable", runtime.ErrPrivilegeEscalation, meta.Pubkey)
		}
		if meta.IsSigner && !caller.IsSigner && !derivedSigners[meta.Pubkey] {
			return fmt.Errorf("%w: %s did not sign", runtime.ErrPrivilegeEscalation, meta.Pubkey)
		}

		info, seen := byKey[meta.Pubkey]
		if !seen {
			data := make([]byte, len(caller.Data))
			copy(data, caller.Data)
			info = &runtime.AccountInfo{
				Key:        caller.Key,
				Lamports:   caller.Lamports,
				Data:       data,
				Owner:      caller.Owner,
				Executable: caller.Executable,
			}
			byKey[meta.Pubkey] = info
		}
		info.IsSigner = info.IsSigner || meta.IsSigner
		info.IsWritable = info.IsWritable || meta.IsWritable
		callee = append(callee, info)
	}

	// changes the caller made so far must be valid on their own
	if err := f.verify(); err != nil {
		return err
	}
	if err := f.ledger.invoke(f.state, instruction.ProgramID, callee, instruction.Data, f.depth+1); err != nil {
		return err
	}

	for key, info := range byKey {
		caller := available[key]
		caller.Lamports = info.Lamports
		caller.Data = info.Data
		caller.Owner = info.Owner
	}
	f.pre = snapshotAccounts(f.accounts)
	return nil
}
