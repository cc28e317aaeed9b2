package vault

import (
	"math"

	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/system"
)

// withdraw drains the whole vault into owner by editing balances directly.
// The vault is program-owned and cannot sign a system transfer, so the
// program spends from it on the strength of ownership alone.
func withdraw(ctx runtime.Context, accounts accountSet) error {
	owner, vault := accounts.owner, accounts.vault
	if !owner.IsSigner {
		return ErrMissingSignature
	}
	if _, err := checkVaultAddress(ctx, owner.Key, vault.Key); err != nil {
		return err
	}
	if vault.Lamports == 0 {
		return ErrVaultEmpty
	}
	if vault.Owner != ctx.ProgramID() {
		ctx.Log("Vault: %s is owned by %s", vault.Key, vault.Owner)
		return ErrAccountNotFound
	}

	amount := vault.Lamports
	if owner.Lamports > math.MaxUint64-amount {
		return runtime.ErrArithmeticOverflow
	}
	owner.Lamports += amount
	vault.Lamports = 0
	vault.Data = nil
	vault.Owner = system.ProgramID

	ctx.Log("Withdraw: %d lamports to %s", amount, owner.Key)
	return nil
}
