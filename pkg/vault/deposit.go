package vault

import (
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/system"
)

func deposit(ctx runtime.Context, accounts accountSet, amount uint64) error {
	owner, vault := accounts.owner, accounts.vault
	if !owner.IsSigner {
		return ErrMissingSignature
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	bump, err := checkVaultAddress(ctx, owner.Key, vault.Key)
	if err != nil {
		return err
	}

	absent := vault.IsAbsent()
	if !absent && (vault.Lamports != 0 || vault.Owner != ctx.ProgramID()) {
		ctx.Log("Vault: %s already holds %d lamports", vault.Key, vault.Lamports)
		return ErrVaultNotEmpty
	}
	if minimum := ctx.Rent().MinimumBalance(len(vault.Data)); amount < minimum {
		ctx.Log("Vault: deposit %d below rent-exempt minimum %d", amount, minimum)
		return ErrInsufficientDepositForRent
	}

	if absent {
		create := system.CreateAccount(owner.Key, vault.Key, amount, 0, ctx.ProgramID())
		signer := vaultSignerSeeds(owner.Key, bump)
		if err := ctx.InvokeSigned(create, accounts.all(), [][][]byte{signer}); err != nil {
			return err
		}
	} else {
		if err := ctx.Invoke(system.Transfer(owner.Key, vault.Key, amount), accounts.all()); err != nil {
			return err
		}
	}

	ctx.Log("Deposit: %d lamports into %s", amount, vault.Key)
	return nil
}
