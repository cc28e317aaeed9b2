package vault

import (
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/system"
)

type accountSet struct {
	owner         *runtime.AccountInfo
	vault         *runtime.AccountInfo
	systemProgram *runtime.AccountInfo
}

func (s accountSet) all() []*runtime.AccountInfo {
	return []*runtime.AccountInfo{s.owner, s.vault, s.systemProgram}
}

func parseAccounts(accounts []*runtime.AccountInfo) (accountSet, error) {
	if len(accounts) < 3 {
		return accountSet{}, runtime.ErrNotEnoughAccountKeys
	}
	if accounts[2].Key != system.ProgramID {
		return accountSet{}, runtime.ErrIncorrectProgramID
	}
	return accountSet{owner: accounts[0], vault: accounts[1], systemProgram: accounts[2]}, nil
}

// checkVaultAddress returns the bump of owner's vault when vault is that
// address.
func checkVaultAddress(ctx runtime.Context, owner pubkey.Pubkey, vault pubkey.Pubkey) (uint8, error) {
	expected, bump, err := DeriveVaultAddress(owner, ctx.ProgramID())
	if err != nil {
		return 0, err
	}
	if expected != vault {
		ctx.Log("Vault: expected %s, got %s", expected, vault)
		return 0, ErrAddressMismatch
	}
	return bump, nil
}
