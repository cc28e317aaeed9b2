package vault

import (
	"errors"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
)

// ProgramID is the address the custody program is deployed at.
var ProgramID = pubkey.MustParse("22222222222222222222222222222222222222222222")

const vaultSeed = "vault"

func vaultSeeds(owner pubkey.Pubkey) [][]byte {
	return [][]byte{[]byte(vaultSeed), owner.Bytes()}
}

// FindVaultAddress derives the vault owned by owner under ProgramID. Anyone
// can compute it; no secret is involved.
func FindVaultAddress(owner pubkey.Pubkey) (pubkey.Pubkey, uint8, error) {
	return DeriveVaultAddress(owner, ProgramID)
}

// DeriveVaultAddress is FindVaultAddress for a program deployed at programID.
func DeriveVaultAddress(owner pubkey.Pubkey, programID pubkey.Pubkey) (pubkey.Pubkey, uint8, error) {
	address, bump, err := pubkey.FindProgramAddress(vaultSeeds(owner), programID)
	if errors.Is(err, pubkey.ErrAddressSpaceExhausted) {
		return pubkey.Pubkey{}, 0, ErrAddressSpaceExhausted
	}
	if err != nil {
		return pubkey.Pubkey{}, 0, err
	}
	return address, bump, nil
}

func vaultSignerSeeds(owner pubkey.Pubkey, bump uint8) [][]byte {
	return append(vaultSeeds(owner), []byte{bump})
}
