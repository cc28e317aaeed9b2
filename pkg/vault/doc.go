// Package vault implements the custody program: an owner parks lamports in
// a vault whose address is derived from the owner's key and later takes all
// of them back.
//
// A vault is either empty (absent, or present with zero balance) or funded.
// Deposit moves an empty vault to funded and Withdraw drains a funded vault
// completely, after which it can be funded again. Balance is the only state.
//
//	address, _, _ := vault.FindVaultAddress(owner.Pubkey())
//	ix := vault.NewDepositInstruction(owner.Pubkey(), address, 2*shared.LamportsPerSOL)
package vault
