package ledger

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/hashgraph-online/custody-vault-go/pkg/keypair"
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/system"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
)

// Result describes a processed transaction. Err is set when execution
// failed; the fee is still charged in that case.
type Result struct {
	Signature transaction.Signature
	Slot      uint64
	Fee       uint64
	Logs      []string
	Err       error
}

// execution is the working state of one transaction. Nothing in it reaches
// the ledger unless every instruction succeeds.
type execution struct {
	keys     []pubkey.Pubkey
	accounts map[pubkey.Pubkey]*runtime.AccountInfo
	pre      map[pubkey.Pubkey]Account
	logs     []string
}

func (e *execution) log(format string, args ...any) {
	e.logs = append(e.logs, fmt.Sprintf(format, args...))
}

// SendTransaction verifies, charges and executes tx. State changes made by
// its instructions commit together or not at all.
func (l *Ledger) SendTransaction(ctx context.Context, tx *transaction.Transaction) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if tx == nil {
		return Result{}, fmt.Errorf("transaction is required")
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	result := Result{Signature: tx.Signature(), Slot: l.slot}
	if err := l.sanitize(tx); err != nil {
		l.recordRejected(result, err)
		return result, err
	}

	message := &tx.Message
	fee := l.config.FeePerSignature * uint64(len(tx.Signatures))
	if err := l.chargeFee(message.FeePayer(), fee); err != nil {
		l.recordRejected(result, err)
		return result, err
	}
	result.Fee = fee
	l.processed[result.Signature] = l.slot

	state := l.load(message)
	err := l.execute(state, message)
	result.Logs = state.logs
	if err == nil {
		err = l.checkRent(state, message)
	}
	if err == nil {
		l.commit(state, message)
	}
	result.Err = err

	l.recordProcessed(result)
	l.advanceSlot()
	return result, err
}

func (l *Ledger) sanitize(tx *transaction.Transaction) error {
	message := &tx.Message
	if err := message.Sanitize(); err != nil {
		return err
	}
	if len(tx.Signatures) != int(message.Header.NumRequiredSignatures) {
		return transaction.ErrSignatureCountMismatch
	}
	if !l.isRecentBlockhash(message.RecentBlockhash) {
		return ErrBlockhashNotFound
	}
	if _, seen := l.processed[tx.Signature()]; seen {
		return ErrAlreadyProcessed
	}

	payload := message.Serialize()
	for index, signer := range message.Signers() {
		if !keypair.Verify(signer, payload, tx.Signatures[index][:]) {
			return fmt.Errorf("%w: %s", ErrSignatureFailure, signer)
		}
	}
	return nil
}

func (l *Ledger) chargeFee(payer pubkey.Pubkey, fee uint64) error {
	account, exists := l.accounts[payer]
	if !exists {
		return ErrAccountNotFound
	}
	if account.Owner != system.ProgramID || len(account.Data) != 0 {
		return ErrInvalidAccountForFee
	}
	if account.Lamports < fee {
		return ErrInsufficientFundsForFee
	}
	account.Lamports -= fee
	if account.Lamports == 0 {
		delete(l.accounts, payer)
		return nil
	}
	l.accounts[payer] = account
	return nil
}

func (l *Ledger) load(message *transaction.Message) *execution {
	state := &execution{
		keys:     message.AccountKeys,
		accounts: make(map[pubkey.Pubkey]*runtime.AccountInfo, len(message.AccountKeys)),
		pre:      make(map[pubkey.Pubkey]Account, len(message.AccountKeys)),
	}
	for index, key := range message.AccountKeys {
		stored, exists := l.accounts[key]
		if !exists {
			stored = Account{Owner: system.ProgramID}
		}
		state.pre[key] = stored.clone()

		_, isProgram := l.programs[key]
		loaded := stored.clone()
		state.accounts[key] = &runtime.AccountInfo{
			Key:        key,
			Lamports:   loaded.Lamports,
			Data:       loaded.Data,
			Owner:      loaded.Owner,
			Executable: loaded.Executable,
			IsSigner:   message.IsSigner(index),
			IsWritable: message.IsWritable(index) && !isProgram,
		}
	}
	return state
}

func (l *Ledger) execute(state *execution, message *transaction.Message) error {
	for index, compiled := range message.Instructions {
		programID := state.keys[compiled.ProgramIDIndex]
		accounts := make([]*runtime.AccountInfo, 0, len(compiled.Accounts))
		for _, accountIndex := range compiled.Accounts {
			accounts = append(accounts, state.accounts[state.keys[accountIndex]])
		}
		if err := l.invoke(state, programID, accounts, compiled.Data, 1); err != nil {
			return &TransactionError{InstructionIndex: index, Err: err}
		}
	}
	return nil
}

type accountSnapshot struct {
	lamports uint64
	owner    pubkey.Pubkey
	data     []byte
}

type frame struct {
	ledger    *Ledger
	state     *execution
	programID pubkey.Pubkey
	depth     int
	accounts  []*runtime.AccountInfo
	pre       map[pubkey.Pubkey]accountSnapshot
}

func snapshotAccounts(accounts []*runtime.AccountInfo) map[pubkey.Pubkey]accountSnapshot {
	out := make(map[pubkey.Pubkey]accountSnapshot, len(accounts))
	for _, account := range accounts {
		data := make([]byte, len(account.Data))
		copy(data, account.Data)
		out[account.Key] = accountSnapshot{lamports: account.Lamports, owner: account.Owner, data: data}
	}
	return out
}

func (l *Ledger) invoke(
	state *execution,
	programID pubkey.Pubkey,
	accounts []*runtime.AccountInfo,
	data []byte,
	depth int,
) error {
	program, exists := l.programs[programID]
	if !exists {
		return fmt.Errorf("%w: %s", runtime.ErrUnsupportedProgramID, programID)
	}

	current := &frame{
		ledger:    l,
		state:     state,
		programID: programID,
		depth:     depth,
		accounts:  accounts,
		pre:       snapshotAccounts(accounts),
	}

	state.log("Program %s invoke [%d]", programID, depth)
	if err := program.Process(current, accounts, data); err != nil {
		state.log("Program %s failed: %v", programID, err)
		return err
	}
	if err := current.verify(); err != nil {
		state.log("Program %s failed: %v", programID, err)
		return err
	}
	state.log("Program %s success", programID)
	return nil
}

// verify enforces the ownership rules on every account the instruction saw:
// only the owning program may debit lamports or change data and owner,
// read-only accounts never change, and lamports are conserved.
func (f *frame) verify() error {
	seen := make(map[pubkey.Pubkey]bool, len(f.accounts))
	var before, after uint64
	for _, account := range f.accounts {
		if seen[account.Key] {
			continue
		}
		seen[account.Key] = true
		pre := f.pre[account.Key]
		ownedByProgram := pre.owner == f.programID

		if account.Owner != pre.owner {
			if !ownedByProgram || !account.IsWritable || account.Executable || !isZeroed(account.Data) {
				return runtime.ErrModifiedProgramID
			}
		}
		if account.Lamports < pre.lamports {
			if !account.IsWritable {
				return runtime.ErrReadonlyLamportChange
			}
			if !ownedByProgram {
				return runtime.ErrExternalAccountLamportSpend
			}
		}
		if account.Lamports > pre.lamports && !account.IsWritable {
			return runtime.ErrReadonlyLamportChange
		}
		if !bytes.Equal(account.Data, pre.data) {
			if !account.IsWritable {
				return runtime.ErrReadonlyDataModified
			}
			if !ownedByProgram {
				return runtime.ErrExternalAccountDataModified
			}
		}

		if before > math.MaxUint64-pre.lamports || after > math.MaxUint64-account.Lamports {
			return runtime.ErrArithmeticOverflow
		}
		before += pre.lamports
		after += account.Lamports
	}
	if before != after {
		return runtime.ErrUnbalancedInstruction
	}
	return nil
}

func isZeroed(data []byte) bool {
	for _, value := range data {
		if value != 0 {
			return false
		}
	}
	return true
}

// checkRent rejects transactions that leave a changed writable account
// holding some lamports but less than its rent-exempt reserve.
func (l *Ledger) checkRent(state *execution, message *transaction.Message) error {
	for index, key := range state.keys {
		if !message.IsWritable(index) {
			continue
		}
		account := state.accounts[key]
		if account.Lamports == 0 || l.config.Rent.IsExempt(account.Lamports, len(account.Data)) {
			continue
		}
		pre := state.pre[key]
		if pre.Lamports == account.Lamports && len(pre.Data) == len(account.Data) {
			continue
		}
		return fmt.Errorf("%w: account %s holds %d, needs %d",
			ErrInsufficientFundsForRent,
			key,
			account.Lamports,
			l.config.Rent.MinimumBalance(len(account.Data)),
		)
	}
	return nil
}

func (l *Ledger) commit(state *execution, message *transaction.Message) {
	for index, key := range state.keys {
		if !message.IsWritable(index) {
			continue
		}
		if _, isProgram := l.programs[key]; isProgram {
			continue
		}
		account := state.accounts[key]
		if account.Lamports == 0 {
			delete(l.accounts, key)
			continue
		}
		stored := Account{
			Lamports:   account.Lamports,
			Data:       account.Data,
			Owner:      account.Owner,
			Executable: account.Executable,
		}
		l.accounts[key] = stored.clone()
	}
}
