package vault

import (
	"encoding/binary"
	"fmt"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/system"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
)

// Opcode is the first byte of every vault instruction.
type Opcode uint8

const (
	// OpDeposit is followed by the amount as a little-endian u64.
	OpDeposit Opcode = 0
	// OpWithdraw carries no payload.
	OpWithdraw Opcode = 1
)

const (
	depositPayloadLength  = 9
	withdrawPayloadLength = 1
)

// String returns the operation name.
func (o Opcode) String() string {
	switch o {
	case OpDeposit:
		return "deposit"
	case OpWithdraw:
		return "withdraw"
	}
	return fmt.Sprintf("opcode(%d)", uint8(o))
}

// Operation is a decoded vault instruction. Amount is only meaningful for
// deposits.
type Operation struct {
	Opcode Opcode
	Amount uint64
}

// Encode returns the instruction data DecodeInstruction accepts.
func (o Operation) Encode() []byte {
	if o.Opcode != OpDeposit {
		return []byte{byte(o.Opcode)}
	}
	data := make([]byte, depositPayloadLength)
	data[0] = byte(OpDeposit)
	binary.LittleEndian.PutUint64(data[1:], o.Amount)
	return data
}

// DecodeInstruction parses the one-byte opcode and its payload.
func DecodeInstruction(data []byte) (Operation, error) {
	if len(data) == 0 {
		return Operation{}, ErrMalformedPayload
	}

	switch opcode := Opcode(data[0]); opcode {
	case OpDeposit:
		if len(data) != depositPayloadLength {
			return Operation{}, ErrMalformedPayload
		}
		return Operation{Opcode: OpDeposit, Amount: binary.LittleEndian.Uint64(data[1:])}, nil
	case OpWithdraw:
		if len(data) != withdrawPayloadLength {
			return Operation{}, ErrMalformedPayload
		}
		return Operation{Opcode: OpWithdraw}, nil
	}
	return Operation{}, ErrUnknownOperation
}

func accountMetas(owner pubkey.Pubkey, vault pubkey.Pubkey) []transaction.AccountMeta {
	return []transaction.AccountMeta{
		transaction.NewAccountMeta(owner, true),
		transaction.NewAccountMeta(vault, false),
		transaction.NewReadonlyAccountMeta(system.ProgramID, false),
	}
}

// NewDepositInstruction builds a deposit of amount lamports from owner into
// vault for the program at ProgramID.
func NewDepositInstruction(owner pubkey.Pubkey, vault pubkey.Pubkey, amount uint64) transaction.Instruction {
	return NewDepositInstructionForProgram(ProgramID, owner, vault, amount)
}

// NewDepositInstructionForProgram targets a custody program registered at
// programID. vault must be derived under the same id.
func NewDepositInstructionForProgram(
	programID pubkey.Pubkey,
	owner pubkey.Pubkey,
	vault pubkey.Pubkey,
	amount uint64,
) transaction.Instruction {
	return transaction.Instruction{
		ProgramID: programID,
		Accounts:  accountMetas(owner, vault),
		Data:      Operation{Opcode: OpDeposit, Amount: amount}.Encode(),
	}
}

// NewWithdrawInstruction builds a withdrawal of vault's whole balance back
// to owner for the program at ProgramID.
func NewWithdrawInstruction(owner pubkey.Pubkey, vault pubkey.Pubkey) transaction.Instruction {
	return NewWithdrawInstructionForProgram(ProgramID, owner, vault)
}

// NewWithdrawInstructionForProgram targets a custody program registered at
// programID.
func NewWithdrawInstructionForProgram(programID pubkey.Pubkey, owner pubkey.Pubkey, vault pubkey.Pubkey) transaction.Instruction {
	return transaction.Instruction{
		ProgramID: programID,
		Accounts:  accountMetas(owner, vault),
		Data:      Operation{Opcode: OpWithdraw}.Encode(),
	}
}
