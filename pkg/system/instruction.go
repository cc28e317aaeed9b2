package system

import (
	"encoding/binary"
	"fmt"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
)

var ProgramID = pubkey.SystemProgramID

// MaxPermittedDataLength caps the space a single account may allocate.
const MaxPermittedDataLength = 10 * 1024 * 1024

type InstructionType uint32

const (
	InstructionCreateAccount InstructionType = 0
	InstructionAssign        InstructionType = 1
	InstructionTransfer      InstructionType = 2
	InstructionAllocate      InstructionType = 8
)

func (t InstructionType) String() string {
	switch t {
	case InstructionCreateAccount:
		return "CreateAccount"
	case InstructionAssign:
		return "Assign"
	case InstructionTransfer:
		return "Transfer"
	case InstructionAllocate:
		return "Allocate"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(t))
	}
}

// Instruction is a decoded system instruction.
type Instruction struct {
	Type     InstructionType
	Lamports uint64
	Space    uint64
	Owner    pubkey.Pubkey
}

// Transfer moves lamports from a signing, system-owned account.
func Transfer(from pubkey.Pubkey, to pubkey.Pubkey, lamports uint64) transaction.Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], uint32(InstructionTransfer))
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	return transaction.Instruction{
		ProgramID: ProgramID,
		Accounts: []transaction.AccountMeta{
			transaction.NewAccountMeta(from, true),
			transaction.NewAccountMeta(to, false),
		},
		Data: data,
	}
}

// CreateAccount funds and allocates a new account and assigns it to owner.
// Both from and to must sign; a program-derived to signs through
// InvokeSigned.
func CreateAccount(
	from pubkey.Pubkey,
	to pubkey.Pubkey,
	lamports uint64,
	space uint64,
	owner pubkey.Pubkey,
) transaction.Instruction {
	data := make([]byte, 52)
	binary.LittleEndian.PutUint32(data[0:4], uint32(InstructionCreateAccount))
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	binary.LittleEndian.PutUint64(data[12:20], space)
	copy(data[20:52], owner[:])
	return transaction.Instruction{
		ProgramID: ProgramID,
		Accounts: []transaction.AccountMeta{
			transaction.NewAccountMeta(from, true),
			transaction.NewAccountMeta(to, true),
		},
		Data: data,
	}
}

func Assign(account pubkey.Pubkey, owner pubkey.Pubkey) transaction.Instruction {
	data := make([]byte, 36)
	binary.LittleEndian.PutUint32(data[0:4], uint32(InstructionAssign))
	copy(data[4:36], owner[:])
	return transaction.Instruction{
		ProgramID: ProgramID,
		Accounts:  []transaction.AccountMeta{transaction.NewAccountMeta(account, true)},
		Data:      data,
	}
}

func Allocate(account pubkey.Pubkey, space uint64) transaction.Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], uint32(InstructionAllocate))
	binary.LittleEndian.PutUint64(data[4:12], space)
	return transaction.Instruction{
		ProgramID: ProgramID,
		Accounts:  []transaction.AccountMeta{transaction.NewAccountMeta(account, true)},
		Data:      data,
	}
}

// DecodeInstruction parses system instruction data.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) < 4 {
		return Instruction{}, runtime.ErrInvalidInstructionData
	}
	decoded := Instruction{Type: InstructionType(binary.LittleEndian.Uint32(data[0:4]))}
	payload := data[4:]

	switch decoded.Type {
	case InstructionCreateAccount:
		if len(payload) != 48 {
			return Instruction{}, runtime.ErrInvalidInstructionData
		}
		decoded.Lamports = binary.LittleEndian.Uint64(payload[0:8])
		decoded.Space = binary.LittleEndian.Uint64(payload[8:16])
		copy(decoded.Owner[:], payload[16:48])
	case InstructionAssign:
		if len(payload) != 32 {
			return Instruction{}, runtime.ErrInvalidInstructionData
		}
		copy(decoded.Owner[:], payload)
	case InstructionTransfer:
		if len(payload) != 8 {
			return Instruction{}, runtime.ErrInvalidInstructionData
		}
		decoded.Lamports = binary.LittleEndian.Uint64(payload)
	case InstructionAllocate:
		if len(payload) != 8 {
			return Instruction{}, runtime.ErrInvalidInstructionData
		}
		decoded.Space = binary.LittleEndian.Uint64(payload)
	default:
		return Instruction{}, runtime.ErrInvalidInstructionData
	}
	return decoded, nil
}
