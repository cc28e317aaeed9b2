package transaction

import (
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
)

const maxAccountKeys = 256

// Message is the signed portion of a transaction.
type Message struct {
	Header          MessageHeader
	AccountKeys     []pubkey.Pubkey
	RecentBlockhash Hash
	Instructions    []CompiledInstruction
}

type keyFlags struct {
	key      pubkey.Pubkey
	signer   bool
	writable bool
}

// NewMessage compiles instructions into a message paid for by payer. Account
// keys are ordered signer-writable, signer-readonly, writable, readonly with
// the payer first.
func NewMessage(instructions []Instruction, payer pubkey.Pubkey, recentBlockhash Hash) (*Message, error) {
	if len(instructions) == 0 {
		return nil, ErrNoInstructions
	}
	if payer.IsZero() {
		return nil, ErrNoPayer
	}

	ordered := []*keyFlags{{key: payer, signer: true, writable: true}}
	index := map[pubkey.Pubkey]*keyFlags{payer: ordered[0]}
	upsert := func(key pubkey.Pubkey, signer bool, writable bool) {
		if existing, ok := index[key]; ok {
			existing.signer = existing.signer || signer
			existing.writable = existing.writable || writable
			return
		}
		entry := &keyFlags{key: key, signer: signer, writable: writable}
		index[key] = entry
		ordered = append(ordered, entry)
	}

	for _, instruction := range instructions {
		for _, meta := range instruction.Accounts {
			upsert(meta.Pubkey, meta.IsSigner, meta.IsWritable)
		}
		upsert(instruction.ProgramID, false, false)
	}

	if len(ordered) > maxAccountKeys {
		return nil, ErrTooManyAccounts
	}

	var signerWritable, signerReadonly, writable, readonly []pubkey.Pubkey
	for _, entry := range ordered {
		switch {
		case entry.signer && entry.writable:
			signerWritable = append(signerWritable, entry.key)
		case entry.signer:
			signerReadonly = append(signerReadonly, entry.key)
		case entry.writable:
			writable = append(writable, entry.key)
		default:
			readonly = append(readonly, entry.key)
		}
	}

	keys := make([]pubkey.Pubkey, 0, len(ordered))
	keys = append(keys, signerWritable...)
	keys = append(keys, signerReadonly...)
	keys = append(keys, writable...)
	keys = append(keys, readonly...)

	positions := make(map[pubkey.Pubkey]uint8, len(keys))
	for position, key := range keys {
		positions[key] = uint8(position)
	}

	compiled := make([]CompiledInstruction, 0, len(instructions))
	for _, instruction := range instructions {
		accountIndexes := make([]uint8, 0, len(instruction.Accounts))
		for _, meta := range instruction.Accounts {
			accountIndexes = append(accountIndexes, positions[meta.Pubkey])
		}
		data := make([]byte, len(instruction.Data))
		copy(data, instruction.Data)
		compiled = append(compiled, CompiledInstruction{
			ProgramIDIndex: positions[instruction.ProgramID],
			Accounts:       accountIndexes,
			Data:           data,
		})
	}

	return &Message{
		Header: MessageHeader{
			NumRequiredSignatures:       uint8(len(signerWritable) + len(signerReadonly)),
			NumReadonlySignedAccounts:   uint8(len(signerReadonly)),
			NumReadonlyUnsignedAccounts: uint8(len(readonly)),
		},
		AccountKeys:     keys,
		RecentBlockhash: recentBlockhash,
		Instructions:    compiled,
	}, nil
}

// FeePayer is the first account key.
func (m *Message) FeePayer() pubkey.Pubkey {
	if len(m.AccountKeys) == 0 {
		return pubkey.Pubkey{}
	}
	return m.AccountKeys[0]
}

func (m *Message) IsSigner(index int) bool {
	return index < int(m.Header.NumRequiredSignatures)
}

func (m *Message) IsWritable(index int) bool {
	required := int(m.Header.NumRequiredSignatures)
	if index < required {
		return index < required-int(m.Header.NumReadonlySignedAccounts)
	}
	return index < len(m.AccountKeys)-int(m.Header.NumReadonlyUnsignedAccounts)
}

// Signers returns the keys that must sign, in signature order.
func (m *Message) Signers() []pubkey.Pubkey {
	required := int(m.Header.NumRequiredSignatures)
	if required > len(m.AccountKeys) {
		required = len(m.AccountKeys)
	}
	out := make([]pubkey.Pubkey, required)
	copy(out, m.AccountKeys[:required])
	return out
}
