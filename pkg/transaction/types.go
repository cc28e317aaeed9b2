package transaction

import (
	"fmt"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/mr-tron/base58"
)

const SignatureSize = 64

// AccountMeta describes how an instruction uses one account.
type AccountMeta struct {
	Pubkey     pubkey.Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta returns a writable account reference.
func NewAccountMeta(key pubkey.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta returns a read-only account reference.
func NewReadonlyAccountMeta(key pubkey.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: isSigner, IsWritable: false}
}

// Instruction is one program call inside a transaction.
type Instruction struct {
	ProgramID pubkey.Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// Hash identifies a recent ledger state a transaction was built against.
type Hash [32]byte

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

// ParseHash decodes a base58 blockhash.
func ParseHash(raw string) (Hash, error) {
	decoded, err := base58.Decode(raw)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid base58 hash %q: %w", raw, err)
	}
	if len(decoded) != len(Hash{}) {
		return Hash{}, fmt.Errorf("invalid hash length %d", len(decoded))
	}
	var hash Hash
	copy(hash[:], decoded)
	return hash, nil
}

type Signature [SignatureSize]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}

// ParseSignature decodes a base58 transaction signature.
func ParseSignature(raw string) (Signature, error) {
	decoded, err := base58.Decode(raw)
	if err != nil {
		return Signature{}, fmt.Errorf("invalid base58 signature %q: %w", raw, err)
	}
	if len(decoded) != SignatureSize {
		return Signature{}, fmt.Errorf("invalid signature length %d", len(decoded))
	}
	var signature Signature
	copy(signature[:], decoded)
	return signature, nil
}

// Signer produces ed25519 signatures for a single identity.
type Signer interface {
	Pubkey() pubkey.Pubkey
	Sign(message []byte) []byte
}

// MessageHeader counts the signer and read-only sections of the account list.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references accounts by index into Message.AccountKeys.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}
