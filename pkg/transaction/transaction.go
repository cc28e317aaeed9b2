package transaction

import (
	"fmt"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
)

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewSignedWithPayer compiles instructions and signs them with every signer
// the message requires.
func NewSignedWithPayer(
	instructions []Instruction,
	payer pubkey.Pubkey,
	signers []Signer,
	recentBlockhash Hash,
) (*Transaction, error) {
	message, err := NewMessage(instructions, payer, recentBlockhash)
	if err != nil {
		return nil, err
	}
	transaction := &Transaction{Message: *message}
	if err := transaction.Sign(signers...); err != nil {
		return nil, err
	}
	return transaction, nil
}

// Sign fills the signature slot of every required signer. Every required
// signer must be supplied and every supplied signer must be required.
func (t *Transaction) Sign(signers ...Signer) error {
	required := t.Message.Signers()
	if len(t.Signatures) != len(required) {
		t.Signatures = make([]Signature, len(required))
	}

	bySigner := make(map[pubkey.Pubkey]Signer, len(signers))
	for _, signer := range signers {
		bySigner[signer.Pubkey()] = signer
	}
	for _, key := range required {
		if _, ok := bySigner[key]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSigner, key)
		}
	}

	position := make(map[pubkey.Pubkey]int, len(required))
	for index, key := range required {
		position[key] = index
	}
	for key := range bySigner {
		if _, ok := position[key]; !ok {
			return fmt.Errorf("%w: %s", ErrUnexpectedSigner, key)
		}
	}

	payload := t.Message.Serialize()
	for key, signer := range bySigner {
		signature := signer.Sign(payload)
		if len(signature) != SignatureSize {
			return fmt.Errorf("signer %s produced %d-byte signature", key, len(signature))
		}
		copy(t.Signatures[position[key]][:], signature)
	}
	return nil
}

// Signature returns the fee payer's signature, which identifies the
// transaction.
func (t *Transaction) Signature() Signature {
	if len(t.Signatures) == 0 {
		return Signature{}
	}
	return t.Signatures[0]
}
