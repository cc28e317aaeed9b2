package transaction

import (
	"fmt"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
)

// appendCompactU16 writes the ledger's short-vec length prefix: seven bits
// per byte, high bit set on every byte except the last.
func appendCompactU16(out []byte, value int) []byte {
	remaining := uint16(value)
	for {
		current := byte(remaining & 0x7f)
		remaining >>= 7
		if remaining == 0 {
			return append(out, current)
		}
		out = append(out, current|0x80)
	}
}

type reader struct {
	data   []byte
	offset int
}

func (r *reader) readByte() (byte, error) {
	if r.offset >= len(r.data) {
		return 0, ErrTruncated
	}
	value := r.data[r.offset]
	r.offset++
	return value, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || len(r.data)-r.offset < n {
		return nil, ErrTruncated
	}
	out := make([]byte, n)
	copy(out, r.data[r.offset:r.offset+n])
	r.offset += n
	return out, nil
}

func (r *reader) readCompactU16() (int, error) {
	value := 0
	for shift := 0; shift < 21; shift += 7 {
		current, err := r.readByte()
		if err != nil {
			return 0, err
		}
		value |= int(current&0x7f) << shift
		if current&0x80 == 0 {
			if value > 0xffff {
				return 0, ErrInvalidLength
			}
			return value, nil
		}
	}
	return 0, ErrInvalidLength
}

// Serialize encodes the message in the bytes that signers sign.
func (m *Message) Serialize() []byte {
	out := []byte{
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	}
	out = appendCompactU16(out, len(m.AccountKeys))
	for _, key := range m.AccountKeys {
		out = append(out, key[:]...)
	}
	out = append(out, m.RecentBlockhash[:]...)
	out = appendCompactU16(out, len(m.Instructions))
	for _, instruction := range m.Instructions {
		out = append(out, instruction.ProgramIDIndex)
		out = appendCompactU16(out, len(instruction.Accounts))
		out = append(out, instruction.Accounts...)
		out = appendCompactU16(out, len(instruction.Data))
		out = append(out, instruction.Data...)
	}
	return out
}

func decodeMessage(r *reader) (*Message, error) {
	header, err := r.readBytes(3)
	if err != nil {
		return nil, err
	}
	message := &Message{
		Header: MessageHeader{
			NumRequiredSignatures:       header[0],
			NumReadonlySignedAccounts:   header[1],
			NumReadonlyUnsignedAccounts: header[2],
		},
	}

	keyCount, err := r.readCompactU16()
	if err != nil {
		return nil, err
	}
	message.AccountKeys = make([]pubkey.Pubkey, keyCount)
	for index := 0; index < keyCount; index++ {
		raw, err := r.readBytes(pubkey.Size)
		if err != nil {
			return nil, err
		}
		copy(message.AccountKeys[index][:], raw)
	}

	blockhash, err := r.readBytes(len(Hash{}))
	if err != nil {
		return nil, err
	}
	copy(message.RecentBlockhash[:], blockhash)

	instructionCount, err := r.readCompactU16()
	if err != nil {
		return nil, err
	}
	message.Instructions = make([]CompiledInstruction, 0, instructionCount)
	for index := 0; index < instructionCount; index++ {
		programIndex, err := r.readByte()
		if err != nil {
			return nil, err
		}
		accountCount, err := r.readCompactU16()
		if err != nil {
			return nil, err
		}
		accounts, err := r.readBytes(accountCount)
		if err != nil {
			return nil, err
		}
		dataLength, err := r.readCompactU16()
		if err != nil {
			return nil, err
		}
		data, err := r.readBytes(dataLength)
		if err != nil {
			return nil, err
		}
		message.Instructions = append(message.Instructions, CompiledInstruction{
			ProgramIDIndex: programIndex,
			Accounts:       accounts,
			Data:           data,
		})
	}

	if err := message.Sanitize(); err != nil {
		return nil, err
	}
	return message, nil
}

// DeserializeMessage decodes a message produced by Serialize.
func DeserializeMessage(raw []byte) (*Message, error) {
	r := &reader{data: raw}
	message, err := decodeMessage(r)
	if err != nil {
		return nil, err
	}
	if r.offset != len(raw) {
		return nil, ErrTrailingBytes
	}
	return message, nil
}

// Sanitize checks header counts and instruction indexes against the account
// list, and that no account key appears twice.
func (m *Message) Sanitize() error {
	keyCount := len(m.AccountKeys)
	seen := make(map[pubkey.Pubkey]struct{}, keyCount)
	for _, key := range m.AccountKeys {
		if _, duplicate := seen[key]; duplicate {
			return fmt.Errorf("%w: %s", ErrDuplicateAccountKey, key)
		}
		seen[key] = struct{}{}
	}
	required := int(m.Header.NumRequiredSignatures)
	if required == 0 || required > keyCount {
		return ErrInvalidHeader
	}
	if int(m.Header.NumReadonlySignedAccounts) >= required {
		return ErrInvalidHeader
	}
	if required+int(m.Header.NumReadonlyUnsignedAccounts) > keyCount {
		return ErrInvalidHeader
	}
	for _, instruction := range m.Instructions {
		if int(instruction.ProgramIDIndex) >= keyCount || instruction.ProgramIDIndex == 0 {
			return ErrInvalidAccountIndex
		}
		for _, accountIndex := range instruction.Accounts {
			if int(accountIndex) >= keyCount {
				return ErrInvalidAccountIndex
			}
		}
	}
	return nil
}

// Serialize encodes signatures followed by the message.
func (t *Transaction) Serialize() []byte {
	out := appendCompactU16(nil, len(t.Signatures))
	for _, signature := range t.Signatures {
		out = append(out, signature[:]...)
	}
	return append(out, t.Message.Serialize()...)
}

// Deserialize decodes a wire transaction.
func Deserialize(raw []byte) (*Transaction, error) {
	r := &reader{data: raw}
	signatureCount, err := r.readCompactU16()
	if err != nil {
		return nil, err
	}
	signatures := make([]Signature, signatureCount)
	for index := 0; index < signatureCount; index++ {
		rawSignature, err := r.readBytes(SignatureSize)
		if err != nil {
			return nil, err
		}
		copy(signatures[index][:], rawSignature)
	}

	message, err := decodeMessage(r)
	if err != nil {
		return nil, err
	}
	if r.offset != len(raw) {
		return nil, ErrTrailingBytes
	}
	if len(signatures) != int(message.Header.NumRequiredSignatures) {
		return nil, ErrSignatureCountMismatch
	}

	return &Transaction{Signatures: signatures, Message: *message}, nil
}
