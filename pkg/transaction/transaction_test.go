package transaction

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashgraph-online/custody-vault-go/pkg/keypair"
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
)

var testProgramID = pubkey.MustParse("22222222222222222222222222222222222222222222")

func testInstruction(owner pubkey.Pubkey, vault pubkey.Pubkey) Instruction {
	return Instruction{
		ProgramID: testProgramID,
		Accounts: []AccountMeta{
			NewAccountMeta(owner, true),
			NewAccountMeta(vault, false),
			NewReadonlyAccountMeta(pubkey.SystemProgramID, false),
		},
		Data: []byte{1},
	}
}

func TestNewMessageOrdersAccounts(t *testing.T) {
	owner := keypair.MustGenerate()
	vault := keypair.MustGenerate().Pubkey()

	message, err := NewMessage([]Instruction{testInstruction(owner.Pubkey(), vault)}, owner.Pubkey(), Hash{9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(message.AccountKeys) != 4 {
		t.Fatalf("expected 4 account keys, got %d", len(message.AccountKeys))
	}
	if message.AccountKeys[0] != owner.Pubkey() {
		t.Fatalf("expected payer first")
	}
	if message.AccountKeys[1] != vault {
		t.Fatalf("expected writable vault second")
	}
	if message.Header.NumRequiredSignatures != 1 {
		t.Fatalf("expected one required signature, got %d", message.Header.NumRequiredSignatures)
	}
	if message.Header.NumReadonlyUnsignedAccounts != 2 {
		t.Fatalf("expected system and program to be readonly, got %d", message.Header.NumReadonlyUnsignedAccounts)
	}
	if !message.IsSigner(0) || message.IsSigner(1) {
		t.Fatalf("unexpected signer flags")
	}
	if !message.IsWritable(0) || !message.IsWritable(1) || message.IsWritable(2) || message.IsWritable(3) {
		t.Fatalf("unexpected writable flags")
	}

	compiled := message.Instructions[0]
	if message.AccountKeys[compiled.ProgramIDIndex] != testProgramID {
		t.Fatalf("program index does not point to program id")
	}
	if !bytes.Equal(compiled.Accounts, []uint8{0, 1, 2}) {
		t.Fatalf("unexpected compiled account indexes: %v", compiled.Accounts)
	}
}

func TestNewMessageMergesPrivileges(t *testing.T) {
	payer := keypair.MustGenerate().Pubkey()
	shared := keypair.MustGenerate().Pubkey()
	instructions := []Instruction{
		{ProgramID: testProgramID, Accounts: []AccountMeta{NewReadonlyAccountMeta(shared, false)}},
		{ProgramID: testProgramID, Accounts: []AccountMeta{NewAccountMeta(shared, false)}},
	}
	message, err := NewMessage(instructions, payer, Hash{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message.AccountKeys[1] != shared || !message.IsWritable(1) {
		t.Fatalf("expected shared account to be promoted to writable")
	}
}

func TestNewMessageRequiresInstructionsAndPayer(t *testing.T) {
	if _, err := NewMessage(nil, keypair.MustGenerate().Pubkey(), Hash{}); !errors.Is(err, ErrNoInstructions) {
		t.Fatalf("expected ErrNoInstructions, got %v", err)
	}
	owner := keypair.MustGenerate().Pubkey()
	if _, err := NewMessage([]Instruction{testInstruction(owner, owner)}, pubkey.Pubkey{}, Hash{}); !errors.Is(err, ErrNoPayer) {
		t.Fatalf("expected ErrNoPayer, got %v", err)
	}
}

func TestSignedTransactionRoundTrip(t *testing.T) {
	owner := keypair.MustGenerate()
	vault := keypair.MustGenerate().Pubkey()

	tx, err := NewSignedWithPayer(
		[]Instruction{testInstruction(owner.Pubkey(), vault)},
		owner.Pubkey(),
		[]Signer{owner},
		Hash{1, 2, 3},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	signature := tx.Signature()
	if !keypair.Verify(owner.Pubkey(), tx.Message.Serialize(), signature[:]) {
		t.Fatal("expected payer signature to verify")
	}

	decoded, err := Deserialize(tx.Serialize())
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded.Signature() != tx.Signature() {
		t.Fatalf("signature mismatch after round trip")
	}
	if !bytes.Equal(decoded.Message.Serialize(), tx.Message.Serialize()) {
		t.Fatalf("message mismatch after round trip")
	}
}

func TestSignRequiresEveryRequiredSigner(t *testing.T) {
	owner := keypair.MustGenerate()
	attacker := keypair.MustGenerate()
	_, err := NewSignedWithPayer(
		[]Instruction{testInstruction(owner.Pubkey(), attacker.Pubkey())},
		owner.Pubkey(),
		[]Signer{attacker},
		Hash{},
	)
	if !errors.Is(err, ErrMissingSigner) {
		t.Fatalf("expected ErrMissingSigner, got %v", err)
	}

	_, err = NewSignedWithPayer(
		[]Instruction{testInstruction(owner.Pubkey(), attacker.Pubkey())},
		owner.Pubkey(),
		[]Signer{owner, attacker},
		Hash{},
	)
	if !errors.Is(err, ErrUnexpectedSigner) {
		t.Fatalf("expected ErrUnexpectedSigner, got %v", err)
	}
}

func TestCompactU16Encoding(t *testing.T) {
	cases := []struct {
		value    int
		expected []byte
	}{
		{0, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{0xffff, []byte{0xff, 0xff, 0x03}},
	}
	for _, tc := range cases {
		encoded := appendCompactU16(nil, tc.value)
		if !bytes.Equal(encoded, tc.expected) {
			t.Fatalf("encoding %d: expected %x, got %x", tc.value, tc.expected, encoded)
		}
		decoded, err := (&reader{data: encoded}).readCompactU16()
		if err != nil {
			t.Fatalf("decoding %d: unexpected error: %v", tc.value, err)
		}
		if decoded != tc.value {
			t.Fatalf("decoding: expected %d, got %d", tc.value, decoded)
		}
	}
}

func TestDeserializeRejectsMalformed(t *testing.T) {
	owner := keypair.MustGenerate()
	tx, err := NewSignedWithPayer(
		[]Instruction{testInstruction(owner.Pubkey(), keypair.MustGenerate().Pubkey())},
		owner.Pubkey(),
		[]Signer{owner},
		Hash{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw := tx.Serialize()

	if _, err := Deserialize(raw[:len(raw)-1]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, err := Deserialize(append(raw, 0)); !errors.Is(err, ErrTrailingBytes) {
		t.Fatalf("expected ErrTrailingBytes, got %v", err)
	}
	if _, err := Deserialize(nil); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for empty input, got %v", err)
	}
}

func TestSanitizeRejectsDuplicateAccountKeys(t *testing.T) {
	owner := keypair.MustGenerate()
	message, err := NewMessage(
		[]Instruction{testInstruction(owner.Pubkey(), keypair.MustGenerate().Pubkey())},
		owner.Pubkey(),
		Hash{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := message.Sanitize(); err != nil {
		t.Fatalf("expected compiled message to sanitize, got %v", err)
	}

	message.AccountKeys[1] = message.AccountKeys[0]
	if err := message.Sanitize(); !errors.Is(err, ErrDuplicateAccountKey) {
		t.Fatalf("expected ErrDuplicateAccountKey, got %v", err)
	}
	if _, err := DeserializeMessage(message.Serialize()); !errors.Is(err, ErrDuplicateAccountKey) {
		t.Fatalf("expected ErrDuplicateAccountKey from decode, got %v", err)
	}
}

func TestParseHash(t *testing.T) {
	hash := Hash{4, 5, 6}
	parsed, err := ParseHash(hash.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != hash {
		t.Fatalf("expected %s, got %s", hash, parsed)
	}
	if _, err := ParseHash("2"); err == nil {
		t.Fatal("expected error for short hash")
	}
}
