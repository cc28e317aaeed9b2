package keypair

import (
	"bytes"
	"testing"
)

func TestGenerateSignVerify(t *testing.T) {
	kp, err := Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	message := []byte("deposit")
	signature := kp.Sign(message)
	if len(signature) != 64 {
		t.Fatalf("expected 64-byte signature, got %d", len(signature))
	}
	if !Verify(kp.Pubkey(), message, signature) {
		t.Fatal("expected signature to verify")
	}
	if Verify(kp.Pubkey(), []byte("withdraw"), signature) {
		t.Fatal("signature must not verify for another message")
	}
}

func TestVerifyRejectsOtherSigner(t *testing.T) {
	owner := MustGenerate()
	attacker := MustGenerate()
	message := []byte("withdraw")
	if Verify(owner.Pubkey(), message, attacker.Sign(message)) {
		t.Fatal("signature from another key must not verify")
	}
	if Verify(owner.Pubkey(), message, []byte{1, 2, 3}) {
		t.Fatal("short signature must not verify")
	}
}

func TestFromSeedIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	left, err := FromSeed(seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	right, err := FromSeed(seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.Pubkey() != right.Pubkey() {
		t.Fatalf("expected same pubkey for same seed")
	}
	if _, err := FromSeed([]byte{1}); err == nil {
		t.Fatal("expected error for short seed")
	}
}

func TestFromStringRoundTrip(t *testing.T) {
	kp := MustGenerate()
	parsed, err := FromString(kp.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Pubkey() != kp.Pubkey() {
		t.Fatalf("expected %s, got %s", kp.Pubkey(), parsed.Pubkey())
	}

	raw, err := FromString(kp.SeedHex())
	if err != nil {
		t.Fatalf("unexpected error for raw hex: %v", err)
	}
	if raw.Pubkey() != kp.Pubkey() {
		t.Fatalf("expected raw hex to parse to the same key")
	}
}

func TestFromStringRejectsEmpty(t *testing.T) {
	if _, err := FromString("  "); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := FromString("not-a-key"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}
