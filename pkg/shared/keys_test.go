package shared

import (
	"encoding/hex"
	"testing"

	"github.com/hashgraph-online/custody-vault-go/pkg/keypair"
	"github.com/mr-tron/base58"
)

func TestParsePrivateKeyFormats(t *testing.T) {
	original := keypair.MustGenerate()

	fromDER, err := ParsePrivateKey(original.String())
	if err != nil || fromDER.Pubkey() != original.Pubkey() {
		t.Fatalf("DER round trip failed: %v", err)
	}

	fromHex, err := ParsePrivateKey(original.SeedHex())
	if err != nil || fromHex.Pubkey() != original.Pubkey() {
		t.Fatalf("hex seed round trip failed: %v", err)
	}

	seed, err := hex.DecodeString(original.SeedHex())
	if err != nil {
		t.Fatalf("seed hex: %v", err)
	}
	secret := append(seed, original.Pubkey().Bytes()...)
	fromBase58, err := ParsePrivateKey(base58.Encode(secret))
	if err != nil || fromBase58.Pubkey() != original.Pubkey() {
		t.Fatalf("base58 secret round trip failed: %v", err)
	}

	secret[63] ^= 0xff
	if _, err := ParsePrivateKey(base58.Encode(secret)); err == nil {
		t.Fatal("expected mismatched public half to fail")
	}
}

func TestParsePrivateKeyInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "notavalidkey", "0xinvalidhex"} {
		if _, err := ParsePrivateKey(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestOwnerKeyFromEnv(t *testing.T) {
	resetCustodyEnv(t)
	if _, err := OwnerKeyFromEnv(); err == nil {
		t.Fatal("expected missing key error")
	}

	owner := keypair.MustGenerate()
	t.Setenv(EnvOwnerKey, owner.String())
	parsed, err := OwnerKeyFromEnv()
	if err != nil || parsed.Pubkey() != owner.Pubkey() {
		t.Fatalf("unexpected owner key: %v", err)
	}
}
