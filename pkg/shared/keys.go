package shared

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hashgraph-online/custody-vault-go/pkg/keypair"
	"github.com/mr-tron/base58"
)

// ParsePrivateKey accepts a DER or raw hex ed25519 key, or a base58
// 64-byte secret key (seed followed by public key).
func ParsePrivateKey(raw string) (*keypair.Keypair, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}

	fromHex, hexErr := keypair.FromString(candidate)
	if hexErr == nil {
		return fromHex, nil
	}

	decoded, base58Err := base58.Decode(candidate)
	if base58Err == nil && len(decoded) == 64 {
		kp, err := keypair.FromSeed(decoded[:32])
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(kp.Pubkey().Bytes(), decoded[32:]) {
			return nil, fmt.Errorf("secret key public half does not match its seed")
		}
		return kp, nil
	}
	if base58Err == nil {
		base58Err = fmt.Errorf("decoded %d bytes, want 64", len(decoded))
	}

	return nil, fmt.Errorf(
		"failed to parse private key as hex/DER ed25519 (%v) or base58 secret key (%v)",
		hexErr,
		base58Err,
	)
}

// OwnerKeyFromEnv reads CUSTODY_OWNER_KEY.
func OwnerKeyFromEnv() (*keypair.Keypair, error) {
	loadDotEnvIfPresent()

	raw := firstNonEmptyEnv(EnvOwnerKey)
	if raw == "" {
		return nil, fmt.Errorf("%s is required", EnvOwnerKey)
	}
	return ParsePrivateKey(raw)
}
