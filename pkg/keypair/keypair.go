package keypair

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// Keypair is an ed25519 signer identity.
type Keypair struct {
	privateKey hedera.PrivateKey
	public     pubkey.Pubkey
}

// Generate creates a fresh random keypair.
func Generate() (*Keypair, error) {
	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 private key: %w", err)
	}
	return fromPrivateKey(privateKey)
}

// MustGenerate is Generate for tests and examples.
func MustGenerate() *Keypair {
	kp, err := Generate()
	if err != nil {
		panic(err)
	}
	return kp
}

// FromSeed builds a keypair from a 32-byte ed25519 seed.
func FromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != 32 {
		return nil, fmt.Errorf("ed25519 seed must be 32 bytes, got %d", len(seed))
	}
	privateKey, err := hedera.PrivateKeyFromBytesEd25519(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid ed25519 seed: %w", err)
	}
	return fromPrivateKey(privateKey)
}

// FromString parses a DER-encoded or raw hex ed25519 private key.
func FromString(raw string) (*Keypair, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}

	privateKey, err := hedera.PrivateKeyFromStringEd25519(candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ed25519 private key: %w", err)
	}
	return fromPrivateKey(privateKey)
}

func fromPrivateKey(privateKey hedera.PrivateKey) (*Keypair, error) {
	publicBytes := privateKey.PublicKey().BytesRaw()
	public, err := pubkey.FromBytes(publicBytes)
	if err != nil {
		return nil, fmt.Errorf("unexpected ed25519 public key: %w", err)
	}
	return &Keypair{privateKey: privateKey, public: public}, nil
}

func (k *Keypair) Pubkey() pubkey.Pubkey {
	return k.public
}

// Sign returns the 64-byte ed25519 signature over message.
func (k *Keypair) Sign(message []byte) []byte {
	return k.privateKey.Sign(message)
}

// String returns the DER hex encoding of the private key.
func (k *Keypair) String() string {
	return k.privateKey.String()
}

// SeedHex returns the raw 32-byte seed as hex.
func (k *Keypair) SeedHex() string {
	return hex.EncodeToString(k.privateKey.BytesRaw())
}

// Verify checks an ed25519 signature made by signer over message.
func Verify(signer pubkey.Pubkey, message []byte, signature []byte) bool {
	if len(signature) != 64 {
		return false
	}
	publicKey, err := hedera.PublicKeyFromBytesEd25519(signer[:])
	if err != nil {
		return false
	}
	return publicKey.Verify(message, signature)
}
