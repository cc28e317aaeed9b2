package pubkey

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Size is the byte length of a ledger identity.
const Size = 32

type Pubkey [Size]byte

var (
	// SystemProgramID is the identity of the built-in system program.
	SystemProgramID = MustParse("11111111111111111111111111111111")
)

// ParsePubkey decodes a base58 identity.
func ParsePubkey(raw string) (Pubkey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return Pubkey{}, fmt.Errorf("pubkey cannot be empty")
	}

	decoded, err := base58.Decode(candidate)
	if err != nil {
		return Pubkey{}, fmt.Errorf("invalid base58 pubkey %q: %w", raw, err)
	}
	if len(decoded) != Size {
		return Pubkey{}, fmt.Errorf("invalid pubkey length %d for %q", len(decoded), raw)
	}

	var key Pubkey
	copy(key[:], decoded)
	return key, nil
}

// MustParse is ParsePubkey for package-level constants.
func MustParse(raw string) Pubkey {
	key, err := ParsePubkey(raw)
	if err != nil {
		panic(err)
	}
	return key
}

// FromBytes copies a 32-byte slice into a Pubkey.
func FromBytes(raw []byte) (Pubkey, error) {
	if len(raw) != Size {
		return Pubkey{}, fmt.Errorf("invalid pubkey length %d", len(raw))
	}
	var key Pubkey
	copy(key[:], raw)
	return key, nil
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, p[:])
	return out
}

func (p Pubkey) Hex() string {
	return hex.EncodeToString(p[:])
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

func (p Pubkey) Equals(other Pubkey) bool {
	return p == other
}

// Compare orders identities bytewise.
func (p Pubkey) Compare(other Pubkey) int {
	return bytes.Compare(p[:], other[:])
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
