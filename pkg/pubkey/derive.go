package pubkey

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

var programDerivedAddressMarker = []byte("ProgramDerivedAddress")

// IsOnCurve reports whether raw decompresses to a point on edwards25519.
// Non-canonical encodings of valid points count as on the curve.
func IsOnCurve(raw []byte) bool {
	if len(raw) != Size {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(raw)
	return err == nil
}

// CreateProgramAddress hashes seeds under programID into an address that no
// private key can sign for. Candidates on the curve are rejected with
// ErrInvalidSeeds.
func CreateProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, error) {
	if len(seeds) > MaxSeeds {
		return Pubkey{}, ErrTooManySeeds
	}

	hasher := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Pubkey{}, ErrMaxSeedLengthExceeded
		}
		hasher.Write(seed)
	}
	hasher.Write(programID[:])
	hasher.Write(programDerivedAddressMarker)

	var candidate Pubkey
	copy(candidate[:], hasher.Sum(nil))
	if IsOnCurve(candidate[:]) {
		return Pubkey{}, ErrInvalidSeeds
	}
	return candidate, nil
}

// FindProgramAddress searches bumps from 255 down to 0 and returns the first
// off-curve address together with its bump.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return Pubkey{}, 0, ErrTooManySeeds
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bumpSeed := []byte{0}
	withBump[len(seeds)] = bumpSeed

	for bump := 255; bump >= 0; bump-- {
		bumpSeed[0] = uint8(bump)
		address, err := CreateProgramAddress(withBump, programID)
		switch err {
		case nil:
			return address, uint8(bump), nil
		case ErrInvalidSeeds:
			continue
		default:
			return Pubkey{}, 0, err
		}
	}

	return Pubkey{}, 0, ErrAddressSpaceExhausted
}
