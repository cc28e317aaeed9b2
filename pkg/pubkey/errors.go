package pubkey

import "errors"

var (
	ErrInvalidSeeds          = errors.New("pubkey: derived address lies on the ed25519 curve")
	ErrMaxSeedLengthExceeded = errors.New("pubkey: seed exceeds 32 bytes")
	ErrTooManySeeds          = errors.New("pubkey: too many seeds")
	ErrAddressSpaceExhausted = errors.New("pubkey: no off-curve bump found")
)
