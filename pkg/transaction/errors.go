package transaction

import "errors"

var (
	ErrNoInstructions         = errors.New("transaction: no instructions")
	ErrNoPayer                = errors.New("transaction: fee payer is required")
	ErrTooManyAccounts        = errors.New("transaction: too many account keys")
	ErrMissingSigner          = errors.New("transaction: missing required signer")
	ErrUnexpectedSigner       = errors.New("transaction: signer is not required by message")
	ErrTruncated              = errors.New("transaction: truncated data")
	ErrInvalidLength          = errors.New("transaction: invalid compact length")
	ErrTrailingBytes          = errors.New("transaction: trailing bytes")
	ErrInvalidHeader          = errors.New("transaction: invalid message header")
	ErrInvalidAccountIndex    = errors.New("transaction: account index out of range")
	ErrSignatureCountMismatch = errors.New("transaction: signature count does not match header")
	ErrDuplicateAccountKey    = errors.New("transaction: account key listed more than once")
)
