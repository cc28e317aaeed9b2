package vault

// ErrorKind names a custody failure.
type ErrorKind string

const (
	KindMissingSignature           ErrorKind = "MissingSignature"
	KindInvalidAmount              ErrorKind = "InvalidAmount"
	KindAddressMismatch            ErrorKind = "AddressMismatch"
	KindAccountNotFound            ErrorKind = "AccountNotFound"
	KindVaultNotEmpty              ErrorKind = "VaultNotEmpty"
	KindVaultEmpty                 ErrorKind = "VaultEmpty"
	KindMalformedPayload           ErrorKind = "MalformedPayload"
	KindUnknownOperation           ErrorKind = "UnknownOperation"
	KindAddressSpaceExhausted      ErrorKind = "AddressSpaceExhausted"
	KindInsufficientDepositForRent ErrorKind = "InsufficientDepositForRent"
)

// Error is a custody program failure. Code is stable across releases and
// is what clients see as the program's custom error code.
type Error struct {
	Code    uint32
	Kind    ErrorKind
	Message string
}

// Error returns the failure message.
func (e *Error) Error() string {
	return e.Message
}

// CustomCode returns the program error code reported to clients.
func (e *Error) CustomCode() uint32 {
	return e.Code
}

// Is matches any *Error with the same code, so errors rebuilt from a code
// compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

var (
	ErrMissingSignature           = &Error{Code: 0, Kind: KindMissingSignature, Message: "owner did not sign the instruction"}
	ErrInvalidAmount              = &Error{Code: 1, Kind: KindInvalidAmount, Message: "deposit amount must be greater than zero"}
	ErrAddressMismatch            = &Error{Code: 2, Kind: KindAddressMismatch, Message: "vault address does not match the owner's derived address"}
	ErrAccountNotFound            = &Error{Code: 3, Kind: KindAccountNotFound, Message: "vault account not found"}
	ErrVaultNotEmpty              = &Error{Code: 4, Kind: KindVaultNotEmpty, Message: "vault already holds a deposit"}
	ErrVaultEmpty                 = &Error{Code: 5, Kind: KindVaultEmpty, Message: "vault holds nothing to withdraw"}
	ErrMalformedPayload           = &Error{Code: 6, Kind: KindMalformedPayload, Message: "malformed instruction payload"}
	ErrUnknownOperation           = &Error{Code: 7, Kind: KindUnknownOperation, Message: "unknown vault operation"}
	ErrAddressSpaceExhausted      = &Error{Code: 8, Kind: KindAddressSpaceExhausted, Message: "no off-curve vault address exists for owner"}
	ErrInsufficientDepositForRent = &Error{Code: 9, Kind: KindInsufficientDepositForRent, Message: "deposit is below the rent-exempt minimum"}
)

var errorsByCode = []*Error{
	ErrMissingSignature,
	ErrInvalidAmount,
	ErrAddressMismatch,
	ErrAccountNotFound,
	ErrVaultNotEmpty,
	ErrVaultEmpty,
	ErrMalformedPayload,
	ErrUnknownOperation,
	ErrAddressSpaceExhausted,
	ErrInsufficientDepositForRent,
}

// ErrorFromCode returns the sentinel for a custom error code.
func ErrorFromCode(code uint32) (*Error, bool) {
	if int(code) >= len(errorsByCode) {
		return nil, false
	}
	return errorsByCode[code], true
}
