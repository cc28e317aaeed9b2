package runtime

import "errors"

var (
	ErrMissingRequiredSignature    = errors.New("missing required signature for instruction")
	ErrIncorrectProgramID          = errors.New("incorrect program id for instruction")
	ErrNotEnoughAccountKeys        = errors.New("insufficient account keys for instruction")
	ErrInvalidInstructionData      = errors.New("invalid instruction data")
	ErrInvalidAccountData          = errors.New("invalid account data for instruction")
	ErrInsufficientFunds           = errors.New("insufficient funds for instruction")
	ErrAccountAlreadyInUse         = errors.New("account already in use")
	ErrInvalidAccountOwner         = errors.New("invalid account owner")
	ErrInvalidSeeds                = errors.New("provided seeds do not result in a valid address")
	ErrPrivilegeEscalation         = errors.New("cross-program invocation with unauthorized signer or writable account")
	ErrCallDepth                   = errors.New("cross-program invocation call depth too deep")
	ErrUnsupportedProgramID        = errors.New("unsupported program id")
	ErrExternalAccountLamportSpend = errors.New("instruction spent from the balance of an account it does not own")
	ErrReadonlyLamportChange       = errors.New("instruction changed the balance of a read-only account")
	ErrExternalAccountDataModified = errors.New("instruction modified data of an account it does not own")
	ErrReadonlyDataModified        = errors.New("instruction modified data of a read-only account")
	ErrModifiedProgramID           = errors.New("instruction illegally modified the program id of an account")
	ErrUnbalancedInstruction       = errors.New("sum of account balances before and after instruction do not match")
	ErrArithmeticOverflow          = errors.New("arithmetic overflow")
)

// CodedError is implemented by program-specific errors that carry a stable
// numeric code for clients.
type CodedError interface {
	error
	CustomCode() uint32
}

// CustomCode extracts the program-specific code from err, if any.
func CustomCode(err error) (uint32, bool) {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.CustomCode(), true
	}
	return 0, false
}
