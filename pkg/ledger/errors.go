package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrBlockhashNotFound        = errors.New("blockhash not found")
	ErrAlreadyProcessed         = errors.New("transaction already processed")
	ErrSignatureFailure         = errors.New("signature verification failed")
	ErrAccountNotFound          = errors.New("fee payer account not found")
	ErrInvalidAccountForFee     = errors.New("fee payer cannot pay fees")
	ErrInsufficientFundsForFee  = errors.New("insufficient funds for fee")
	ErrInsufficientFundsForRent = errors.New("insufficient funds for rent")
	ErrInvalidSnapshot          = errors.New("invalid snapshot")
)

// TransactionError reports the instruction that aborted a transaction.
type TransactionError struct {
	InstructionIndex int
	Err              error
}

// Error reports the failing instruction and its cause.
func (e *TransactionError) Error() string {
	return fmt.Sprintf("instruction %d failed: %v", e.InstructionIndex, e.Err)
}

// Unwrap returns the program or runtime error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}
