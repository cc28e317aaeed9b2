// Package runtime defines the contract between the ledger and the programs
// it executes: the Program entry point, the AccountInfo view a program
// mutates, the Context used for logging and cross-program calls, and the
// rent schedule.
//
// A program may only debit lamports from, or change the data and owner of,
// accounts it owns. It may credit any writable account. These rules are
// enforced by the ledger after every instruction, which is what lets a
// program move value out of an address that has no private key.
package runtime
