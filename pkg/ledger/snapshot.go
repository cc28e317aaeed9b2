package ledger

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
)

type snapshot struct {
	Slot        uint64                    `json:"slot"`
	Blockhashes []string                  `json:"blockhashes"`
	Accounts    map[pubkey.Pubkey]Account `json:"accounts"`
	Processed   map[string]uint64         `json:"processed"`
}

// WriteSnapshot writes accounts, slot, recent blockhashes and processed
// signatures as brotli-compressed JSON. Registered programs are code and are
// not included.
func (l *Ledger) WriteSnapshot(w io.Writer) error {
	l.mutex.RLock()
	state := snapshot{
		Slot:        l.slot,
		Blockhashes: make([]string, 0, len(l.blockhashes)),
		Accounts:    make(map[pubkey.Pubkey]Account, len(l.accounts)),
		Processed:   make(map[string]uint64, len(l.processed)),
	}
	for signature, slot := range l.processed {
		state.Processed[signature.String()] = slot
	}
	for _, hash := range l.blockhashes {
		state.Blockhashes = append(state.Blockhashes, hash.String())
	}
	for key, account := range l.accounts {
		if _, isProgram := l.programs[key]; isProgram {
			continue
		}
		state.Accounts[key] = account.clone()
	}
	l.mutex.RUnlock()

	writer := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if err := json.NewEncoder(writer).Encode(state); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}

// RestoreSnapshot replaces accounts, slot, blockhashes and processed
// signatures with the contents of a snapshot. Registered programs stay
// registered. Signatures processed before the oldest restored blockhash are
// dropped since no transaction using them can be accepted again.
func (l *Ledger) RestoreSnapshot(r io.Reader) error {
	var state snapshot
	if err := json.NewDecoder(brotli.NewReader(r)).Decode(&state); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if len(state.Blockhashes) == 0 {
		return fmt.Errorf("%w: no blockhashes", ErrInvalidSnapshot)
	}
	blockhashes := make([]transaction.Hash, 0, len(state.Blockhashes))
	for _, raw := range state.Blockhashes {
		hash, err := transaction.ParseHash(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		blockhashes = append(blockhashes, hash)
	}

	var oldestSlot uint64
	if window := uint64(len(blockhashes) - 1); state.Slot > window {
		oldestSlot = state.Slot - window
	}
	processed := make(map[transaction.Signature]uint64, len(state.Processed))
	for raw, slot := range state.Processed {
		signature, err := transaction.ParseSignature(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if slot < oldestSlot {
			continue
		}
		processed[signature] = slot
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	accounts := make(map[pubkey.Pubkey]Account, len(state.Accounts)+len(l.programs))
	for key, account := range state.Accounts {
		if account.Lamports == 0 {
			continue
		}
		accounts[key] = account
	}
	for key := range l.programs {
		accounts[key] = l.accounts[key]
	}

	l.accounts = accounts
	l.slot = state.Slot
	l.blockhashes = blockhashes
	l.processed = processed
	l.logger.Info().
		Uint64("slot", l.slot).
		Int("accounts", len(accounts)).
		Int("processed", len(processed)).
		Msg("snapshot restored")
	return nil
}
