package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/system"
	"github.com/hashgraph-online/custody-vault-go/pkg/transaction"
	"github.com/rs/zerolog"
)

// NativeLoaderID owns the accounts of built-in programs.
var NativeLoaderID = pubkey.MustParse("NativeLoader1111111111111111111111111111111")

const (
	DefaultFeePerSignature    uint64 = 5000
	DefaultBlockhashQueueSize        = 150
	DefaultMaxCallDepth              = 4
)

// Account is the persisted state of one ledger address.
type Account struct {
	Lamports   uint64        `json:"lamports"`
	Data       []byte        `json:"data"`
	Owner      pubkey.Pubkey `json:"owner"`
	Executable bool          `json:"executable"`
}

func (a Account) clone() Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	a.Data = data
	return a
}

// Config holds the fee, rent and replay-window settings of a ledger.
type Config struct {
	FeePerSignature    uint64
	Rent               runtime.Rent
	BlockhashQueueSize int
	MaxCallDepth       int
}

// DefaultConfig returns the settings New uses when none are given.
func DefaultConfig() Config {
	return Config{
		FeePerSignature:    DefaultFeePerSignature,
		Rent:               runtime.DefaultRent(),
		BlockhashQueueSize: DefaultBlockhashQueueSize,
		MaxCallDepth:       DefaultMaxCallDepth,
	}
}

// Option configures a Ledger in New.
type Option func(*Ledger)

// WithConfig replaces the default settings. Zero queue size, call depth and
// rent fall back to their defaults.
func WithConfig(config Config) Option {
	return func(l *Ledger) {
		l.config = config
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithMetrics records transaction outcomes into metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(l *Ledger) {
		l.metrics = metrics
	}
}

// Ledger is an in-process account store and transaction executor. All
// transactions are serialized by a single lock, so two transactions that
// write the same account never interleave.
type Ledger struct {
	mutex    sync.RWMutex
	config   Config
	logger   zerolog.Logger
	metrics  *Metrics
	accounts map[pubkey.Pubkey]Account
	programs map[pubkey.Pubkey]runtime.Program

	slot        uint64
	blockhashes []transaction.Hash
	processed   map[transaction.Signature]uint64
}

// New creates a ledger with the system program registered.
func New(options ...Option) *Ledger {
	ledger := &Ledger{
		config:    DefaultConfig(),
		logger:    zerolog.Nop(),
		accounts:  map[pubkey.Pubkey]Account{},
		programs:  map[pubkey.Pubkey]runtime.Program{},
		processed: map[transaction.Signature]uint64{},
	}
	for _, option := range options {
		option(ledger)
	}
	if ledger.config.BlockhashQueueSize <= 0 {
		ledger.config.BlockhashQueueSize = DefaultBlockhashQueueSize
	}
	if ledger.config.MaxCallDepth <= 0 {
		ledger.config.MaxCallDepth = DefaultMaxCallDepth
	}
	if ledger.config.Rent == (runtime.Rent{}) {
		ledger.config.Rent = runtime.DefaultRent()
	}

	ledger.blockhashes = []transaction.Hash{nextBlockhash(transaction.Hash{}, 0)}
	ledger.AddProgram(system.ProgramID, system.Program{})
	return ledger
}

func nextBlockhash(previous transaction.Hash, slot uint64) transaction.Hash {
	var slotBytes [8]byte
	binary.LittleEndian.PutUint64(slotBytes[:], slot)
	hasher := sha256.New()
	hasher.Write(previous[:])
	hasher.Write(slotBytes[:])
	var hash transaction.Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// Config returns the effective settings.
func (l *Ledger) Config() Config {
	return l.config
}

// AddProgram registers program under id and stores an executable account
// for it.
func (l *Ledger) AddProgram(id pubkey.Pubkey, program runtime.Program) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.programs[id] = program
	l.accounts[id] = Account{
		Lamports:   1,
		Owner:      NativeLoaderID,
		Executable: true,
	}
	l.logger.Debug().Str("program_id", id.String()).Msg("program registered")
}

// Airdrop credits lamports to an address outside of any transaction.
func (l *Ledger) Airdrop(to pubkey.Pubkey, lamports uint64) error {
	if lamports == 0 {
		return fmt.Errorf("airdrop amount must be greater than zero")
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	account, exists := l.accounts[to]
	if !exists {
		account = Account{Owner: system.ProgramID}
	}
	if account.Lamports > math.MaxUint64-lamports {
		return runtime.ErrArithmeticOverflow
	}
	account.Lamports += lamports
	l.accounts[to] = account

	l.logger.Debug().
		Str("account", to.String()).
		Uint64("lamports", lamports).
		Msg("airdrop")
	return nil
}

// GetAccount returns a copy of the stored account.
func (l *Ledger) GetAccount(key pubkey.Pubkey) (Account, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	account, exists := l.accounts[key]
	if !exists {
		return Account{}, false
	}
	return account.clone(), true
}

// Balance returns the lamports held at key, zero when absent.
func (l *Ledger) Balance(key pubkey.Pubkey) uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.accounts[key].Lamports
}

// SetAccount overwrites stored state. Zero-lamport accounts are removed.
func (l *Ledger) SetAccount(key pubkey.Pubkey, account Account) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if account.Lamports == 0 {
		delete(l.accounts, key)
		return
	}
	l.accounts[key] = account.clone()
}

// AccountCount returns the number of stored accounts.
func (l *Ledger) AccountCount() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.accounts)
}

// Slot returns the current slot. It advances once per processed transaction.
func (l *Ledger) Slot() uint64 {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.slot
}

// LatestBlockhash returns the blockhash new transactions should reference.
func (l *Ledger) LatestBlockhash() transaction.Hash {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.blockhashes[len(l.blockhashes)-1]
}

// ExpireBlockhash advances to a new slot and blockhash.
func (l *Ledger) ExpireBlockhash() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.advanceSlot()
}

func (l *Ledger) advanceSlot() {
	l.slot++
	latest := nextBlockhash(l.blockhashes[len(l.blockhashes)-1], l.slot)
	l.blockhashes = append(l.blockhashes, latest)
	if overflow := len(l.blockhashes) - l.config.BlockhashQueueSize; overflow > 0 {
		l.blockhashes = append([]transaction.Hash(nil), l.blockhashes[overflow:]...)
	}
}

func (l *Ledger) isRecentBlockhash(hash transaction.Hash) bool {
	for _, candidate := range l.blockhashes {
		if candidate == hash {
			return true
		}
	}
	return false
}

// MinimumBalanceForRentExemption returns the smallest balance an account
// holding dataLen bytes may keep.
func (l *Ledger) MinimumBalanceForRentExemption(dataLen int) uint64 {
	return l.config.Rent.MinimumBalance(dataLen)
}
