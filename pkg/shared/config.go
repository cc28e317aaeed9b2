package shared

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashgraph-online/custody-vault-go/pkg/ledger"
	"github.com/hashgraph-online/custody-vault-go/pkg/pubkey"
	"github.com/hashgraph-online/custody-vault-go/pkg/runtime"
	"github.com/hashgraph-online/custody-vault-go/pkg/vault"
)

const (
	EnvConfigPath          = "CUSTODY_CONFIG"
	EnvFeePerSignature     = "CUSTODY_FEE_PER_SIGNATURE"
	EnvLamportsPerByteYear = "CUSTODY_LAMPORTS_PER_BYTE_YEAR"
	EnvExemptionThreshold  = "CUSTODY_EXEMPTION_THRESHOLD"
	EnvBlockhashQueueSize  = "CUSTODY_BLOCKHASH_QUEUE_SIZE"
	EnvMaxCallDepth        = "CUSTODY_MAX_CALL_DEPTH"
	EnvLogLevel            = "CUSTODY_LOG_LEVEL"
	EnvLogConsole          = "CUSTODY_LOG_CONSOLE"
	EnvRPCListen           = "CUSTODY_RPC_LISTEN"
	EnvRPCAirdropLimit     = "CUSTODY_RPC_AIRDROP_LIMIT"
	EnvVaultProgramID      = "CUSTODY_VAULT_PROGRAM_ID"
	EnvOwnerKey            = "CUSTODY_OWNER_KEY"
)

const (
	DefaultRPCListen       = "127.0.0.1:8899"
	DefaultRPCAirdropLimit = 100 * LamportsPerSOL
	DefaultLogLevel        = "info"
)

type LedgerConfig struct {
	FeePerSignature     uint64  `toml:"fee_per_signature"`
	LamportsPerByteYear uint64  `toml:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `toml:"exemption_threshold"`
	BlockhashQueueSize  int     `toml:"blockhash_queue_size"`
	MaxCallDepth        int     `toml:"max_call_depth"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

type RPCConfig struct {
	Listen       string `toml:"listen"`
	AirdropLimit uint64 `toml:"airdrop_limit_lamports"`
}

type VaultConfig struct {
	ProgramID string `toml:"program_id"`
}

// Config is the custody node configuration, one TOML table per section.
type Config struct {
	Ledger LedgerConfig `toml:"ledger"`
	Log    LogConfig    `toml:"log"`
	RPC    RPCConfig    `toml:"rpc"`
	Vault  VaultConfig  `toml:"vault"`
}

func DefaultConfig() Config {
	defaults := ledger.DefaultConfig()
	return Config{
		Ledger: LedgerConfig{
			FeePerSignature:     defaults.FeePerSignature,
			LamportsPerByteYear: defaults.Rent.LamportsPerByteYear,
			ExemptionThreshold:  defaults.Rent.ExemptionThreshold,
			BlockhashQueueSize:  defaults.BlockhashQueueSize,
			MaxCallDepth:        defaults.MaxCallDepth,
		},
		Log: LogConfig{
			Level:   DefaultLogLevel,
			Console: true,
		},
		RPC: RPCConfig{
			Listen:       DefaultRPCListen,
			AirdropLimit: DefaultRPCAirdropLimit,
		},
		Vault: VaultConfig{
			ProgramID: vault.ProgramID.String(),
		},
	}
}

// LoadConfig overlays the TOML file at path on DefaultConfig. Keys absent
// from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load custody config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, fmt.Errorf("load custody config: unknown keys %s", strings.Join(keys, ", "))
	}

	cfg.normalize()
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv loads CUSTODY_CONFIG when set, then applies CUSTODY_*
// overrides. A .env file is read first if one is found.
func ConfigFromEnv() (Config, error) {
	loadDotEnvIfPresent()

	cfg := DefaultConfig()
	if path := firstNonEmptyEnv(EnvConfigPath); path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if err := errors.Join(
		envUint64(EnvFeePerSignature, &cfg.Ledger.FeePerSignature),
		envUint64(EnvLamportsPerByteYear, &cfg.Ledger.LamportsPerByteYear),
		envFloat(EnvExemptionThreshold, &cfg.Ledger.ExemptionThreshold),
		envInt(EnvBlockhashQueueSize, &cfg.Ledger.BlockhashQueueSize),
		envInt(EnvMaxCallDepth, &cfg.Ledger.MaxCallDepth),
		envBool(EnvLogConsole, &cfg.Log.Console),
		envUint64(EnvRPCAirdropLimit, &cfg.RPC.AirdropLimit),
	); err != nil {
		return Config{}, err
	}
	envString(EnvLogLevel, &cfg.Log.Level)
	envString(EnvRPCListen, &cfg.RPC.Listen)
	envString(EnvVaultProgramID, &cfg.Vault.ProgramID)

	cfg.normalize()
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.RPC.Listen = strings.TrimSpace(c.RPC.Listen)
	c.Vault.ProgramID = strings.TrimSpace(c.Vault.ProgramID)
}

// ValidateConfig reports every invalid field at once.
func ValidateConfig(cfg Config) error {
	var problems []error

	if cfg.Ledger.LamportsPerByteYear == 0 {
		problems = append(problems, fmt.Errorf("ledger.lamports_per_byte_year must be greater than zero"))
	}
	if cfg.Ledger.ExemptionThreshold <= 0 {
		problems = append(problems, fmt.Errorf("ledger.exemption_threshold must be greater than zero"))
	}
	if cfg.Ledger.BlockhashQueueSize <= 0 {
		problems = append(problems, fmt.Errorf("ledger.blockhash_queue_size must be greater than zero"))
	}
	if cfg.Ledger.MaxCallDepth <= 0 {
		problems = append(problems, fmt.Errorf("ledger.max_call_depth must be greater than zero"))
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		problems = append(problems, err)
	}
	if _, _, err := net.SplitHostPort(cfg.RPC.Listen); err != nil {
		problems = append(problems, fmt.Errorf("rpc.listen %q is not host:port: %w", cfg.RPC.Listen, err))
	}
	if _, err := pubkey.ParsePubkey(cfg.Vault.ProgramID); err != nil {
		problems = append(problems, fmt.Errorf("vault.program_id: %w", err))
	}

	return errors.Join(problems...)
}

// LedgerSettings converts the [ledger] table into ledger settings.
func (c Config) LedgerSettings() ledger.Config {
	return ledger.Config{
		FeePerSignature: c.Ledger.FeePerSignature,
		Rent: runtime.Rent{
			LamportsPerByteYear:    c.Ledger.LamportsPerByteYear,
			ExemptionThreshold:     c.Ledger.ExemptionThreshold,
			AccountStorageOverhead: runtime.DefaultAccountStorageOverhead,
		},
		BlockhashQueueSize: c.Ledger.BlockhashQueueSize,
		MaxCallDepth:       c.Ledger.MaxCallDepth,
	}
}

// VaultProgramID returns the address the custody program is registered at.
func (c Config) VaultProgramID() (pubkey.Pubkey, error) {
	return pubkey.ParsePubkey(c.Vault.ProgramID)
}
