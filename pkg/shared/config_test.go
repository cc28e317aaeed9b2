package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashgraph-online/custody-vault-go/pkg/vault"
	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custody.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	settings := cfg.LedgerSettings()
	if settings.FeePerSignature != 5000 || settings.Rent.MinimumBalance(0) != 890_880 {
		t.Fatalf("unexpected ledger defaults: %+v", settings)
	}
	programID, err := cfg.VaultProgramID()
	if err != nil || programID != vault.ProgramID {
		t.Fatalf("unexpected program id %s (%v)", programID, err)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[ledger]
fee_per_signature = 10000

[log]
level = "DEBUG"
console = false

[rpc]
listen = "0.0.0.0:9900"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Ledger.FeePerSignature != 10000 {
		t.Fatalf("expected fee override, got %d", cfg.Ledger.FeePerSignature)
	}
	if cfg.Ledger.BlockhashQueueSize != DefaultConfig().Ledger.BlockhashQueueSize {
		t.Fatalf("expected queue size default to survive")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Console {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if cfg.RPC.Listen != "0.0.0.0:9900" || cfg.RPC.AirdropLimit != DefaultRPCAirdropLimit {
		t.Fatalf("unexpected rpc config %+v", cfg.RPC)
	}
}

func TestLoadConfigRejectsUnknownAndInvalid(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "[ledger]\nfee = 1\n")); err == nil || !strings.Contains(err.Error(), "ledger.fee") {
		t.Fatalf("expected unknown key error, got %v", err)
	}

	_, err := LoadConfig(writeConfig(t, `
[ledger]
blockhash_queue_size = 0

[log]
level = "loud"

[vault]
program_id = "not-base58!"
`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"blockhash_queue_size", "log.level", "vault.program_id"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %v", fragment, err)
		}
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	resetCustodyEnv(t)
	t.Setenv(EnvConfigPath, writeConfig(t, "[rpc]\nlisten = \"127.0.0.1:7000\"\n"))
	t.Setenv(EnvFeePerSignature, "7000")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogConsole, "false")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RPC.Listen != "127.0.0.1:7000" {
		t.Fatalf("expected listen from file, got %q", cfg.RPC.Listen)
	}
	if cfg.Ledger.FeePerSignature != 7000 || cfg.Log.Level != "warn" || cfg.Log.Console {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestConfigFromEnvRejectsBadNumbers(t *testing.T) {
	resetCustodyEnv(t)
	t.Setenv(EnvFeePerSignature, "-1")
	t.Setenv(EnvMaxCallDepth, "deep")

	_, err := ConfigFromEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), EnvFeePerSignature) || !strings.Contains(err.Error(), EnvMaxCallDepth) {
		t.Fatalf("expected both variables in error, got %v", err)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := newLogger(LogConfig{Level: "warn"}, "custody", &buffer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", logger.GetLevel())
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if strings.Contains(buffer.String(), "hidden") || !strings.Contains(buffer.String(), `"app":"custody"`) {
		t.Fatalf("unexpected log output %q", buffer.String())
	}

	if _, err := NewLogger(LogConfig{Level: "chatty"}, "custody"); err == nil {
		t.Fatal("expected invalid level error")
	}
}
