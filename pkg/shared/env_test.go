package shared

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

var custodyEnvKeys = []string{
	EnvConfigPath,
	EnvFeePerSignature,
	EnvLamportsPerByteYear,
	EnvExemptionThreshold,
	EnvBlockhashQueueSize,
	EnvMaxCallDepth,
	EnvLogLevel,
	EnvLogConsole,
	EnvRPCListen,
	EnvRPCAirdropLimit,
	EnvVaultProgramID,
	EnvOwnerKey,
}

func resetCustodyEnv(t *testing.T) {
	t.Helper()
	dotenvLoadOnce = sync.Once{}
	dotenvLoadOnce.Do(func() {})
	for _, key := range custodyEnvKeys {
		t.Setenv(key, "")
	}
}

func TestIsValidEnvKey(t *testing.T) {
	valid := []string{
		"A", "ABC", "a_b", "MY_VAR", "foo_bar", "A1", "A_1_B",
		"CUSTODY_LOG_LEVEL", "_LEADING_UNDERSCORE",
	}
	for _, key := range valid {
		if !isValidEnvKey(key) {
			t.Fatalf("expected %q to be valid", key)
		}
	}
}

func TestIsValidEnvKeyInvalid(t *testing.T) {
	invalid := []string{
		"", "1ABC", "A B", "A-B", "A.B", "A=B",
	}
	for _, key := range invalid {
		if isValidEnvKey(key) {
			t.Fatalf("expected %q to be invalid", key)
		}
	}
}

func TestFirstNonEmptyEnv(t *testing.T) {
	os.Setenv("_TEST_FIRST_A", "")
	os.Setenv("_TEST_FIRST_B", "hello")
	defer os.Unsetenv("_TEST_FIRST_A")
	defer os.Unsetenv("_TEST_FIRST_B")

	result := firstNonEmptyEnv("_TEST_FIRST_A", "_TEST_FIRST_B")
	if result != "hello" {
		t.Fatalf("expected 'hello', got %q", result)
	}
}

func TestFirstNonEmptyEnvAllEmpty(t *testing.T) {
	result := firstNonEmptyEnv("_TEST_NONEXISTENT_1", "_TEST_NONEXISTENT_2")
	if result != "" {
		t.Fatalf("expected empty string, got %q", result)
	}
}

func TestFirstNonEmptyEnvTrimsWhitespace(t *testing.T) {
	os.Setenv("_TEST_WS", "   ")
	defer os.Unsetenv("_TEST_WS")

	result := firstNonEmptyEnv("_TEST_WS")
	if result != "" {
		t.Fatalf("expected empty string for whitespace-only, got %q", result)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("_TEST_DOTENV_LOAD=loaded_value\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_LOAD")

	result := loadDotEnvFile(envPath)
	if !result {
		t.Fatal("expected loadDotEnvFile to return true")
	}
	if os.Getenv("_TEST_DOTENV_LOAD") != "loaded_value" {
		t.Fatalf("expected 'loaded_value', got %q", os.Getenv("_TEST_DOTENV_LOAD"))
	}
}

func TestLoadDotEnvFileSkipsComments(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-comments")
	content := "# comment\n\n_TEST_DOTENV_COMMENT=yes\nexport _TEST_DOTENV_EXPORT=exported\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_COMMENT")
	defer os.Unsetenv("_TEST_DOTENV_EXPORT")

	result := loadDotEnvFile(envPath)
	if !result {
		t.Fatal("expected loadDotEnvFile to return true")
	}
	if os.Getenv("_TEST_DOTENV_COMMENT") != "yes" {
		t.Fatalf("expected 'yes', got %q", os.Getenv("_TEST_DOTENV_COMMENT"))
	}
	if os.Getenv("_TEST_DOTENV_EXPORT") != "exported" {
		t.Fatalf("expected 'exported', got %q", os.Getenv("_TEST_DOTENV_EXPORT"))
	}
}

func TestLoadDotEnvFileStripsQuotes(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-quotes")
	content := "_TEST_DOTENV_DQ=\"double-quoted\"\n_TEST_DOTENV_SQ='single-quoted'\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_DQ")
	defer os.Unsetenv("_TEST_DOTENV_SQ")

	result := loadDotEnvFile(envPath)
	if !result {
		t.Fatal("expected loadDotEnvFile to return true")
	}
	if os.Getenv("_TEST_DOTENV_DQ") != "double-quoted" {
		t.Fatalf("expected 'double-quoted', got %q", os.Getenv("_TEST_DOTENV_DQ"))
	}
	if os.Getenv("_TEST_DOTENV_SQ") != "single-quoted" {
		t.Fatalf("expected 'single-quoted', got %q", os.Getenv("_TEST_DOTENV_SQ"))
	}
}

func TestLoadDotEnvFileSkipsAlreadySet(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-skip")
	os.Setenv("_TEST_DOTENV_PREEXIST", "original")
	content := "_TEST_DOTENV_PREEXIST=overridden\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_PREEXIST")

	loadDotEnvFile(envPath)
	if os.Getenv("_TEST_DOTENV_PREEXIST") != "original" {
		t.Fatalf("expected 'original' (not overridden), got %q", os.Getenv("_TEST_DOTENV_PREEXIST"))
	}
}

func TestLoadDotEnvFileSkipsInvalidKeys(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-invalid-keys")
	content := "1BAD=value\n=nokey\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	result := loadDotEnvFile(envPath)
	if result {
		t.Fatal("expected loadDotEnvFile to return false for invalid keys")
	}
	if _, exists := os.LookupEnv("1BAD"); exists {
		t.Fatal("expected invalid key 1BAD to remain unset")
	}
}

func TestLoadDotEnvFileNonexistent(t *testing.T) {
	result := loadDotEnvFile("/tmp/_nonexistent_test_env_file_12345")
	if result {
		t.Fatal("expected loadDotEnvFile to return false for nonexistent file")
	}
}

func TestParseDotEnvLine(t *testing.T) {
	cases := []struct {
		line  string
		key   string
		value string
		ok    bool
	}{
		{"CUSTODY_RPC_LISTEN=0.0.0.0:8899", "CUSTODY_RPC_LISTEN", "0.0.0.0:8899", true},
		{"export CUSTODY_LOG_LEVEL = debug ", "CUSTODY_LOG_LEVEL", "debug", true},
		{"CUSTODY_OWNER_KEY='abc=def'", "CUSTODY_OWNER_KEY", "abc=def", true},
		{"# CUSTODY_LOG_LEVEL=trace", "", "", false},
		{"NOSEPARATOR", "", "", false},
	}
	for _, tc := range cases {
		key, value, ok := parseDotEnvLine(tc.line)
		if ok != tc.ok || key != tc.key || value != tc.value {
			t.Fatalf("parseDotEnvLine(%q) = %q, %q, %v", tc.line, key, value, ok)
		}
	}
}

func TestFindDotEnvWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}
	envPath := filepath.Join(root, "a", ".env")
	if err := os.WriteFile(envPath, []byte("X=1\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	found, ok := findDotEnv([]string{nested})
	if !ok || found != envPath {
		t.Fatalf("expected %q, got %q (%v)", envPath, found, ok)
	}
}

func TestLoadDotEnvExplicitPath(t *testing.T) {
	resetCustodyEnv(t)
	dotenvLoadOnce = sync.Once{}
	envPath := filepath.Join(t.TempDir(), "custody.env")
	if err := os.WriteFile(envPath, []byte("CUSTODY_RPC_LISTEN=0.0.0.0:9000\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv(EnvDotEnvPath, envPath)
	os.Unsetenv(EnvRPCListen)

	loadDotEnvIfPresent()
	if got := os.Getenv(EnvRPCListen); got != "0.0.0.0:9000" {
		t.Fatalf("expected listen from explicit .env, got %q", got)
	}
}

