package shared

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// EnvDotEnvPath names an explicit .env file. Without it the loader walks up
// from the working directory and from this source file.
const EnvDotEnvPath = "CUSTODY_DOTENV"

var dotenvLoadOnce sync.Once

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		if explicit := firstNonEmptyEnv(EnvDotEnvPath); explicit != "" {
			loadDotEnvFile(explicit)
			return
		}

		startPaths := make([]string, 0, 2)
		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}
		if candidate, ok := findDotEnv(startPaths); ok {
			loadDotEnvFile(candidate)
		}
	})
}

// findDotEnv returns the nearest .env at or above any of startPaths.
func findDotEnv(startPaths []string) (string, bool) {
	seen := make(map[string]struct{})
	for _, start := range startPaths {
		current := start
		for {
			candidate := filepath.Join(current, ".env")
			if _, exists := seen[candidate]; !exists {
				seen[candidate] = struct{}{}
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
					return candidate, true
				}
			}

			parent := filepath.Dir(current)
			if parent == current {
				break
			}
			current = parent
		}
	}
	return "", false
}

// loadDotEnvFile sets every valid KEY=value from path that is not already
// in the environment. It reports whether anything was set.
func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}
		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}
	return loadedAny
}

func parseDotEnvLine(raw string) (string, string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if !isValidEnvKey(key) {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first := value[0]
		last := value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

func envUint64(key string, target *uint64) error {
	raw := firstNonEmptyEnv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%s must be an unsigned integer: %w", key, err)
	}
	*target = value
	return nil
}

func envInt(key string, target *int) error {
	raw := firstNonEmptyEnv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*target = value
	return nil
}

func envFloat(key string, target *float64) error {
	raw := firstNonEmptyEnv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s must be a number: %w", key, err)
	}
	*target = value
	return nil
}

func envBool(key string, target *bool) error {
	raw := firstNonEmptyEnv(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	*target = value
	return nil
}

func envString(key string, target *string) {
	if value := firstNonEmptyEnv(key); value != "" {
		*target = value
	}
}
