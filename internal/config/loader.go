package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// whitelistSet is a precomputed lookup table for fast whitelist membership
// checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// Lines are processed according to these rules:
//   - Empty lines and lines starting with # are skipped.
//   - Lines without an = sign are skipped.
//   - Leading and trailing whitespace is trimmed from both key and value.
//   - Keys not present in WhitelistedVars are silently ignored.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if !whitelistSet[key] {
			continue
		}
		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return result, nil
}

// FromEnv collects whitelisted variables present in the process environment.
func FromEnv() map[string]string {
	result := make(map[string]string)
	for _, key := range WhitelistedVars {
		if value, ok := os.LookupEnv(key); ok {
			result[key] = value
		}
	}
	return result
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Project config file (projectPath; missing file is not an error)
//  3. Explicit config file (explicitPath; must exist when non-empty)
//  4. Environment variables
//  5. CLI overrides (cliOverrides map)
func LoadWithPrecedence(projectPath, explicitPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	if projectPath != "" {
		m, err := LoadFile(projectPath)
		switch {
		case err == nil:
			ApplyMapToConfig(cfg, m)
		case errors.Is(err, os.ErrNotExist):
			// Missing project config is not an error.
		default:
			return nil, fmt.Errorf("project config: %w", err)
		}
	}

	if explicitPath != "" {
		m, err := LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("explicit config: %w", err)
		}
		ApplyMapToConfig(cfg, m)
	}

	ApplyMapToConfig(cfg, FromEnv())

	if len(cliOverrides) > 0 {
		ApplyMapToConfig(cfg, cliOverrides)
	}
	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m. Unknown
// keys are silently ignored. Integer fields that fail to parse are silently
// ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "IMAGE_MODEL":
			cfg.Model = value
		case "MAX_RETRIES":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.MaxRetries = v
			}
		case "INITIAL_RETRY_DELAY":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.InitialRetryDelay = v
			}
		case "MAX_RETRY_DELAY":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.MaxRetryDelay = v
			}
		case "BASE_DELAY_BETWEEN_CALLS":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.BaseDelay = v
			}
		case "POEMS_ROOT":
			cfg.PoemsRoot = value
		case "CHECKSUM_DIR":
			cfg.ChecksumDir = value
		case "SKIP_SMOKE_TEST":
			cfg.SkipSmokeTest = parseBool(value)
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		case "NOTIFY_WEBHOOK":
			cfg.NotifyWebhook = value
		case "NOTIFY_CHANNEL":
			cfg.NotifyChannel = value
		case "NOTIFY_CHAT_ID":
			cfg.NotifyChatID = value
		}
	}
}

// parseBool interprets common boolean representations. "true", "1", "yes"
// (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
