// Package config loads bridge configuration from the environment and an
// optional global config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "dbridge"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// DefaultRateLimit is the minimum interval between outbound sends.
	DefaultRateLimit = 300 * time.Second
)

// Errors for missing required configuration.
var (
	ErrMissingToken   = errors.New("DISCORD_BOT_TOKEN not set; copy .env.example to .env and fill in your values")
	ErrMissingChannel = errors.New("DISCORD_CHANNEL_ID not set")
)

// Config holds everything the bridge needs for one invocation.
type Config struct {
	Token     string
	ChannelID string
	BotID     string

	// Allowlist maps author IDs to display labels. Empty means unrestricted.
	Allowlist map[string]string

	// RateLimit is the minimum interval between outbound sends.
	RateLimit time.Duration

	// StateDir is where cursors, markers, and the message log live.
	StateDir string
}

// GlobalConfig represents configuration stored in ~/.config/dbridge/config.yml.
// Environment variables take precedence over these values.
type GlobalConfig struct {
	BotToken         string `yaml:"bot_token,omitempty"`
	ChannelID        string `yaml:"channel_id,omitempty"`
	BotID            string `yaml:"bot_id,omitempty"`
	AllowedUsers     string `yaml:"allowed_users,omitempty"`
	RateLimitSeconds int    `yaml:"rate_limit_seconds,omitempty"`
	StateDir         string `yaml:"state_dir,omitempty"`
}

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// ResetGlobalConfigCache clears the cached global config. Used by tests.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/dbridge/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		globalConfigCache = &GlobalConfig{}
		return globalConfigCache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	globalConfigCache = &cfg
	return globalConfigCache, nil
}

// Load assembles the bridge configuration. Environment variables win over the
// global config file. Returns ErrMissingToken or ErrMissingChannel when a
// required value is absent from both.
func Load() (*Config, error) {
	global, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:     firstNonEmpty(os.Getenv("DISCORD_BOT_TOKEN"), global.BotToken),
		ChannelID: firstNonEmpty(os.Getenv("DISCORD_CHANNEL_ID"), global.ChannelID),
		BotID:     firstNonEmpty(os.Getenv("DISCORD_BOT_ID"), global.BotID),
		RateLimit: DefaultRateLimit,
	}

	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.ChannelID == "" {
		return nil, ErrMissingChannel
	}

	allowed := firstNonEmpty(os.Getenv("DISCORD_ALLOWED_USERS"), global.AllowedUsers)
	cfg.Allowlist = ParseAllowlist(allowed)

	if s := os.Getenv("DISCORD_RATE_LIMIT"); s != "" {
		secs, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid DISCORD_RATE_LIMIT %q: %w", s, err)
		}
		cfg.RateLimit = time.Duration(secs) * time.Second
	} else if global.RateLimitSeconds > 0 {
		cfg.RateLimit = time.Duration(global.RateLimitSeconds) * time.Second
	}

	cfg.StateDir = firstNonEmpty(os.Getenv("DBRIDGE_STATE_DIR"), global.StateDir)
	if cfg.StateDir == "" {
		cfg.StateDir = defaultStateDir()
	}

	return cfg, nil
}

// ParseAllowlist parses "id:label,id:label,..." into a map.
// Malformed pairs (no colon) are skipped.
func ParseAllowlist(s string) map[string]string {
	allowlist := make(map[string]string)
	if s == "" {
		return allowlist
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		id, label, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		id = strings.TrimSpace(id)
		label = strings.TrimSpace(label)
		if id == "" || label == "" {
			continue
		}
		allowlist[id] = label
	}
	return allowlist
}

// defaultStateDir returns $XDG_STATE_HOME/dbridge, falling back to
// ~/.local/state/dbridge.
func defaultStateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".dbridge"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, GlobalConfigDir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
