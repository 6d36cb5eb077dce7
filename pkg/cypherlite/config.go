package cypherlite

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EngineConfig is the YAML-loadable configuration layer over Options.
// LoadEngineConfig reads a YAML file over DefaultEngineConfig()'s built-in
// defaults, and LoadEngineConfigFromEnv reads environment variables over
// the same defaults; neither loader consults the other's source.
type EngineConfig struct {
	// Dialect is "strict" or "relaxed", mirroring Options.Dialect.
	Dialect string `yaml:"dialect"`
	// EnabledFeatures lists which of the strict-dialect feature gates (see
	// features.go) are allowed even in strict mode.
	EnabledFeatures []string `yaml:"enabled_features"`
	// RecoverErrors mirrors Options.RecoverErrors: when true, a Document is
	// still returned alongside error diagnostics.
	RecoverErrors bool `yaml:"recover_errors"`
	// MaxRows is a row limit (0 = unbounded) read from YAML or the
	// environment. ToOptions does not carry it over and Execute applies no
	// row cap.
	MaxRows int `yaml:"max_rows"`
}

// DefaultEngineConfig returns the engine's out-of-the-box configuration:
// strict dialect, no extra features enabled, no recovery, no row cap.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Dialect: "strict",
		EnabledFeatures: nil,
		RecoverErrors: false,
		MaxRows: 0,
	}
}

// LoadEngineConfigFromEnv loads configuration from environment variables,
// suited to container/CI deployments where a YAML file isn't mounted.
//
// Environment variables:
//
//	CYPHERLITE_DIALECT - "strict" or "relaxed"
//	CYPHERLITE_ENABLED_FEATURES - comma-separated feature names
//	CYPHERLITE_RECOVER_ERRORS - "true"/"false"/"1"/"0"/"yes"/"no"/"on"/"off"
//	CYPHERLITE_MAX_ROWS - integer
func LoadEngineConfigFromEnv() *EngineConfig {
	cfg := DefaultEngineConfig()

	if v := os.Getenv("CYPHERLITE_DIALECT"); v != "" {
		cfg.Dialect = v
	}
	if v := os.Getenv("CYPHERLITE_ENABLED_FEATURES"); v != "" {
		var feats []string
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				feats = append(feats, f)
			}
		}
		cfg.EnabledFeatures = feats
	}
	if v := os.Getenv("CYPHERLITE_RECOVER_ERRORS"); v != "" {
		cfg.RecoverErrors = parseBool(v, cfg.RecoverErrors)
	}
	if v := os.Getenv("CYPHERLITE_MAX_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRows = n
		}
	}
	return cfg
}

func parseBool(s string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultVal
	}
}

// LoadEngineConfig loads configuration from a YAML file.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEngineConfigOrDefault loads config from path, falling back to
// DefaultEngineConfig() if the file cannot be read or parsed.
func LoadEngineConfigOrDefault(path string) *EngineConfig {
	cfg, err := LoadEngineConfig(path)
	if err != nil {
		return DefaultEngineConfig()
	}
	return cfg
}

// ToOptions converts cfg into an Options value ready for Parse/Execute.
func (cfg *EngineConfig) ToOptions() Options {
	enabled := make(map[string]bool, len(cfg.EnabledFeatures))
	for _, f := range cfg.EnabledFeatures {
		enabled[f] = true
	}
	return Options{
		Dialect: Dialect(cfg.Dialect),
		EnabledFeatures: enabled,
		RecoverErrors: cfg.RecoverErrors,
	}
}
