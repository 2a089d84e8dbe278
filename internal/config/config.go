// Package config loads optional YAML defaults for the fquack CLI.
//
// Values may reference the environment as ${VAR} or ${VAR:-default}.
// Unset fields stay nil so flags can tell "not configured" from zero.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the default config file when --config is not given.
const EnvConfig = "FQUACK_CONFIG"

// Config mirrors the CLI flags that make sense as persistent defaults.
type Config struct {
	BatchSize    *int    `yaml:"batch_size,omitempty"`
	Output       *string `yaml:"output,omitempty"`
	Threads      *int    `yaml:"threads,omitempty"`
	Mmap         *bool   `yaml:"mmap,omitempty"`
	Debug        *bool   `yaml:"debug,omitempty"`
	Header       *bool   `yaml:"header,omitempty"`
	SourceColumn *bool   `yaml:"source_column,omitempty"`
	DB           *string `yaml:"db,omitempty"`
}

// LoadFromFile reads a .yaml/.yml file with environment substitution.
func LoadFromFile(path string) (*Config, error) {
	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("invalid config file %s: only .yaml and .yml files are allowed", clean)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", clean, err)
	}
	var c Config
	if err := yaml.Unmarshal([]byte(substituteEnvVars(string(data))), &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config %s: %w", clean, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", clean, err)
	}
	return &c, nil
}

// Resolve picks the config path: explicit, then $FQUACK_CONFIG. An empty
// result means "no config"; a nil *Config is returned then.
func Resolve(explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return nil, nil
	}
	return LoadFromFile(path)
}

// LoadEnvFiles loads each existing .env file. Variables already set in the
// environment win. It returns the files that were loaded.
func LoadEnvFiles(files []string) ([]string, error) {
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return loaded, fmt.Errorf("load env file %s: %w", f, err)
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}

// Validate rejects values no flag would accept.
func (c *Config) Validate() error {
	if c.BatchSize != nil && *c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1, got %d", *c.BatchSize)
	}
	if c.Threads != nil && *c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", *c.Threads)
	}
	return nil
}

var envRef = regexp.MustCompile(`\$\{([^}:]+)(?::(-[^}]*))?\}`)

// substituteEnvVars replaces ${VAR} and ${VAR:-default}. An empty variable
// counts as unset.
func substituteEnvVars(content string) string {
	return envRef.ReplaceAllStringFunc(content, func(match string) string {
		sub := envRef.FindStringSubmatch(match)
		if v := os.Getenv(sub[1]); v != "" {
			return v
		}
		return strings.TrimPrefix(sub[2], "-")
	})
}
