package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileNames lists the files searched for configuration in order.
// Checks .github/ first, then the working directory.
var FileNames = []string{
	".github/gitstamp.yml",
	".github/gitstamp.yaml",
	"gitstamp.yml",
	"gitstamp.yaml",
	"gitstamp.jsonc",
	"gitstamp.json",
}

// FindFile searches dir for a configuration file and returns its path, or
// "" when there is none.
func FindFile(dir string) string {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadFromFile reads and parses a gitstamp configuration file. Files ending
// in .json or .jsonc may contain comments and trailing commas.
func LoadFromFile(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(file, data)
}

// Parse decodes configuration content, choosing JSONC or YAML by the
// extension of name.
func Parse(name string, data []byte) (*Config, error) {
	switch strings.ToLower(path.Ext(filepath.ToSlash(name))) {
	case ".json", ".jsonc":
		return LoadFromJSONC(data)
	default:
		return LoadFromBytes(data)
	}
}

// LoadFromBytes parses gitstamp configuration from raw YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadFromJSONC parses configuration from JSON with comments. The
// stripped JSON is decoded as YAML so both formats share one key set.
func LoadFromJSONC(data []byte) (*Config, error) {
	return LoadFromBytes(jsonc.ToJSON(data))
}
