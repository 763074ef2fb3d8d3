package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Lookup order for config files in a work directory.
var FileNames = []string{".schemacheck.yml", ".schemacheck.yaml", ".schemacheck.toml"}

// ErrNotFound is returned by Load when no config file exists.
var ErrNotFound = errors.New("config file not found")

// Loader handles loading and parsing .schemacheck.yml / .schemacheck.toml
type Loader struct {
	filePath string
	workDir  string
}

// NewLoader creates a loader that looks for a config file in workDir.
func NewLoader(workDir string) *Loader {
	l := &Loader{
		filePath: filepath.Join(workDir, FileNames[0]),
		workDir:  workDir,
	}
	for _, name := range FileNames {
		candidate := filepath.Join(workDir, name)
		if _, err := os.Stat(candidate); err == nil {
			l.filePath = candidate
			break
		}
	}
	return l
}

// NewFileLoader creates a loader for an explicit config file. Relative
// paths inside it resolve against its directory.
func NewFileLoader(path string) *Loader {
	return &Loader{
		filePath: path,
		workDir:  filepath.Dir(path),
	}
}

// Path returns the config file the loader reads and writes.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the config file. Keys it omits keep their defaults.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s\nRun 'schemacheck init' to create one", ErrNotFound, l.filePath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Defaults()
	if l.isTOML() {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.fillBlanks()

	if err := l.resolvePaths(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolvePaths expands environment variables and converts relative paths
// to absolute ones
func (l *Loader) resolvePaths(cfg *Config) error {
	for i, path := range cfg.Schema.Paths {
		abs, err := l.resolvePath(os.ExpandEnv(path))
		if err != nil {
			return fmt.Errorf("invalid schema path '%s': %w", path, err)
		}
		cfg.Schema.Paths[i] = abs
	}

	if cfg.Validation.JSONSchema != "" {
		abs, err := l.resolvePath(os.ExpandEnv(cfg.Validation.JSONSchema))
		if err != nil {
			return fmt.Errorf("invalid json_schema path '%s': %w", cfg.Validation.JSONSchema, err)
		}
		cfg.Validation.JSONSchema = abs
	}

	return nil
}

// resolvePath converts relative or absolute path to absolute
func (l *Loader) resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Abs(filepath.Join(l.workDir, path))
}

// LoadOrDefault loads config or returns defaults when there is none
func (l *Loader) LoadOrDefault() (*Config, error) {
	cfg, err := l.Load()
	if errors.Is(err, ErrNotFound) {
		return Defaults(), nil
	}
	return cfg, err
}

// Save writes config to file in the format implied by its extension
func (l *Loader) Save(cfg *Config) error {
	var data []byte
	if l.isTOML() {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(l.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (l *Loader) isTOML() bool {
	return strings.EqualFold(filepath.Ext(l.filePath), ".toml")
}

// Template returns the commented content written by 'schemacheck init'
func Template() string {
	return `# schemacheck configuration

version: "1"

# Where entity schema documents live
schema:
  # Directories searched recursively (relative to this file, ${VARS} expanded)
  paths:
    - "./schemas"
  # File name of each entity document
  filename: "schema.json"

validation:
  # Fail when a document has warnings
  strict: false
  # Optional JSON Schema every document must also satisfy
  # json_schema: "./entity.schema.json"

output:
  # text or json
  format: "text"
  color: true

batch:
  # Concurrent validations for validate-all (0 = one per CPU)
  jobs: 0
`
}
