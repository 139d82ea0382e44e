package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete planguard configuration (v1 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Snapshot   SnapshotConfig   `json:"snapshot" mapstructure:"snapshot"`
	Impact     ImpactConfig     `json:"impact" mapstructure:"impact"`
	Validation ValidationConfig `json:"validation" mapstructure:"validation"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// SnapshotConfig locates the code scan snapshot and its cache.
type SnapshotConfig struct {
	Path    string `json:"path" mapstructure:"path"`
	CacheDB string `json:"cacheDb" mapstructure:"cacheDb"`
}

// ImpactConfig contains impact traversal settings.
type ImpactConfig struct {
	MaxDepth       int `json:"maxDepth" mapstructure:"maxDepth"`
	DiagramNodeCap int `json:"diagramNodeCap" mapstructure:"diagramNodeCap"`
}

// ValidationConfig contains plan validation settings.
type ValidationConfig struct {
	SchemaPath        string `json:"schemaPath" mapstructure:"schemaPath"`
	ApprovalThreshold int    `json:"approvalThreshold" mapstructure:"approvalThreshold"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Snapshot: SnapshotConfig{
			Path:    ".planguard/snapshot.json",
			CacheDB: ".planguard/cache.db",
		},
		Impact: ImpactConfig{
			MaxDepth:       3,
			DiagramNodeCap: 50,
		},
		Validation: ValidationConfig{
			SchemaPath:        "",
			ApprovalThreshold: 90,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.planguard/config.json,
// falling back to defaults when no config file exists.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("snapshot.path", defaults.Snapshot.Path)
	v.SetDefault("snapshot.cacheDb", defaults.Snapshot.CacheDB)
	v.SetDefault("impact.maxDepth", defaults.Impact.MaxDepth)
	v.SetDefault("impact.diagramNodeCap", defaults.Impact.DiagramNodeCap)
	v.SetDefault("validation.schemaPath", defaults.Validation.SchemaPath)
	v.SetDefault("validation.approvalThreshold", defaults.Validation.ApprovalThreshold)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".planguard"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.planguard/config.json.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".planguard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Impact.MaxDepth < 1 {
		return &ConfigError{Field: "impact.maxDepth", Message: "must be at least 1"}
	}
	if c.Validation.ApprovalThreshold < 0 || c.Validation.ApprovalThreshold > 100 {
		return &ConfigError{Field: "validation.approvalThreshold", Message: "must be between 0 and 100"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
