package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Defaults applied after loading when the file leaves them unset.
const (
	DefaultAlgorithm   = "greedy"
	DefaultHorizonDays = 28
)

// ClosureRule marks recurring dates on which the program runs no clinical
// sessions, so no blocks are generated for them
type ClosureRule struct {
	RRule string `yaml:"rrule" validate:"required"`
	Label string `yaml:"label,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL        string        `yaml:"databaseURL,omitempty"`
	DefaultAlgorithm   string        `yaml:"defaultAlgorithm,omitempty" validate:"omitempty,oneof=greedy linear constraint-programming hybrid"`
	DefaultHorizonDays int           `yaml:"defaultHorizonDays,omitempty" validate:"omitempty,min=1,max=366"`
	DefaultPGYLevels   []int         `yaml:"defaultPGYLevels,omitempty" validate:"omitempty,dive,min=1,max=9"`
	ClosureRules       []ClosureRule `yaml:"closureRules,omitempty" validate:"dive"`
	LogPath            string        `yaml:"logPath,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads the configuration for the environment named by APP_ENV
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadWithEnv(os.Getenv("APP_ENV"))
}

// LoadWithEnv loads and validates the configuration for a named environment.
// It looks in the current directory first, then in the user's home directory.
// DATABASE_URL in the environment overrides the databaseURL file entry.
func LoadWithEnv(env string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each closure rule
	for i, rule := range cfg.ClosureRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
	}

	return nil
}

// applyDefaults fills unset fields and applies the DATABASE_URL override.
func applyDefaults(cfg *Config) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if cfg.DefaultAlgorithm == "" {
		cfg.DefaultAlgorithm = DefaultAlgorithm
	}
	if cfg.DefaultHorizonDays == 0 {
		cfg.DefaultHorizonDays = DefaultHorizonDays
	}
}

// findConfigFile searches for the scheduler config file in the current
// directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := fileName(env)

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}

// fileName returns the config filename, prefixed by the environment name so
// deployments can keep per-environment configs side by side.
func fileName(env string) string {
	if env != "" {
		return env + "_scheduler_config.yaml"
	}
	return "scheduler_config.yaml"
}
