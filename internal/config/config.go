// Package config loads the fieldex CLI configuration.
//
// Values are layered: built-in [Defaults], then an optional dotenv file
// (which only sets variables not already present in the environment), then
// an optional YAML file, then FIELDEX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/leofalp/fieldex/providers/observability/slogobs"
	"gopkg.in/yaml.v3"
)

// Environment variables read by [Load].
const (
	EnvGeneratorURL     = "FIELDEX_GENERATOR_URL"
	EnvGeneratorAPIKey  = "FIELDEX_GENERATOR_API_KEY"
	EnvGeneratorTimeout = "FIELDEX_GENERATOR_TIMEOUT"
	EnvMaxAttempts      = "FIELDEX_MAX_ATTEMPTS"
	EnvRepair           = "FIELDEX_REPAIR"
	EnvTrials           = "FIELDEX_TRIALS"
	EnvConcurrency      = "FIELDEX_CONCURRENCY"
	EnvCatalogue        = "FIELDEX_CATALOGUE"
)

// ErrInvalidConfig is returned when a configured value is out of range or
// cannot be parsed.
var ErrInvalidConfig = errors.New("fieldex: invalid configuration")

// Config holds all user-facing configuration for fieldex.
type Config struct {
	Generator  GeneratorConfig  `yaml:"generator"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Log        LogConfig        `yaml:"log"`
	// Catalogue is the path of the schema registry YAML file.
	Catalogue string `yaml:"catalogue"`
}

type GeneratorConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type ExtractionConfig struct {
	MaxAttempts int  `yaml:"max_attempts"`
	Repair      bool `yaml:"repair"`
}

type EvaluationConfig struct {
	Trials      int `yaml:"trials"`
	Concurrency int `yaml:"concurrency"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Generator:  GeneratorConfig{URL: "http://localhost:8000/generate", Timeout: 120 * time.Second},
		Extraction: ExtractionConfig{MaxAttempts: 3},
		Evaluation: EvaluationConfig{Trials: 3, Concurrency: 4},
		Log:        LogConfig{Level: "INFO", Format: string(slogobs.FormatCompact)},
		Catalogue:  "configs/schemas.yaml",
	}
}

// Load builds the configuration. An empty envFile or path skips that layer;
// a dotenv or YAML file that does not exist is skipped as well.
func Load(path, envFile string) (*Config, error) {
	cfg := Defaults()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Generator.URL, EnvGeneratorURL)
	setString(&c.Generator.APIKey, EnvGeneratorAPIKey)
	setString(&c.Catalogue, EnvCatalogue)
	setString(&c.Log.Level, slogobs.EnvLogLevel)
	setString(&c.Log.Format, slogobs.EnvLogFormat)

	if v := os.Getenv(EnvGeneratorTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvGeneratorTimeout, v, err)
		}
		c.Generator.Timeout = d
	}
	if v := os.Getenv(EnvRepair); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvRepair, v, err)
		}
		c.Extraction.Repair = b
	}
	for name, dst := range map[string]*int{
		EnvMaxAttempts: &c.Extraction.MaxAttempts,
		EnvTrials:      &c.Evaluation.Trials,
		EnvConcurrency: &c.Evaluation.Concurrency,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, v, err)
		}
		*dst = n
	}
	return nil
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Generator.URL == "":
		return fmt.Errorf("%w: generator.url is empty", ErrInvalidConfig)
	case c.Generator.Timeout < 0:
		return fmt.Errorf("%w: generator.timeout is negative", ErrInvalidConfig)
	case c.Extraction.MaxAttempts < 1:
		return fmt.Errorf("%w: extraction.max_attempts must be at least 1", ErrInvalidConfig)
	case c.Evaluation.Trials < 1:
		return fmt.Errorf("%w: evaluation.trials must be at least 1", ErrInvalidConfig)
	case c.Evaluation.Concurrency < 1:
		return fmt.Errorf("%w: evaluation.concurrency must be at least 1", ErrInvalidConfig)
	}
	return nil
}
