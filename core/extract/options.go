package extract

import (
	"github.com/leofalp/fieldex/providers/observability"
)

// DefaultMaxAttempts is the number of generator calls spent on a field
// before it is dropped.
const DefaultMaxAttempts = 3

// Config holds the tuning parameters shared by [Driver] and [Extractor].
// Zero values are replaced with the defaults documented below.
type Config struct {
	// MaxAttempts is the attempt budget per field or time pair.
	// Default: 3.
	MaxAttempts int

	// Repair enables the jsonrepair stage of the partial parser when
	// fragments are turned into records. Default: off.
	Repair bool

	// Observer receives spans, events, counters and logs. Nil disables
	// observability.
	Observer observability.Provider

	// Prompts builds the prompt for one target.
	// Default: DefaultPromptBuilder.
	Prompts PromptBuilder
}

// applyDefaults fills in zero-valued fields with defaults.
func (c *Config) applyDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Prompts == nil {
		c.Prompts = DefaultPromptBuilder
	}
}

// Option configures a Driver or an Extractor.
type Option func(*Config)

// WithMaxAttempts sets the attempt budget per field. Values below 1 restore
// the default.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithObserver sets the observability provider.
func WithObserver(observer observability.Provider) Option {
	return func(c *Config) {
		c.Observer = observer
	}
}

// WithPromptBuilder replaces the prompt template.
func WithPromptBuilder(builder PromptBuilder) Option {
	return func(c *Config) {
		c.Prompts = builder
	}
}

// WithRepair enables the last-resort jsonrepair stage when parsing
// fragments. It only affects an Extractor.
func WithRepair(enabled bool) Option {
	return func(c *Config) {
		c.Repair = enabled
	}
}

// WithConfig copies every field of cfg.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func newConfig(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()
	return cfg
}
