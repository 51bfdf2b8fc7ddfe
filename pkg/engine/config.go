package engine

import "log/slog"

// Default evaluation limits. Catalogs in the field stay far below these;
// the caps exist to keep a corrupt or hostile rule set from pinning a core.
const (
	DefaultMaxRules          = 500
	DefaultMaxConditionDepth = 32
)

// Config carries tunable limits and collaborators for a RulesEngine.
type Config struct {
	// MaxRules caps the number of rules accepted per descriptor.
	MaxRules int

	// MaxConditionDepth caps logical condition nesting. Conditions deeper
	// than this evaluate to false.
	MaxConditionDepth int

	// Matcher decides whether a rule's condition holds for a selection
	// state. Defaults to the built-in matcher.
	Matcher ConditionMatcher

	// Executor turns a matched rule's actions into effects. Defaults to
	// the built-in executor.
	Executor ActionExecutor

	// Logger receives debug traces for skipped or non-matching rules.
	// Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxRules:          DefaultMaxRules,
		MaxConditionDepth: DefaultMaxConditionDepth,
	}
}

// WithMaxRules sets the per-descriptor rule cap.
func (c *Config) WithMaxRules(n int) *Config {
	c.MaxRules = n
	return c
}

// WithMaxConditionDepth sets the condition nesting cap.
func (c *Config) WithMaxConditionDepth(n int) *Config {
	c.MaxConditionDepth = n
	return c
}

// WithMatcher replaces the condition matcher.
func (c *Config) WithMatcher(m ConditionMatcher) *Config {
	c.Matcher = m
	return c
}

// WithExecutor replaces the action executor.
func (c *Config) WithExecutor(e ActionExecutor) *Config {
	c.Executor = e
	return c
}

// WithLogger sets the logger.
func (c *Config) WithLogger(l *slog.Logger) *Config {
	c.Logger = l
	return c
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.MaxRules <= 0 {
		return &ConfigError{Field: "MaxRules", Reason: "must be positive"}
	}
	if c.MaxConditionDepth <= 0 {
		return &ConfigError{Field: "MaxConditionDepth", Reason: "must be positive"}
	}
	return nil
}
