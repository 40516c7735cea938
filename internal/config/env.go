package config

import (
	"os"
	"strconv"
)

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "REDRAFT_MAX_ATTEMPTS",
		apply: func(c *Config, v string) {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxAttempts = n
			}
		},
	},
	{
		envVar: "REDRAFT_GENERATOR_CMD",
		apply: func(c *Config, v string) {
			c.Generator.Command = v
		},
	},
	{
		envVar: "REDRAFT_EVALUATOR_CMD",
		apply: func(c *Config, v string) {
			c.Evaluator.Command = v
		},
	},
	{
		envVar: "REDRAFT_HISTORY_PATH",
		apply: func(c *Config, v string) {
			c.History.Path = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
