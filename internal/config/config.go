// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/blinklabs-io/pwcheck/plugin"
	"github.com/blinklabs-io/pwcheck/pwned"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

const (
	LookupBackendAPI    = "api"
	LookupBackendFilter = "filter"
)

type Config struct {
	ConfigFile  string                            `yaml:"-" ignored:"true"`
	Version     bool                              `yaml:"-" ignored:"true"`
	Input       string                            `yaml:"input" envconfig:"INPUT"`
	Output      string                            `yaml:"output" envconfig:"OUTPUT"`
	FailOnMatch bool                              `yaml:"failOnMatch" envconfig:"FAIL_ON_MATCH"`
	Logging     LoggingConfig                     `yaml:"logging"`
	Lookup      LookupConfig                      `yaml:"lookup"`
	Plugin      map[string]map[string]map[any]any `yaml:"plugins" ignored:"true"`

	flags      *pflag.FlagSet
	flagValues map[string]string
}

type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOGGING_LEVEL"`
	Format string `yaml:"format" envconfig:"LOGGING_FORMAT"`
}

type LookupConfig struct {
	Backend     string        `yaml:"backend" envconfig:"LOOKUP_BACKEND"`
	URL         string        `yaml:"url" envconfig:"LOOKUP_URL"`
	UserAgent   string        `yaml:"userAgent" envconfig:"LOOKUP_USER_AGENT"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"LOOKUP_TIMEOUT"`
	Padding     bool          `yaml:"padding" envconfig:"LOOKUP_PADDING"`
	MaxAttempts uint          `yaml:"maxAttempts" envconfig:"LOOKUP_MAX_ATTEMPTS"`
	RateLimit   float64       `yaml:"rateLimit" envconfig:"LOOKUP_RATE_LIMIT"`
	Workers     uint          `yaml:"workers" envconfig:"LOOKUP_WORKERS"`
	FilterDir   string        `yaml:"filterDir" envconfig:"LOOKUP_FILTER_DIR"`
}

// Singleton config instance with default values
var globalConfig = defaultConfig()

func defaultConfig() *Config {
	return &Config{
		Input:  "csv",
		Output: "text",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Lookup: LookupConfig{
			Backend: LookupBackendAPI,
			URL:     pwned.DefaultURL,
			Timeout: 30 * time.Second,
			Workers: 1,
		},
	}
}

// BindFlags registers the global and per-plugin command line flags
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	fs.StringVar(
		&c.ConfigFile,
		"config",
		"",
		"path to config file to load",
	)
	fs.BoolVar(
		&c.Version,
		"version",
		false,
		"show version and exit",
	)
	fs.StringVar(
		&c.Input,
		"input",
		c.Input,
		"credential source to use (use 'list' to show available inputs)",
	)
	fs.StringVar(
		&c.Output,
		"output",
		c.Output,
		"report output to use (use 'list' to show available outputs)",
	)
	fs.BoolVar(
		&c.FailOnMatch,
		"fail-on-match",
		c.FailOnMatch,
		"exit with status 2 when breached passwords are found",
	)
	fs.StringVar(
		&c.Logging.Level,
		"log-level",
		c.Logging.Level,
		"log level (debug, info, warn, error)",
	)
	fs.StringVar(
		&c.Logging.Format,
		"log-format",
		c.Logging.Format,
		"log format (text, json)",
	)
	fs.StringVar(
		&c.Lookup.Backend,
		"lookup-backend",
		c.Lookup.Backend,
		"breach lookup backend (api, filter)",
	)
	fs.StringVar(
		&c.Lookup.URL,
		"lookup-url",
		c.Lookup.URL,
		"base URL of the Pwned Passwords range API",
	)
	fs.StringVar(
		&c.Lookup.UserAgent,
		"lookup-user-agent",
		c.Lookup.UserAgent,
		"User-Agent sent with range requests (defaults to pwcheck/<version>)",
	)
	fs.DurationVar(
		&c.Lookup.Timeout,
		"lookup-timeout",
		c.Lookup.Timeout,
		"timeout for a single range request",
	)
	fs.BoolVar(
		&c.Lookup.Padding,
		"lookup-padding",
		c.Lookup.Padding,
		"request padded range responses",
	)
	fs.UintVar(
		&c.Lookup.MaxAttempts,
		"lookup-max-attempts",
		c.Lookup.MaxAttempts,
		"maximum attempts per prefix while rate limited (0 for unbounded)",
	)
	fs.Float64Var(
		&c.Lookup.RateLimit,
		"lookup-rate-limit",
		c.Lookup.RateLimit,
		"maximum range requests per second across all workers (0 for unlimited, only with one worker)",
	)
	fs.UintVar(
		&c.Lookup.Workers,
		"lookup-workers",
		c.Lookup.Workers,
		"number of concurrent range lookups",
	)
	fs.StringVar(
		&c.Lookup.FilterDir,
		"lookup-filter-dir",
		c.Lookup.FilterDir,
		"directory of breach filters for the filter backend",
	)
	if err := plugin.PopulateCmdlineOptions(fs); err != nil {
		return err
	}
	c.flags = fs
	return nil
}

// Load merges the config file and environment into the config. Flags given
// explicitly on the command line take precedence over both.
func (c *Config) Load(configFile string) error {
	c.snapshotFlags()
	// Load config file as YAML if provided
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, c); err != nil {
			return fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Load config values from environment variables
	// We use "dummy" as the app name here to (mostly) prevent picking up env
	// vars that we hadn't explicitly specified in annotations above
	if err := envconfig.Process("dummy", c); err != nil {
		return fmt.Errorf("error processing environment: %w", err)
	}
	if err := c.ReapplyFlags(); err != nil {
		return err
	}
	return c.Validate()
}

// snapshotFlags records the flags given explicitly on the command line
// before the config file and environment overwrite their destinations
func (c *Config) snapshotFlags() {
	if c.flags == nil || c.flagValues != nil {
		return
	}
	c.flagValues = make(map[string]string)
	c.flags.Visit(func(f *pflag.Flag) {
		c.flagValues[f.Name] = f.Value.String()
	})
}

// ReapplyFlags sets every flag given explicitly on the command line again,
// so that it wins over values loaded from the config file or environment
func (c *Config) ReapplyFlags() error {
	c.snapshotFlags()
	var flagErr error
	for name, value := range c.flagValues {
		if err := c.flags.Set(name, value); err != nil {
			flagErr = errors.Join(
				flagErr,
				fmt.Errorf("reapplying flag --%s: %w", name, err),
			)
		}
	}
	return flagErr
}

// Validate checks the loaded config for values the scanner cannot run with
func (c *Config) Validate() error {
	switch c.Lookup.Backend {
	case LookupBackendAPI:
		if c.Lookup.URL == "" {
			return errors.New("lookup URL must not be empty")
		}
	case LookupBackendFilter:
		if c.Lookup.FilterDir == "" {
			return errors.New("filter backend requires a filter directory")
		}
	default:
		return fmt.Errorf("unknown lookup backend: %s", c.Lookup.Backend)
	}
	if c.Lookup.Workers == 0 {
		return errors.New("lookup workers must be at least 1")
	}
	if c.Lookup.Backend == LookupBackendAPI &&
		c.Lookup.Workers > 1 &&
		c.Lookup.RateLimit == 0 {
		return errors.New(
			"concurrent lookups against the range API require a rate limit (lookup.rateLimit)",
		)
	}
	if c.Lookup.RateLimit < 0 {
		return fmt.Errorf("invalid lookup rate limit: %v", c.Lookup.RateLimit)
	}
	if c.Lookup.Timeout < 0 {
		return fmt.Errorf("invalid lookup timeout: %s", c.Lookup.Timeout)
	}
	return nil
}

// GetConfig returns the global config instance
func GetConfig() *Config {
	return globalConfig
}
