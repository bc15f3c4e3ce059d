package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mooncorn/locationtracker/internal/location"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. TRACKER_LOG_LEVEL
const EnvPrefix = "TRACKER"

var ErrInvalidConfig = errors.New("invalid config")

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", FormatText)
	v.SetDefault("log.log_events", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks logging settings and every scenario step
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	for i, name := range c.Reporters {
		if name == "" {
			return fmt.Errorf("%w: reporter #%d has no name", ErrInvalidConfig, i)
		}
		if slices.Index(c.Reporters, name) != i {
			return fmt.Errorf("%w: duplicate reporter %q", ErrInvalidConfig, name)
		}
	}

	for i, step := range c.Scenario {
		if err := c.validateStep(step); err != nil {
			return fmt.Errorf("%w: step #%d: %v", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

func (c *Config) validateStep(step Step) error {
	switch step.Action {
	case ActionSubscribe, ActionUnsubscribe:
		if !slices.Contains(c.Reporters, step.Reporter) {
			return fmt.Errorf("unknown reporter %q", step.Reporter)
		}
	case ActionTrack:
		if (step.Latitude == nil) != (step.Longitude == nil) {
			return errors.New("track needs both latitude and longitude, or neither")
		}
		if step.HasLocation() {
			if _, err := location.Parse(*step.Latitude, *step.Longitude); err != nil {
				return err
			}
		}
	case ActionEnd:
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

// Apply configures logger with the level and format settings
func (l LogS) Apply(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	switch l.Format {
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006/01/02-15:04:05.000",
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			TimestampFormat: "2006/01/02-15:04:05.000",
		})
	}
	return nil
}
